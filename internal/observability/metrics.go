package observability

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles Prometheus metrics for the model API surface and the
// coating fitter, and provides helpers to wire them into HTTP handlers.
type Collector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	InstrumentComponents prometheus.Gauge
	InstrumentSurfaces   prometheus.Gauge

	FitsTotal   *prometheus.CounterVec
	FitDuration prometheus.Histogram
	FitRMS      prometheus.Gauge
}

// NewCollector registers the model metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "optics_http_requests_total",
		Help: "Total number of handled API requests, labeled by route, method, and status code.",
	}, []string{"route", "method", "code"})
	requests, err := registerCounterVec(reg, requests, "optics_http_requests_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "optics_http_request_duration_seconds",
		Help:    "API request latency in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"route", "method"})
	durations, err = registerHistogramVec(reg, durations, "optics_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	components, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "optics_instrument_components",
		Help: "Current number of components in the loaded instrument.",
	}), "optics_instrument_components")
	if err != nil {
		return nil, err
	}
	surfaces, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "optics_instrument_surfaces",
		Help: "Current number of surface descriptors derived from the instrument.",
	}), "optics_instrument_surfaces")
	if err != nil {
		return nil, err
	}

	fits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "optics_coating_fits_total",
		Help: "Total number of coating fit runs, labeled by outcome.",
	}, []string{"outcome"})
	fits, err = registerCounterVec(reg, fits, "optics_coating_fits_total")
	if err != nil {
		return nil, err
	}

	fitDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "optics_coating_fit_duration_seconds",
		Help:    "Wall-clock duration of coating fit runs in seconds.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60},
	})
	fitDuration, err = registerHistogram(reg, fitDuration, "optics_coating_fit_duration_seconds")
	if err != nil {
		return nil, err
	}

	fitRMS, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "optics_coating_fit_rms",
		Help: "RMS reflectance residual of the most recent coating fit.",
	}), "optics_coating_fit_rms")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:             gatherer,
		HTTPRequests:         requests,
		HTTPDurations:        durations,
		InstrumentComponents: components,
		InstrumentSurfaces:   surfaces,
		FitsTotal:            fits,
		FitDuration:          fitDuration,
		FitRMS:               fitRMS,
	}, nil
}

// Middleware records request counts and durations for an HTTP handler. The
// route label is the registered pattern, not the raw URL, so cardinality
// stays bounded.
func (c *Collector) Middleware(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		if c == nil {
			return
		}
		if c.HTTPRequests != nil {
			c.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(sw.code)).Inc()
		}
		if c.HTTPDurations != nil {
			c.HTTPDurations.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		}
	})
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetInstrumentCounts drives the instrument gauges; called after a config
// load or any registry mutation.
func (c *Collector) SetInstrumentCounts(components, surfaces int) {
	if c == nil {
		return
	}
	if c.InstrumentComponents != nil {
		c.InstrumentComponents.Set(float64(components))
	}
	if c.InstrumentSurfaces != nil {
		c.InstrumentSurfaces.Set(float64(surfaces))
	}
}

// ObserveFit records the outcome of one coating fit run. The RMS gauge is
// only updated on success.
func (c *Collector) ObserveFit(outcome string, elapsed time.Duration, rms float64) {
	if c == nil {
		return
	}
	if c.FitsTotal != nil {
		c.FitsTotal.WithLabelValues(outcome).Inc()
	}
	if c.FitDuration != nil {
		c.FitDuration.Observe(elapsed.Seconds())
	}
	if outcome == "success" && c.FitRMS != nil {
		c.FitRMS.Set(rms)
	}
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
