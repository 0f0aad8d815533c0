// Package httpapi exposes the loaded instrument model and the coating
// fitter over a small read-mostly JSON API.
package httpapi

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gonum.org/v1/gonum/unit"

	"github.com/solarlab/rowland-optics/coating"
	"github.com/solarlab/rowland-optics/instrument"
	"github.com/solarlab/rowland-optics/internal/logging"
	"github.com/solarlab/rowland-optics/internal/observability"
)

// Server serves the instrument model API.
type Server struct {
	ins     *instrument.Instrument
	log     logging.Logger
	metrics *observability.Collector
	tracer  trace.Tracer
	mux     *http.ServeMux
}

// New wires the API routes for the given instrument. The logger and
// collector may be nil; both degrade to no-ops.
func New(ins *instrument.Instrument, log logging.Logger, metrics *observability.Collector) *Server {
	if log == nil {
		log = logging.Noop()
	}

	s := &Server{
		ins:     ins,
		log:     log,
		metrics: metrics,
		tracer:  otel.Tracer("httpapi"),
		mux:     http.NewServeMux(),
	}

	s.route("/healthz", http.HandlerFunc(s.handleHealthz))
	s.route("/v1/components", http.HandlerFunc(s.handleComponents))
	s.route("/v1/surfaces", http.HandlerFunc(s.handleSurfaces))
	s.route("/v1/coating/fit", http.HandlerFunc(s.handleCoatingFit))

	return s
}

// Handler returns the root handler with middleware applied per route.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) route(pattern string, h http.Handler) {
	wrapped := s.withRequestContext(pattern, h)
	if s.metrics != nil {
		wrapped = s.metrics.Middleware(pattern, wrapped)
	}
	s.mux.Handle(pattern, wrapped)
}

// withRequestContext attaches a request ID and a span before the
// handler runs, and logs the request on the way out.
func (s *Server) withRequestContext(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, reqLog := logging.WithRequestLogger(r.Context(), s.log)
		ctx, span := s.tracer.Start(ctx, route,
			trace.WithAttributes(attribute.String("http.method", r.Method)),
		)
		defer span.End()

		next.ServeHTTP(w, r.WithContext(ctx))
		reqLog.Debug(ctx, "handled request",
			logging.String("route", route),
			logging.String("method", r.Method),
		)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleComponents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"component_ids": s.ins.IDs(),
	})
}

func (s *Server) handleSurfaces(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	surfaces := s.ins.Surfaces()
	out := make([]surfaceDTO, 0, len(surfaces))
	for _, surf := range surfaces {
		out = append(out, toSurfaceDTO(surf))
	}
	writeJSON(w, http.StatusOK, map[string]any{"surfaces": out})
}

type fitRequest struct {
	IncidenceDeg float64   `json:"incidence_deg"`
	WavelengthNm []float64 `json:"wavelength_nm"`
	Reflectance  []float64 `json:"reflectance"`
}

type fitLayer struct {
	Chemical         string  `json:"chemical"`
	ThicknessNm      float64 `json:"thickness_nm"`
	InterfaceWidthNm float64 `json:"interface_width_nm"`
}

type fitResponse struct {
	Layers          []fitLayer `json:"layers"`
	RMS             float64    `json:"rms"`
	FuncEvaluations int        `json:"func_evaluations"`
}

func (s *Server) handleCoatingFit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req fitRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "malformed fit request: "+err.Error(), http.StatusBadRequest)
		return
	}

	m := coating.Measurement{
		Incidence:   unit.Angle(req.IncidenceDeg * math.Pi / 180),
		Reflectance: req.Reflectance,
	}
	m.Wavelength = make([]unit.Length, len(req.WavelengthNm))
	for i, nm := range req.WavelengthNm {
		m.Wavelength[i] = unit.Length(nm * unit.Nano)
	}

	start := time.Now()
	result, err := coating.Fit(coating.Design(), m)
	if err != nil {
		outcome, code := "error", http.StatusInternalServerError
		switch {
		case errors.Is(err, coating.ErrInput), errors.Is(err, coating.ErrRange):
			outcome, code = "bad_input", http.StatusBadRequest
		case errors.Is(err, coating.ErrOptimization):
			outcome, code = "no_convergence", http.StatusUnprocessableEntity
		}
		s.metrics.ObserveFit(outcome, time.Since(start), 0)
		s.log.Warn(r.Context(), "coating fit failed", logging.Err(err))
		http.Error(w, err.Error(), code)
		return
	}
	s.metrics.ObserveFit("success", time.Since(start), result.RMS)

	resp := fitResponse{
		RMS:             result.RMS,
		FuncEvaluations: result.FuncEvaluations,
	}
	for _, l := range result.Coating.Layers {
		resp.Layers = append(resp.Layers, fitLayer{
			Chemical:         l.Chemical,
			ThicknessNm:      float64(l.Thickness) / unit.Nano,
			InterfaceWidthNm: float64(l.InterfaceWidth) / unit.Nano,
		})
	}
	s.log.Info(r.Context(), "coating fit complete",
		logging.Float64("rms", result.RMS),
		logging.Int("func_evaluations", result.FuncEvaluations),
	)
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
