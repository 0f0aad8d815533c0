// Command model-server serves the instrument model API alongside a
// Prometheus /metrics endpoint.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/solarlab/rowland-optics/instrument"
	"github.com/solarlab/rowland-optics/internal/httpapi"
	"github.com/solarlab/rowland-optics/internal/logging"
	"github.com/solarlab/rowland-optics/internal/observability"
)

func main() {
	apiAddr := flag.String("api-addr", ":8080", "HTTP address the model API listens on")
	metricsAddr := flag.String("metrics-addr", ":9090", "HTTP address for Prometheus /metrics")
	configPath := flag.String("config", "configs/instrument.json", "Path to a JSON instrument configuration")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	collector, err := observability.NewCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.Err(err))
		os.Exit(1)
	}

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.Err(err))
		os.Exit(1)
	}

	f, err := os.Open(*configPath)
	if err != nil {
		log.Error(ctx, "failed to open instrument config", logging.String("path", *configPath), logging.Err(err))
		os.Exit(1)
	}
	ins, summary, err := instrument.Load(f)
	f.Close()
	if err != nil {
		log.Error(ctx, "failed to load instrument", logging.String("path", *configPath), logging.Err(err))
		os.Exit(1)
	}
	collector.SetInstrumentCounts(ins.Len(), len(ins.Surfaces()))
	log.Info(ctx, "loaded instrument",
		logging.String("path", *configPath),
		logging.Int("components", len(summary.ComponentIDs)),
	)

	metricsSrv := serveMetrics(*metricsAddr, collector, log)

	api := httpapi.New(ins, log, collector)
	apiSrv := &http.Server{
		Addr:    *apiAddr,
		Handler: api.Handler(),
	}

	log.Info(ctx, "starting model API server", logging.String("addr", *apiAddr))
	go func() {
		if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "API server exited", logging.Err(err))
		}
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	<-stopCtx.Done()

	log.Info(ctx, "shutting down model server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = apiSrv.Shutdown(shutdownCtx)
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)
}

func serveMetrics(addr string, collector *observability.Collector, log logging.Logger) *http.Server {
	if collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.Err(err))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
