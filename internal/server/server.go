// Package server wires the service together: provider client, extraction,
// stores, job manager, HTTP API, and the optional metrics listener.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/fluxforgeai/rugby-union/internal/checkpoint"
	"github.com/fluxforgeai/rugby-union/internal/config"
	"github.com/fluxforgeai/rugby-union/internal/datastore"
	"github.com/fluxforgeai/rugby-union/internal/extract"
	"github.com/fluxforgeai/rugby-union/internal/fetch"
	"github.com/fluxforgeai/rugby-union/internal/httpapi"
	"github.com/fluxforgeai/rugby-union/internal/metrics"
	"github.com/fluxforgeai/rugby-union/internal/progress"
	"github.com/fluxforgeai/rugby-union/internal/sportradar"
	"github.com/fluxforgeai/rugby-union/internal/store"
)

var metricsSetup = metrics.Setup

// Server owns the long-lived components of the service.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	manager       *fetch.Manager
	tracker       *progress.Tracker
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New constructs a fully wired server.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)

	tracker := progress.NewTracker(0, logger)

	client := sportradar.NewClient(sportradar.Config{
		BaseURL:      cfg.Sportradar.BaseURL,
		APIKey:       cfg.Sportradar.APIKey,
		RequestDelay: cfg.Sportradar.RequestDelay,
		MaxRetries:   cfg.Sportradar.MaxRetries,
		Timeout:      cfg.Sportradar.RequestTimeout,
		Logger:       logger,
		Metrics:      recorder,
		Progress:     tracker.Sink(),
	})
	gateway := sportradar.NewGateway(client)

	extractor := extract.NewExtractor(extract.Config{
		Gateway:        gateway,
		Logger:         logger,
		Progress:       tracker.Sink(),
		IncludeUnknown: cfg.Sportradar.IncludeUnknownParticipation,
	})

	memory := store.NewMemoryStore()
	checkpoints := checkpoint.NewStore(cfg.Storage.CheckpointDir, logger)
	datasets := datastore.NewStore(cfg.Storage.OutputDir, cfg.Storage.DatasetKeep)

	orchestrator := fetch.NewOrchestrator(fetch.Config{
		Gateway:     gateway,
		Extractor:   extractor,
		Checkpoints: checkpoints,
		Datasets:    datasets,
		Memory:      memory,
		Logger:      logger,
		Metrics:     recorder,
		Progress:    tracker.Sink(),
	})
	manager := fetch.NewManager(ctx, orchestrator, logger, recorder)

	handler := httpapi.NewHandler(manager, gateway, memory, datasets, tracker, cfg.Jerseys, logger)
	router := httpapi.NewRouter(handler, logger, recorder)

	httpSrv := stdServer{srv: &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		manager:       manager,
		tracker:       tracker,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}
}

// Run starts the listeners and blocks until the context is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	if !s.cfg.Sportradar.HasAPIKey() && s.logger != nil {
		s.logger.Warn("no Sportradar API key configured, provider calls will fail")
	}

	s.startMetrics()
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// An in-flight fetch job holds provider connections; stop it first.
	s.manager.Stop()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	telemetry := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.OtelService,
		OtlpEndpoint: cfg.Metrics.OtelEndpoint,
		OtlpInsecure: cfg.Metrics.OtelInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), telemetry)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "error", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && telemetry.Enabled {
		metricsSrv = stdServer{srv: &http.Server{
			Addr:    ":" + telemetry.Port,
			Handler: handler,
		}}
	}
	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
