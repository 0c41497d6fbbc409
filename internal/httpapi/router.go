package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fluxforgeai/rugby-union/internal/metrics"
)

// NewRouter registers the API routes with logging and metrics middleware.
func NewRouter(handler *Handler, logger *slog.Logger, rec *metrics.Recorder) http.Handler {
	r := chi.NewRouter()
	r.Use(LoggingMiddleware(logger))
	r.Use(MetricsMiddleware(rec))

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)
	r.Post("/jobs", handler.StartJob)
	r.Get("/jobs/current", handler.CurrentJob)
	r.Get("/progress", handler.Progress)
	r.Get("/competitions", handler.Competitions)
	r.Get("/competitions/{id}/seasons", handler.CompetitionSeasons)
	r.Get("/datasets", handler.Datasets)
	r.Get("/datasets/latest", handler.LatestDataset)
	r.Get("/datasets/latest/teams/{id}", handler.LatestDatasetTeam)

	return r
}
