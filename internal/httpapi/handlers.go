// Package httpapi exposes the fetch service over HTTP: job control, progress
// inspection, catalog browsing, and dataset retrieval.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fluxforgeai/rugby-union/internal/config"
	"github.com/fluxforgeai/rugby-union/internal/datastore"
	"github.com/fluxforgeai/rugby-union/internal/domain"
	"github.com/fluxforgeai/rugby-union/internal/fetch"
	"github.com/fluxforgeai/rugby-union/internal/logging"
	"github.com/fluxforgeai/rugby-union/internal/progress"
	"github.com/fluxforgeai/rugby-union/internal/sportradar"
	"github.com/fluxforgeai/rugby-union/internal/store"
	"github.com/fluxforgeai/rugby-union/internal/timeutil"
)

// CatalogGateway lists competitions and their seasons from the provider.
type CatalogGateway interface {
	Competitions(ctx context.Context) []sportradar.Competition
	CompetitionSeasons(ctx context.Context, competitionID string) []sportradar.Season
}

// JobManager controls the background fetch job.
type JobManager interface {
	Start(job fetch.Job) (fetch.JobStatus, error)
	Status() (fetch.JobStatus, bool)
	Running() bool
}

// Handler wires HTTP routes to the fetch service.
type Handler struct {
	manager  JobManager
	gateway  CatalogGateway
	memory   *store.MemoryStore
	datasets *datastore.Store
	tracker  *progress.Tracker
	jerseys  config.JerseyConfig
	logger   *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(manager JobManager, gateway CatalogGateway, memory *store.MemoryStore, datasets *datastore.Store, tracker *progress.Tracker, jerseys config.JerseyConfig, logger *slog.Logger) *Handler {
	return &Handler{
		manager:  manager,
		gateway:  gateway,
		memory:   memory,
		datasets: datasets,
		tracker:  tracker,
		jerseys:  jerseys,
		logger:   logger,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports readiness together with whether a job is in flight.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ready",
		"job_running": h.manager.Running(),
	})
}

type startJobRequest struct {
	CompetitionID       string `json:"competition_id"`
	SeasonID            string `json:"season_id"`
	FilterParticipation *bool  `json:"filter_participation"`
}

// StartJob launches a fetch job. Only one job runs at a time; a second
// request is rejected with 409 rather than queued.
func (h *Handler) StartJob(w http.ResponseWriter, r *http.Request) {
	var req startJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CompetitionID == "" || req.SeasonID == "" {
		h.writeError(w, http.StatusBadRequest, "competition_id and season_id are required")
		return
	}

	filter := true
	if req.FilterParticipation != nil {
		filter = *req.FilterParticipation
	}

	status, err := h.manager.Start(fetch.Job{
		CompetitionID:       req.CompetitionID,
		SeasonID:            req.SeasonID,
		FilterParticipation: filter,
	})
	if err != nil {
		if errors.Is(err, fetch.ErrJobRunning) {
			h.writeError(w, http.StatusConflict, "a fetch job is already running")
			return
		}
		h.writeError(w, http.StatusInternalServerError, "failed to start job")
		return
	}

	logging.Info(logging.FromContext(r.Context(), h.logger), "fetch job accepted",
		logging.FieldJob, status.ID,
		logging.FieldCompetition, req.CompetitionID,
		logging.FieldSeason, req.SeasonID,
	)
	h.writeJSON(w, http.StatusAccepted, status)
}

// CurrentJob returns the active or most recent job.
func (h *Handler) CurrentJob(w http.ResponseWriter, r *http.Request) {
	status, ok := h.manager.Status()
	if !ok {
		h.writeError(w, http.StatusNotFound, "no job has been started")
		return
	}
	h.writeJSON(w, http.StatusOK, status)
}

// Progress returns the recent progress log lines.
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	var lines []string
	if h.tracker != nil {
		lines = h.tracker.Log()
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"lines": lines})
}

// Competitions lists rugby competitions, served from cache when possible.
func (h *Handler) Competitions(w http.ResponseWriter, r *http.Request) {
	if cached, ok := h.memory.Competitions(); ok {
		h.writeJSON(w, http.StatusOK, map[string]any{"competitions": cached})
		return
	}

	competitions := h.gateway.Competitions(r.Context())
	if competitions == nil {
		h.writeError(w, http.StatusBadGateway, "unable to fetch competitions")
		return
	}
	h.memory.SetCompetitions(competitions)
	h.writeJSON(w, http.StatusOK, map[string]any{"competitions": competitions})
}

// CompetitionSeasons lists the seasons of one competition.
func (h *Handler) CompetitionSeasons(w http.ResponseWriter, r *http.Request) {
	competitionID := chi.URLParam(r, "id")
	if competitionID == "" {
		h.writeError(w, http.StatusBadRequest, "missing competition id")
		return
	}

	if cached, ok := h.memory.Seasons(competitionID); ok {
		h.writeJSON(w, http.StatusOK, map[string]any{"seasons": cached})
		return
	}

	seasons := h.gateway.CompetitionSeasons(r.Context(), competitionID)
	if seasons == nil {
		h.writeError(w, http.StatusBadGateway, "unable to fetch seasons")
		return
	}
	h.memory.SetSeasons(competitionID, seasons)
	h.writeJSON(w, http.StatusOK, map[string]any{"seasons": seasons})
}

type datasetEntry struct {
	Stamp       string `json:"stamp"`
	GeneratedAt string `json:"generated_at"`
}

// Datasets lists the stored dataset files, oldest first.
func (h *Handler) Datasets(w http.ResponseWriter, r *http.Request) {
	stamps, err := h.datasets.List()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to list datasets")
		return
	}
	entries := make([]datasetEntry, 0, len(stamps))
	for _, stamp := range stamps {
		entry := datasetEntry{Stamp: stamp}
		if t, err := timeutil.ParseStamp(stamp); err == nil {
			entry.GeneratedAt = t.UTC().Format("2006-01-02T15:04:05Z")
		}
		entries = append(entries, entry)
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"datasets": entries})
}

// LatestDataset returns the newest dataset, preferring the in-memory copy.
func (h *Handler) LatestDataset(w http.ResponseWriter, r *http.Request) {
	if dataset, ok := h.memory.Dataset(); ok {
		h.writeJSON(w, http.StatusOK, dataset)
		return
	}

	dataset, _, ok, err := h.datasets.Latest()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to load dataset")
		return
	}
	if !ok {
		h.writeError(w, http.StatusNotFound, "no dataset available")
		return
	}
	h.memory.SetDataset(dataset)
	h.writeJSON(w, http.StatusOK, dataset)
}

type teamDetail struct {
	Team            domain.Team     `json:"team"`
	PositionSummary map[string]int  `json:"position_summary"`
	Starters        []domain.Player `json:"starters"`
	Substitutes     []domain.Player `json:"substitutes"`
}

// LatestDatasetTeam returns one team from the newest dataset together with
// its derived jersey-range views.
func (h *Handler) LatestDatasetTeam(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "id")

	dataset, ok := h.memory.Dataset()
	if !ok {
		var err error
		dataset, _, ok, err = h.datasets.Latest()
		if err != nil {
			h.writeError(w, http.StatusInternalServerError, "failed to load dataset")
			return
		}
		if !ok {
			h.writeError(w, http.StatusNotFound, "no dataset available")
			return
		}
		h.memory.SetDataset(dataset)
	}

	for _, team := range dataset.Teams {
		if team.ID != teamID {
			continue
		}
		h.writeJSON(w, http.StatusOK, teamDetail{
			Team:            team,
			PositionSummary: team.PositionSummary(),
			Starters:        team.Starters(h.jerseys.StarterMax),
			Substitutes:     team.Substitutes(h.jerseys.StarterMax, h.jerseys.SubstituteMax),
		})
		return
	}
	h.writeError(w, http.StatusNotFound, "team not found in latest dataset")
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
