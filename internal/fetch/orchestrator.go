// Package fetch drives whole-season participation jobs: team discovery,
// tiered extraction, checkpointed progress, and the final dataset write.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fluxforgeai/rugby-union/internal/checkpoint"
	"github.com/fluxforgeai/rugby-union/internal/datastore"
	"github.com/fluxforgeai/rugby-union/internal/domain"
	"github.com/fluxforgeai/rugby-union/internal/extract"
	"github.com/fluxforgeai/rugby-union/internal/logging"
	"github.com/fluxforgeai/rugby-union/internal/metrics"
	"github.com/fluxforgeai/rugby-union/internal/progress"
	"github.com/fluxforgeai/rugby-union/internal/sportradar"
	"github.com/fluxforgeai/rugby-union/internal/store"
)

// ErrNoTeams reports a season whose competitor list came back empty; without
// teams there is nothing to fetch.
var ErrNoTeams = errors.New("fetch: no teams found for season")

// ErrNoData reports a finished team loop that produced no player data at
// all. The checkpoint stays on disk so a retry can resume.
var ErrNoData = errors.New("fetch: no player data collected")

// Job identifies one fetch run. Changing any field makes it a different job
// for checkpoint purposes.
type Job struct {
	CompetitionID       string `json:"competition_id"`
	SeasonID            string `json:"season_id"`
	FilterParticipation bool   `json:"filter_participation"`
}

// Gateway is the slice of provider accessors the orchestrator itself needs.
// Participation extraction brings its own.
type Gateway interface {
	SeasonCompetitors(ctx context.Context, seasonID string) []sportradar.Competitor
	CompetitorProfile(ctx context.Context, competitorID string) sportradar.CompetitorProfile
}

type participationExtractor interface {
	TeamParticipants(ctx context.Context, seasonID, teamID, teamName string) (extract.Result, bool)
}

// Config assembles an Orchestrator.
type Config struct {
	Gateway     Gateway
	Extractor   participationExtractor
	Checkpoints *checkpoint.Store
	Datasets    *datastore.Store
	Memory      *store.MemoryStore
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
	Progress    progress.Sink
}

// Orchestrator runs one job at a time: resolve the checkpoint, walk the
// season's teams in listing order, persist after every team, and write the
// consolidated dataset once all teams are done.
type Orchestrator struct {
	gateway     Gateway
	extractor   participationExtractor
	checkpoints *checkpoint.Store
	datasets    *datastore.Store
	memory      *store.MemoryStore
	logger      *slog.Logger
	metrics     *metrics.Recorder
	progress    progress.Sink
	now         func() time.Time
}

// NewOrchestrator builds an orchestrator from its collaborators.
func NewOrchestrator(cfg Config) *Orchestrator {
	sink := cfg.Progress
	if sink == nil {
		sink = progress.Discard
	}
	return &Orchestrator{
		gateway:     cfg.Gateway,
		extractor:   cfg.Extractor,
		checkpoints: cfg.Checkpoints,
		datasets:    cfg.Datasets,
		memory:      cfg.Memory,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
		progress:    sink,
		now:         time.Now,
	}
}

// Run executes the job to completion and returns the written dataset. A
// per-team failure is recorded on the team and does not abort the job; only
// an empty team list, a barren run, or a failed dataset write do.
func (o *Orchestrator) Run(ctx context.Context, job Job) (domain.Dataset, error) {
	cp, resumed := o.checkpoints.Load(job.CompetitionID, job.SeasonID, job.FilterParticipation)
	if resumed {
		o.progress(fmt.Sprintf("Resuming: %d teams already processed (%d players)", len(cp.CompletedTeams), cp.TotalPlayers))
	}

	o.progress("Fetching team list...")
	competitors := o.gateway.SeasonCompetitors(ctx, job.SeasonID)
	if len(competitors) == 0 {
		if err := ctx.Err(); err != nil {
			return domain.Dataset{}, err
		}
		return domain.Dataset{}, ErrNoTeams
	}
	o.progress(fmt.Sprintf("Found %d teams", len(competitors)))

	for i, comp := range competitors {
		if err := ctx.Err(); err != nil {
			return domain.Dataset{}, err
		}
		if cp.Completed(comp.ID) {
			o.progress(fmt.Sprintf("Skipping %s (already processed)", comp.Name))
			o.metrics.RecordTeamProcessed(true)
			continue
		}

		o.progress(fmt.Sprintf("Processing team %d/%d: %s", i+1, len(competitors), comp.Name))
		team := o.processTeam(ctx, job, comp)

		cp.MarkCompleted(team)
		if err := o.checkpoints.Save(cp); err != nil {
			logging.Error(o.logger, "checkpoint save failed", err,
				logging.FieldTeam, team.ID,
			)
		}
		o.metrics.RecordTeamProcessed(false)
	}

	withData := 0
	for _, team := range cp.Teams {
		if team.PlayerCount() > 0 {
			withData++
		}
	}
	if withData == 0 {
		if err := ctx.Err(); err != nil {
			return domain.Dataset{}, err
		}
		return domain.Dataset{}, ErrNoData
	}

	dataset := domain.NewDataset(job.CompetitionID, job.SeasonID, job.FilterParticipation, cp.Teams, o.now().UTC())
	path, err := o.datasets.Write(dataset)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("fetch: write dataset: %w", err)
	}
	o.progress(fmt.Sprintf("Saved dataset to %s", path))

	if o.memory != nil {
		o.memory.SetDataset(dataset)
	}
	if err := o.checkpoints.Clear(job.CompetitionID, job.SeasonID); err != nil {
		logging.Warn(o.logger, "checkpoint cleanup failed", "error", err)
	}

	logging.Info(o.logger, "fetch job complete",
		logging.FieldCompetition, job.CompetitionID,
		logging.FieldSeason, job.SeasonID,
		"teams", dataset.TotalTeams,
		"players", dataset.TotalPlayers,
	)
	return dataset, nil
}

// processTeam resolves one team's players. It never lets a failure escape;
// the worst outcome is a team record carrying an error message.
func (o *Orchestrator) processTeam(ctx context.Context, job Job, comp sportradar.Competitor) (team domain.Team) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error(o.logger, "team processing panicked", fmt.Errorf("%v", r),
				logging.FieldTeam, comp.ID,
			)
			team = sportradar.MapTeam(comp, nil, false)
			team.ErrorMessage = fmt.Sprintf("processing failed: %v", r)
		}
	}()

	if job.FilterParticipation {
		if result, ok := o.extractor.TeamParticipants(ctx, job.SeasonID, comp.ID, comp.Name); ok {
			return sportradar.MapTeam(comp, result.Players, true)
		}
		o.progress(fmt.Sprintf("Falling back to full roster for %s", comp.Name))
	}

	profile := o.gateway.CompetitorProfile(ctx, comp.ID)
	players := sportradar.MapPlayers(profile.Players)
	team = sportradar.MapTeam(comp, players, false)
	if len(players) == 0 {
		team.ErrorMessage = "no player data available"
		o.progress(fmt.Sprintf("No player data available for %s", comp.Name))
	} else {
		o.progress(fmt.Sprintf("Found %d players for %s from roster", len(players), comp.Name))
	}
	return team
}
