package extract

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fluxforgeai/rugby-union/internal/domain"
	"github.com/fluxforgeai/rugby-union/internal/logging"
	"github.com/fluxforgeai/rugby-union/internal/progress"
	"github.com/fluxforgeai/rugby-union/internal/sportradar"
)

// Gateway is the slice of provider accessors extraction depends on.
type Gateway interface {
	SeasonLineups(ctx context.Context, seasonID string) []sportradar.MatchLineup
	SeasonSummaries(ctx context.Context, seasonID string) []sportradar.MatchSummary
	SportEventLineups(ctx context.Context, sportEventID string) sportradar.LineupSet
	SportEventSummary(ctx context.Context, sportEventID string) sportradar.EventSummary
}

// Config assembles an Extractor.
type Config struct {
	Gateway  Gateway
	Logger   *slog.Logger
	Progress progress.Sink

	// IncludeUnknown counts players whose entry carries no recorded
	// participation flag. Substitutes frequently arrive without one.
	IncludeUnknown bool
}

// Result is the outcome of one team's participation extraction.
type Result struct {
	Players []domain.Player
	// Strategy names the tier that produced the players.
	Strategy string
}

// Extractor resolves which players actually took the field for a team in a
// season. It tries cheaper bulk endpoints first and falls back to per-match
// calls, caching season-level payloads so sibling teams reuse them.
type Extractor struct {
	gateway        Gateway
	logger         *slog.Logger
	progress       progress.Sink
	includeUnknown bool
	strategies     []strategy

	mu      sync.Mutex
	seasons map[string]*seasonData
}

// NewExtractor builds an extractor with the tiered strategy order.
func NewExtractor(cfg Config) *Extractor {
	sink := cfg.Progress
	if sink == nil {
		sink = progress.Discard
	}
	return &Extractor{
		gateway:        cfg.Gateway,
		logger:         cfg.Logger,
		progress:       sink,
		includeUnknown: cfg.IncludeUnknown,
		strategies: []strategy{
			seasonLineupStrategy{},
			matchLineupStrategy{},
			matchStatisticsStrategy{},
		},
		seasons: make(map[string]*seasonData),
	}
}

// TeamParticipants returns the deduplicated participants for one team. The
// second return reports whether any tier yielded participants; when false the
// caller should fall back to the nominal roster. A tier whose entries are all
// excluded by the participation filter counts as empty, so an all-unused
// bench in the bulk payload still falls through to the per-match tiers.
func (e *Extractor) TeamParticipants(ctx context.Context, seasonID, teamID, teamName string) (Result, bool) {
	season := e.seasonFor(seasonID)

	for _, strat := range e.strategies {
		if ctx.Err() != nil {
			return Result{}, false
		}
		players := e.filterParticipants(strat.collect(ctx, season, teamID))
		if len(players) == 0 {
			continue
		}
		e.progress(fmt.Sprintf("Found %d players for %s via %s", len(players), teamName, strat.name()))
		logging.Info(e.logger, "participation extracted",
			logging.FieldTeam, teamName,
			logging.FieldCount, len(players),
			"strategy", strat.name(),
		)
		return Result{Players: players, Strategy: strat.name()}, true
	}

	e.progress(fmt.Sprintf("No lineup data found for %s", teamName))
	return Result{}, false
}

func (e *Extractor) seasonFor(seasonID string) *seasonData {
	e.mu.Lock()
	defer e.mu.Unlock()
	season, ok := e.seasons[seasonID]
	if !ok {
		season = &seasonData{gateway: e.gateway, seasonID: seasonID}
		e.seasons[seasonID] = season
	}
	return season
}

// filterParticipants keeps the entries that count as having played and
// collapses repeat appearances across matches. A player appearing without
// participation in one match and with it in another still counts; the first
// qualifying entry supplies the record.
func (e *Extractor) filterParticipants(raw []sportradar.LineupPlayer) []domain.Player {
	seen := make(map[string]struct{}, len(raw))
	players := make([]domain.Player, 0, len(raw))
	for _, entry := range raw {
		if entry.ID == "" {
			continue
		}
		if !e.participated(entry) {
			continue
		}
		if _, dup := seen[entry.ID]; dup {
			continue
		}
		seen[entry.ID] = struct{}{}
		players = append(players, sportradar.MapPlayer(entry))
	}
	return players
}

func (e *Extractor) participated(entry sportradar.LineupPlayer) bool {
	if entry.Played != nil {
		return *entry.Played
	}
	return e.includeUnknown
}
