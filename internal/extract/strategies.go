package extract

import (
	"context"
	"sync"

	"github.com/fluxforgeai/rugby-union/internal/sportradar"
)

// strategy is one tier of participation lookup. collect returns the raw
// lineup entries the tier can see for the team; the extractor filters them
// and moves on to the next tier when nothing qualifies.
type strategy interface {
	name() string
	collect(ctx context.Context, season *seasonData, teamID string) []sportradar.LineupPlayer
}

// seasonData memoizes season-wide payloads so every team in a season shares
// the same bulk responses.
type seasonData struct {
	gateway  Gateway
	seasonID string

	lineupsOnce sync.Once
	lineups     []sportradar.MatchLineup

	summariesOnce sync.Once
	summaries     []sportradar.MatchSummary
}

func (d *seasonData) seasonLineups(ctx context.Context) []sportradar.MatchLineup {
	d.lineupsOnce.Do(func() {
		d.lineups = d.gateway.SeasonLineups(ctx, d.seasonID)
	})
	return d.lineups
}

func (d *seasonData) seasonSummaries(ctx context.Context) []sportradar.MatchSummary {
	d.summariesOnce.Do(func() {
		d.summaries = d.gateway.SeasonSummaries(ctx, d.seasonID)
	})
	return d.summaries
}

// matchesInvolving returns the season's matches in which the team appears.
// Summaries without competitor metadata are kept so the per-match tiers can
// still check them.
func (d *seasonData) matchesInvolving(ctx context.Context, teamID string) []sportradar.SportEvent {
	var events []sportradar.SportEvent
	for _, summary := range d.seasonSummaries(ctx) {
		event := summary.SportEvent
		if event.ID == "" {
			continue
		}
		if len(event.Competitors) == 0 {
			events = append(events, event)
			continue
		}
		for _, comp := range event.Competitors {
			if comp.ID == teamID {
				events = append(events, event)
				break
			}
		}
	}
	return events
}

// seasonLineupStrategy reads the single bulk lineups payload for the whole
// season. One API call covers every team.
type seasonLineupStrategy struct{}

func (seasonLineupStrategy) name() string { return "season_lineups" }

func (seasonLineupStrategy) collect(ctx context.Context, season *seasonData, teamID string) []sportradar.LineupPlayer {
	var raw []sportradar.LineupPlayer
	for _, match := range season.seasonLineups(ctx) {
		for _, side := range match.Lineups.Competitors {
			if side.ID != teamID {
				continue
			}
			raw = append(raw, side.Players...)
		}
	}
	return raw
}

// matchLineupStrategy fetches per-match lineups for the team's matches. Used
// when the season bulk endpoint is absent from the provider package.
type matchLineupStrategy struct{}

func (matchLineupStrategy) name() string { return "match_lineups" }

func (matchLineupStrategy) collect(ctx context.Context, season *seasonData, teamID string) []sportradar.LineupPlayer {
	var raw []sportradar.LineupPlayer
	for _, event := range season.matchesInvolving(ctx, teamID) {
		if ctx.Err() != nil {
			return raw
		}
		lineups := season.gateway.SportEventLineups(ctx, event.ID)
		for _, side := range lineups.Competitors {
			if side.ID != teamID {
				continue
			}
			raw = append(raw, side.Players...)
		}
	}
	return raw
}

// matchStatisticsStrategy mines the per-match statistics block. Players
// listed there accrued statistics, so they demonstrably took the field even
// when no lineup was published.
type matchStatisticsStrategy struct{}

func (matchStatisticsStrategy) name() string { return "match_statistics" }

func (matchStatisticsStrategy) collect(ctx context.Context, season *seasonData, teamID string) []sportradar.LineupPlayer {
	var raw []sportradar.LineupPlayer
	for _, event := range season.matchesInvolving(ctx, teamID) {
		if ctx.Err() != nil {
			return raw
		}
		summary := season.gateway.SportEventSummary(ctx, event.ID)
		for _, side := range summary.Statistics.Totals.Competitors {
			if side.ID != teamID {
				continue
			}
			raw = append(raw, side.Players...)
		}
	}
	return raw
}
