// Package teststubs provides canned provider doubles shared by package
// tests. Not imported by production code.
package teststubs

import (
	"context"
	"sync"

	"github.com/fluxforgeai/rugby-union/internal/sportradar"
)

// Gateway serves pre-seeded provider payloads and records every accessor
// invocation so tests can assert on call patterns.
type Gateway struct {
	CompetitionList      []sportradar.Competition
	SeasonsByCompetition map[string][]sportradar.Season
	CompetitorsBySeason  map[string][]sportradar.Competitor
	LineupsBySeason      map[string][]sportradar.MatchLineup
	SummariesBySeason    map[string][]sportradar.MatchSummary
	EventLineups         map[string]sportradar.LineupSet
	EventSummaries       map[string]sportradar.EventSummary
	Profiles             map[string]sportradar.CompetitorProfile

	mu    sync.Mutex
	calls []string
}

func (g *Gateway) record(call string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, call)
}

// Calls returns the accessor invocations in order.
func (g *Gateway) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.calls))
	copy(out, g.calls)
	return out
}

// CallCount counts invocations of one accessor.
func (g *Gateway) CallCount(name string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (g *Gateway) Competitions(ctx context.Context) []sportradar.Competition {
	g.record("Competitions")
	return g.CompetitionList
}

func (g *Gateway) CompetitionSeasons(ctx context.Context, competitionID string) []sportradar.Season {
	g.record("CompetitionSeasons")
	return g.SeasonsByCompetition[competitionID]
}

func (g *Gateway) SeasonCompetitors(ctx context.Context, seasonID string) []sportradar.Competitor {
	g.record("SeasonCompetitors")
	return g.CompetitorsBySeason[seasonID]
}

func (g *Gateway) SeasonLineups(ctx context.Context, seasonID string) []sportradar.MatchLineup {
	g.record("SeasonLineups")
	return g.LineupsBySeason[seasonID]
}

func (g *Gateway) SeasonSummaries(ctx context.Context, seasonID string) []sportradar.MatchSummary {
	g.record("SeasonSummaries")
	return g.SummariesBySeason[seasonID]
}

func (g *Gateway) SportEventLineups(ctx context.Context, sportEventID string) sportradar.LineupSet {
	g.record("SportEventLineups")
	return g.EventLineups[sportEventID]
}

func (g *Gateway) SportEventSummary(ctx context.Context, sportEventID string) sportradar.EventSummary {
	g.record("SportEventSummary")
	return g.EventSummaries[sportEventID]
}

func (g *Gateway) CompetitorProfile(ctx context.Context, competitorID string) sportradar.CompetitorProfile {
	g.record("CompetitorProfile")
	return g.Profiles[competitorID]
}
