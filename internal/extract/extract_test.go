package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxforgeai/rugby-union/internal/sportradar"
	"github.com/fluxforgeai/rugby-union/internal/teststubs"
)

const (
	testSeason = "sr:season:107893"
	teamFrance = "sr:competitor:4222"
	teamItaly  = "sr:competitor:4223"
)

func boolPtr(b bool) *bool { return &b }

func player(id, name string, played *bool) sportradar.LineupPlayer {
	return sportradar.LineupPlayer{ID: id, Name: name, Played: played}
}

func matchLineup(eventID, teamID string, players ...sportradar.LineupPlayer) sportradar.MatchLineup {
	return sportradar.MatchLineup{
		SportEvent: sportradar.SportEvent{ID: eventID},
		Lineups: sportradar.LineupSet{
			Competitors: []sportradar.CompetitorLineup{
				{ID: teamID, Players: players},
			},
		},
	}
}

func newExtractor(gateway Gateway) *Extractor {
	return NewExtractor(Config{Gateway: gateway, IncludeUnknown: true})
}

func TestSeasonLineupTierFiltersParticipation(t *testing.T) {
	stub := &teststubs.Gateway{
		LineupsBySeason: map[string][]sportradar.MatchLineup{
			testSeason: {
				matchLineup("sr:sport_event:1", teamFrance,
					player("sr:player:1", "Dupont, Antoine", boolPtr(true)),
					player("sr:player:2", "Bench, Warmer", boolPtr(false)),
					player("sr:player:3", "Late, Call", nil),
				),
			},
		},
	}

	result, ok := newExtractor(stub).TeamParticipants(context.Background(), testSeason, teamFrance, "France")
	require.True(t, ok)
	assert.Equal(t, "season_lineups", result.Strategy)
	require.Len(t, result.Players, 2)
	assert.Equal(t, "sr:player:1", result.Players[0].ID)
	assert.Equal(t, "sr:player:3", result.Players[1].ID)
}

func TestUnknownParticipationExcludedWhenConfigured(t *testing.T) {
	stub := &teststubs.Gateway{
		LineupsBySeason: map[string][]sportradar.MatchLineup{
			testSeason: {
				matchLineup("sr:sport_event:1", teamFrance,
					player("sr:player:1", "Dupont, Antoine", boolPtr(true)),
					player("sr:player:3", "Late, Call", nil),
				),
			},
		},
	}
	e := NewExtractor(Config{Gateway: stub, IncludeUnknown: false})

	result, ok := e.TeamParticipants(context.Background(), testSeason, teamFrance, "France")
	require.True(t, ok)
	require.Len(t, result.Players, 1)
	assert.Equal(t, "sr:player:1", result.Players[0].ID)
}

func TestDeduplicatesAcrossMatches(t *testing.T) {
	stub := &teststubs.Gateway{
		LineupsBySeason: map[string][]sportradar.MatchLineup{
			testSeason: {
				matchLineup("sr:sport_event:1", teamFrance,
					player("sr:player:1", "Dupont, Antoine", boolPtr(true)),
					player("sr:player:2", "Ramos, Thomas", boolPtr(false)),
				),
				matchLineup("sr:sport_event:2", teamFrance,
					player("sr:player:1", "Dupont, Antoine", boolPtr(true)),
					player("sr:player:2", "Ramos, Thomas", boolPtr(true)),
				),
			},
		},
	}

	result, ok := newExtractor(stub).TeamParticipants(context.Background(), testSeason, teamFrance, "France")
	require.True(t, ok)
	require.Len(t, result.Players, 2)
	// Not played in match one, played in match two: still counts once.
	assert.Equal(t, "sr:player:2", result.Players[1].ID)
}

func TestFallsBackToMatchLineups(t *testing.T) {
	stub := &teststubs.Gateway{
		SummariesBySeason: map[string][]sportradar.MatchSummary{
			testSeason: {
				{SportEvent: sportradar.SportEvent{
					ID: "sr:sport_event:1",
					Competitors: []sportradar.Competitor{
						{ID: teamFrance}, {ID: teamItaly},
					},
				}},
				{SportEvent: sportradar.SportEvent{
					ID: "sr:sport_event:2",
					Competitors: []sportradar.Competitor{
						{ID: teamItaly}, {ID: "sr:competitor:4224"},
					},
				}},
			},
		},
		EventLineups: map[string]sportradar.LineupSet{
			"sr:sport_event:1": {Competitors: []sportradar.CompetitorLineup{
				{ID: teamItaly, Players: []sportradar.LineupPlayer{
					player("sr:player:9", "Capuozzo, Ange", boolPtr(true)),
				}},
			}},
		},
	}

	result, ok := newExtractor(stub).TeamParticipants(context.Background(), testSeason, teamItaly, "Italy")
	require.True(t, ok)
	assert.Equal(t, "match_lineups", result.Strategy)
	require.Len(t, result.Players, 1)
	assert.Equal(t, "sr:player:9", result.Players[0].ID)
	// Only Italy's matches are fetched individually.
	assert.Equal(t, 2, stub.CallCount("SportEventLineups"))
}

func TestAllExcludedSeasonLineupFallsThrough(t *testing.T) {
	// The bulk payload lists France, but every entry is an unused squad
	// member. The per-match tier still gets its turn.
	stub := &teststubs.Gateway{
		LineupsBySeason: map[string][]sportradar.MatchLineup{
			testSeason: {
				matchLineup("sr:sport_event:1", teamFrance,
					player("sr:player:2", "Bench, Warmer", boolPtr(false)),
					player("sr:player:4", "Squad, Spare", boolPtr(false)),
				),
			},
		},
		SummariesBySeason: map[string][]sportradar.MatchSummary{
			testSeason: {
				{SportEvent: sportradar.SportEvent{
					ID:          "sr:sport_event:1",
					Competitors: []sportradar.Competitor{{ID: teamFrance}},
				}},
			},
		},
		EventLineups: map[string]sportradar.LineupSet{
			"sr:sport_event:1": {Competitors: []sportradar.CompetitorLineup{
				{ID: teamFrance, Players: []sportradar.LineupPlayer{
					player("sr:player:1", "Dupont, Antoine", boolPtr(true)),
				}},
			}},
		},
	}

	result, ok := newExtractor(stub).TeamParticipants(context.Background(), testSeason, teamFrance, "France")
	require.True(t, ok)
	assert.Equal(t, "match_lineups", result.Strategy)
	require.Len(t, result.Players, 1)
	assert.Equal(t, "sr:player:1", result.Players[0].ID)
}

func TestEveryTierFiltersToEmpty(t *testing.T) {
	stub := &teststubs.Gateway{
		LineupsBySeason: map[string][]sportradar.MatchLineup{
			testSeason: {
				matchLineup("sr:sport_event:1", teamFrance,
					player("sr:player:2", "Bench, Warmer", boolPtr(false)),
				),
			},
		},
		SummariesBySeason: map[string][]sportradar.MatchSummary{
			testSeason: {
				{SportEvent: sportradar.SportEvent{
					ID:          "sr:sport_event:1",
					Competitors: []sportradar.Competitor{{ID: teamFrance}},
				}},
			},
		},
		EventLineups: map[string]sportradar.LineupSet{
			"sr:sport_event:1": {Competitors: []sportradar.CompetitorLineup{
				{ID: teamFrance, Players: []sportradar.LineupPlayer{
					player("sr:player:2", "Bench, Warmer", boolPtr(false)),
				}},
			}},
		},
	}

	result, ok := newExtractor(stub).TeamParticipants(context.Background(), testSeason, teamFrance, "France")
	assert.False(t, ok)
	assert.Empty(t, result.Players)
}

func TestFallsBackToMatchStatistics(t *testing.T) {
	stub := &teststubs.Gateway{
		SummariesBySeason: map[string][]sportradar.MatchSummary{
			testSeason: {
				{SportEvent: sportradar.SportEvent{
					ID:          "sr:sport_event:1",
					Competitors: []sportradar.Competitor{{ID: teamItaly}},
				}},
			},
		},
		EventSummaries: map[string]sportradar.EventSummary{
			"sr:sport_event:1": eventSummaryWith(teamItaly,
				player("sr:player:9", "Capuozzo, Ange", nil),
			),
		},
	}

	result, ok := newExtractor(stub).TeamParticipants(context.Background(), testSeason, teamItaly, "Italy")
	require.True(t, ok)
	assert.Equal(t, "match_statistics", result.Strategy)
	require.Len(t, result.Players, 1)
}

func TestNoTierYieldsData(t *testing.T) {
	stub := &teststubs.Gateway{}

	result, ok := newExtractor(stub).TeamParticipants(context.Background(), testSeason, teamFrance, "France")
	assert.False(t, ok)
	assert.Empty(t, result.Players)
}

func TestSeasonPayloadsFetchedOnce(t *testing.T) {
	stub := &teststubs.Gateway{
		LineupsBySeason: map[string][]sportradar.MatchLineup{
			testSeason: {
				matchLineup("sr:sport_event:1", teamFrance,
					player("sr:player:1", "Dupont, Antoine", boolPtr(true))),
				matchLineup("sr:sport_event:1", teamItaly,
					player("sr:player:9", "Capuozzo, Ange", boolPtr(true))),
			},
		},
	}
	e := newExtractor(stub)
	ctx := context.Background()

	_, ok := e.TeamParticipants(ctx, testSeason, teamFrance, "France")
	require.True(t, ok)
	_, ok = e.TeamParticipants(ctx, testSeason, teamItaly, "Italy")
	require.True(t, ok)

	assert.Equal(t, 1, stub.CallCount("SeasonLineups"))
}

func TestMissingPlayerIDSkipped(t *testing.T) {
	stub := &teststubs.Gateway{
		LineupsBySeason: map[string][]sportradar.MatchLineup{
			testSeason: {
				matchLineup("sr:sport_event:1", teamFrance,
					player("", "Nameless, Entry", boolPtr(true)),
					player("sr:player:1", "Dupont, Antoine", boolPtr(true)),
				),
			},
		},
	}

	result, ok := newExtractor(stub).TeamParticipants(context.Background(), testSeason, teamFrance, "France")
	require.True(t, ok)
	require.Len(t, result.Players, 1)
	assert.Equal(t, "sr:player:1", result.Players[0].ID)
}

func eventSummaryWith(teamID string, players ...sportradar.LineupPlayer) sportradar.EventSummary {
	var summary sportradar.EventSummary
	summary.Statistics.Totals.Competitors = []sportradar.StatCompetitor{
		{ID: teamID, Players: players},
	}
	return summary
}
