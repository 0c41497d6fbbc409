package fetch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxforgeai/rugby-union/internal/checkpoint"
	"github.com/fluxforgeai/rugby-union/internal/datastore"
	"github.com/fluxforgeai/rugby-union/internal/domain"
	"github.com/fluxforgeai/rugby-union/internal/extract"
	"github.com/fluxforgeai/rugby-union/internal/sportradar"
	"github.com/fluxforgeai/rugby-union/internal/store"
	"github.com/fluxforgeai/rugby-union/internal/teststubs"
)

const (
	testCompetition = "sr:competition:180"
	testSeason      = "sr:season:107893"
	teamFrance      = "sr:competitor:4222"
	teamItaly       = "sr:competitor:4223"
	teamScotland    = "sr:competitor:4226"
)

func boolPtr(b bool) *bool { return &b }

type harness struct {
	orch        *Orchestrator
	stub        *teststubs.Gateway
	checkpoints *checkpoint.Store
	datasets    *datastore.Store
	memory      *store.MemoryStore
}

func newHarness(t *testing.T, stub *teststubs.Gateway) *harness {
	t.Helper()
	checkpoints := checkpoint.NewStore(t.TempDir(), nil)
	datasets := datastore.NewStore(t.TempDir(), 5)
	memory := store.NewMemoryStore()
	orch := NewOrchestrator(Config{
		Gateway:     stub,
		Extractor:   extract.NewExtractor(extract.Config{Gateway: stub, IncludeUnknown: true}),
		Checkpoints: checkpoints,
		Datasets:    datasets,
		Memory:      memory,
	})
	return &harness{orch: orch, stub: stub, checkpoints: checkpoints, datasets: datasets, memory: memory}
}

func testJob() Job {
	return Job{CompetitionID: testCompetition, SeasonID: testSeason, FilterParticipation: true}
}

// sixNationsStub covers all three paths at once: France in the season bulk
// lineups, Italy only via per-match lineups, Scotland only via its roster.
func sixNationsStub() *teststubs.Gateway {
	return &teststubs.Gateway{
		CompetitorsBySeason: map[string][]sportradar.Competitor{
			testSeason: {
				{ID: teamFrance, Name: "France", Abbreviation: "FRA"},
				{ID: teamItaly, Name: "Italy", Abbreviation: "ITA"},
				{ID: teamScotland, Name: "Scotland", Abbreviation: "SCO"},
			},
		},
		LineupsBySeason: map[string][]sportradar.MatchLineup{
			testSeason: {
				{
					SportEvent: sportradar.SportEvent{ID: "sr:sport_event:1"},
					Lineups: sportradar.LineupSet{Competitors: []sportradar.CompetitorLineup{
						{ID: teamFrance, Players: []sportradar.LineupPlayer{
							{ID: "sr:player:1", Name: "Dupont, Antoine", JerseyNumber: 9, Played: boolPtr(true)},
							{ID: "sr:player:2", Name: "Ramos, Thomas", JerseyNumber: 15, Played: nil},
							{ID: "sr:player:3", Name: "Bench, Warmer", JerseyNumber: 23, Played: boolPtr(false)},
						}},
					}},
				},
				{
					SportEvent: sportradar.SportEvent{ID: "sr:sport_event:2"},
					Lineups: sportradar.LineupSet{Competitors: []sportradar.CompetitorLineup{
						{ID: teamFrance, Players: []sportradar.LineupPlayer{
							{ID: "sr:player:1", Name: "Dupont, Antoine", JerseyNumber: 9, Played: boolPtr(true)},
							{ID: "sr:player:4", Name: "Penaud, Damian", JerseyNumber: 14, Played: boolPtr(true)},
						}},
					}},
				},
			},
		},
		SummariesBySeason: map[string][]sportradar.MatchSummary{
			testSeason: {
				{SportEvent: sportradar.SportEvent{
					ID:          "sr:sport_event:3",
					Competitors: []sportradar.Competitor{{ID: teamItaly}},
				}},
			},
		},
		EventLineups: map[string]sportradar.LineupSet{
			"sr:sport_event:3": {Competitors: []sportradar.CompetitorLineup{
				{ID: teamItaly, Players: []sportradar.LineupPlayer{
					{ID: "sr:player:9", Name: "Capuozzo, Ange", JerseyNumber: 15, Played: boolPtr(true)},
				}},
			}},
		},
		Profiles: map[string]sportradar.CompetitorProfile{
			teamScotland: {
				Competitor: sportradar.Competitor{ID: teamScotland, Name: "Scotland"},
				Players: []sportradar.LineupPlayer{
					{ID: "sr:player:20", Name: "Russell, Finn", Type: "FH", JerseyNumber: 10},
					{ID: "sr:player:21", Name: "Graham, Darcy", Type: "W", JerseyNumber: 14},
				},
			},
		},
	}
}

func TestRunFullSeason(t *testing.T) {
	h := newHarness(t, sixNationsStub())

	dataset, err := h.orch.Run(context.Background(), testJob())
	require.NoError(t, err)

	assert.Equal(t, 3, dataset.TotalTeams)
	assert.Equal(t, 6, dataset.TotalPlayers)
	require.Len(t, dataset.Teams, 3)

	byID := map[string]domain.Team{}
	for _, team := range dataset.Teams {
		byID[team.ID] = team
	}

	france := byID[teamFrance]
	assert.True(t, france.FilteredByParticipation)
	require.Len(t, france.Players, 3) // Dupont once, Ramos, Penaud; bench excluded
	assert.Equal(t, "sr:player:1", france.Players[0].ID)

	italy := byID[teamItaly]
	assert.True(t, italy.FilteredByParticipation)
	require.Len(t, italy.Players, 1)

	scotland := byID[teamScotland]
	assert.False(t, scotland.FilteredByParticipation)
	require.Len(t, scotland.Players, 2)
	assert.Empty(t, scotland.ErrorMessage)

	// Dataset persisted and cached; checkpoint finalized.
	latest, _, ok, err := h.datasets.Latest()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 6, latest.TotalPlayers)

	cached, ok := h.memory.Dataset()
	require.True(t, ok)
	assert.Equal(t, dataset.TotalPlayers, cached.TotalPlayers)

	_, resumed := h.checkpoints.Load(testCompetition, testSeason, true)
	assert.False(t, resumed)
}

func TestRunNoTeams(t *testing.T) {
	h := newHarness(t, &teststubs.Gateway{})

	_, err := h.orch.Run(context.Background(), testJob())
	assert.ErrorIs(t, err, ErrNoTeams)
}

func TestRunNoDataLeavesCheckpoint(t *testing.T) {
	stub := &teststubs.Gateway{
		CompetitorsBySeason: map[string][]sportradar.Competitor{
			testSeason: {{ID: teamFrance, Name: "France"}},
		},
	}
	h := newHarness(t, stub)

	_, err := h.orch.Run(context.Background(), testJob())
	assert.ErrorIs(t, err, ErrNoData)

	cp, resumed := h.checkpoints.Load(testCompetition, testSeason, true)
	assert.True(t, resumed)
	require.Len(t, cp.Teams, 1)
	assert.Equal(t, "no player data available", cp.Teams[0].ErrorMessage)
}

func TestRunResumesFromCheckpoint(t *testing.T) {
	stub := sixNationsStub()
	h := newHarness(t, stub)

	// France was finished by a previous run that died before Italy.
	cp := checkpoint.New(testCompetition, testSeason, true)
	cp.MarkCompleted(domain.Team{
		ID: teamFrance, Name: "France", FilteredByParticipation: true,
		Players: []domain.Player{{ID: "sr:player:1", Name: "Dupont, Antoine"}},
	})
	require.NoError(t, h.checkpoints.Save(cp))

	dataset, err := h.orch.Run(context.Background(), testJob())
	require.NoError(t, err)

	assert.Equal(t, 3, dataset.TotalTeams)
	// The checkpointed France record is reused verbatim.
	byID := map[string]domain.Team{}
	for _, team := range dataset.Teams {
		byID[team.ID] = team
	}
	require.Len(t, byID[teamFrance].Players, 1)
}

func TestRunUnfilteredTakesRosterPath(t *testing.T) {
	stub := sixNationsStub()
	stub.Profiles[teamFrance] = sportradar.CompetitorProfile{
		Competitor: sportradar.Competitor{ID: teamFrance, Name: "France"},
		Players: []sportradar.LineupPlayer{
			{ID: "sr:player:1", Name: "Dupont, Antoine"},
			{ID: "sr:player:3", Name: "Bench, Warmer"},
		},
	}
	stub.Profiles[teamItaly] = sportradar.CompetitorProfile{
		Competitor: sportradar.Competitor{ID: teamItaly, Name: "Italy"},
		Players:    []sportradar.LineupPlayer{{ID: "sr:player:9", Name: "Capuozzo, Ange"}},
	}
	h := newHarness(t, stub)

	job := testJob()
	job.FilterParticipation = false
	dataset, err := h.orch.Run(context.Background(), job)
	require.NoError(t, err)

	for _, team := range dataset.Teams {
		assert.False(t, team.FilteredByParticipation)
	}
	// Lineup endpoints are never consulted.
	assert.Zero(t, h.stub.CallCount("SeasonLineups"))
	assert.Zero(t, h.stub.CallCount("SportEventLineups"))
}

type panickyExtractor struct{}

func (panickyExtractor) TeamParticipants(context.Context, string, string, string) (extract.Result, bool) {
	panic("lineup shape assertion")
}

func TestRunSurvivesTeamPanic(t *testing.T) {
	stub := sixNationsStub()
	h := newHarness(t, stub)
	h.orch.extractor = panickyExtractor{}

	dataset, err := h.orch.Run(context.Background(), testJob())
	// Every team gets an error record instead of aborting the loop, so the
	// run finishes and reports no data.
	assert.ErrorIs(t, err, ErrNoData)
	assert.Empty(t, dataset.Teams)

	cp, resumed := h.checkpoints.Load(testCompetition, testSeason, true)
	require.True(t, resumed)
	require.Len(t, cp.Teams, 3)
	for _, team := range cp.Teams {
		assert.Contains(t, team.ErrorMessage, "processing failed")
	}
}

func TestRunCancelledContext(t *testing.T) {
	h := newHarness(t, sixNationsStub())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.orch.Run(ctx, testJob())
	assert.ErrorIs(t, err, context.Canceled)
}
