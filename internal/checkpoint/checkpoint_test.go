package checkpoint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxforgeai/rugby-union/internal/domain"
)

const (
	testCompetition = "sr:competition:180"
	testSeason      = "sr:season:107893"
)

func TestLoadMissingStartsFresh(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	cp, resumed := store.Load(testCompetition, testSeason, true)
	assert.False(t, resumed)
	assert.Equal(t, testCompetition, cp.CompetitionID)
	assert.Empty(t, cp.CompletedTeams)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	cp := New(testCompetition, testSeason, true)
	cp.MarkCompleted(domain.Team{ID: "sr:competitor:4222", Name: "France", Players: []domain.Player{
		{ID: "sr:player:1", Name: "Dupont, Antoine"},
		{ID: "sr:player:4", Name: "Penaud, Damian"},
	}})
	cp.MarkCompleted(domain.Team{ID: "sr:competitor:4223", Name: "Italy", Players: []domain.Player{
		{ID: "sr:player:9", Name: "Capuozzo, Ange"},
	}})
	require.NoError(t, store.Save(cp))

	loaded, resumed := store.Load(testCompetition, testSeason, true)
	assert.True(t, resumed)
	assert.Equal(t, []string{"sr:competitor:4222", "sr:competitor:4223"}, loaded.CompletedTeams)
	require.Len(t, loaded.Teams, 2)
	assert.Equal(t, "France", loaded.Teams[0].Name)
	assert.Equal(t, 3, loaded.TotalPlayers)
	assert.True(t, loaded.Completed("sr:competitor:4222"))
	assert.False(t, loaded.Completed("sr:competitor:9999"))
}

func TestLoadIdentityMismatchStartsFresh(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	cp := New(testCompetition, testSeason, true)
	cp.MarkCompleted(domain.Team{ID: "sr:competitor:4222", Name: "France"})
	require.NoError(t, store.Save(cp))

	// Same file on disk, different participation setting.
	fresh, resumed := store.Load(testCompetition, testSeason, false)
	assert.False(t, resumed)
	assert.Empty(t, fresh.CompletedTeams)
}

func TestLoadCorruptFileStartsFresh(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, nil)

	path := store.path(testCompetition, testSeason)
	require.NoError(t, os.WriteFile(path, []byte("{truncated"), 0o644))

	cp, resumed := store.Load(testCompetition, testSeason, true)
	assert.False(t, resumed)
	assert.Empty(t, cp.CompletedTeams)
}

func TestMarkCompletedIdempotent(t *testing.T) {
	cp := New(testCompetition, testSeason, true)
	cp.MarkCompleted(domain.Team{ID: "sr:competitor:4222", Name: "France", Players: []domain.Player{
		{ID: "sr:player:1", Name: "Dupont, Antoine"},
	}})
	cp.MarkCompleted(domain.Team{ID: "sr:competitor:4222", Name: "France (again)", Players: []domain.Player{
		{ID: "sr:player:1", Name: "Dupont, Antoine"},
		{ID: "sr:player:4", Name: "Penaud, Damian"},
	}})

	assert.Len(t, cp.CompletedTeams, 1)
	require.Len(t, cp.Teams, 1)
	assert.Equal(t, "France", cp.Teams[0].Name)
	// The duplicate does not inflate the running total.
	assert.Equal(t, 1, cp.TotalPlayers)
}

func TestClearRemovesFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, nil)

	cp := New(testCompetition, testSeason, true)
	require.NoError(t, store.Save(cp))
	require.NoError(t, store.Clear(testCompetition, testSeason))

	_, err := os.Stat(store.path(testCompetition, testSeason))
	assert.True(t, os.IsNotExist(err))

	// Clearing again is fine.
	assert.NoError(t, store.Clear(testCompetition, testSeason))
}

func TestFilenamesAreFilesystemSafe(t *testing.T) {
	store := NewStore("/data", nil)
	path := store.path(testCompetition, testSeason)
	assert.Equal(t, filepath.Join("/data", "checkpoint_sr_competition_180_sr_season_107893.json"), path)
}
