package store

import (
	"sync"

	"github.com/fluxforgeai/rugby-union/internal/domain"
	"github.com/fluxforgeai/rugby-union/internal/sportradar"
)

// MemoryStore keeps the most recent dataset and catalog lookups in memory
// so the HTTP API can answer without touching disk or the provider.
type MemoryStore struct {
	mu      sync.RWMutex
	dataset *domain.Dataset

	competitions []sportradar.Competition
	seasons      map[string][]sportradar.Season
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		seasons: make(map[string][]sportradar.Season),
	}
}

// Dataset returns the cached dataset, if one was set.
func (s *MemoryStore) Dataset() (domain.Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.dataset == nil {
		return domain.Dataset{}, false
	}
	return *s.dataset, true
}

// SetDataset replaces the cached dataset.
func (s *MemoryStore) SetDataset(dataset domain.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataset = &dataset
}

// Competitions returns the cached competition list.
func (s *MemoryStore) Competitions() ([]sportradar.Competition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.competitions == nil {
		return nil, false
	}
	out := make([]sportradar.Competition, len(s.competitions))
	copy(out, s.competitions)
	return out, true
}

// SetCompetitions caches the competition list.
func (s *MemoryStore) SetCompetitions(competitions []sportradar.Competition) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.competitions = make([]sportradar.Competition, len(competitions))
	copy(s.competitions, competitions)
}

// Seasons returns the cached seasons of one competition.
func (s *MemoryStore) Seasons(competitionID string) ([]sportradar.Season, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seasons, ok := s.seasons[competitionID]
	if !ok {
		return nil, false
	}
	out := make([]sportradar.Season, len(seasons))
	copy(out, seasons)
	return out, true
}

// SetSeasons caches the seasons of one competition.
func (s *MemoryStore) SetSeasons(competitionID string, seasons []sportradar.Season) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]sportradar.Season, len(seasons))
	copy(stored, seasons)
	s.seasons[competitionID] = stored
}
