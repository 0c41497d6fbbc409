package checkpoint

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fluxforgeai/rugby-union/internal/logging"
)

// Store reads and writes checkpoint files under a directory, one file per
// competition/season pair. Writes go through a temp file and rename so a
// crash mid-write never leaves a torn checkpoint behind.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore builds a file-backed checkpoint store rooted at dir.
func NewStore(dir string, logger *slog.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

// Load returns the checkpoint for the job identity and whether the job is
// resuming. A missing, unreadable, or mismatched file yields a fresh
// checkpoint; the job starts over rather than trusting bad state.
func (s *Store) Load(competitionID, seasonID string, filterParticipation bool) (*Checkpoint, bool) {
	path := s.path(competitionID, seasonID)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn(s.logger, "checkpoint unreadable, starting fresh", "path", path, "error", err)
		}
		return New(competitionID, seasonID, filterParticipation), false
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		logging.Warn(s.logger, "checkpoint corrupt, starting fresh", "path", path, "error", err)
		return New(competitionID, seasonID, filterParticipation), false
	}

	if !cp.Matches(competitionID, seasonID, filterParticipation) {
		logging.Warn(s.logger, "checkpoint belongs to a different job, starting fresh",
			logging.FieldCompetition, cp.CompetitionID,
			logging.FieldSeason, cp.SeasonID,
		)
		return New(competitionID, seasonID, filterParticipation), false
	}

	logging.Info(s.logger, "resuming from checkpoint",
		logging.FieldCompetition, competitionID,
		logging.FieldSeason, seasonID,
		logging.FieldCount, len(cp.CompletedTeams),
	)
	return &cp, true
}

// Save persists the checkpoint synchronously.
func (s *Store) Save(cp *Checkpoint) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("checkpoint: create dir: %w", err)
	}
	cp.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return fmt.Errorf("checkpoint: encode: %w", err)
	}

	path := s.path(cp.CompetitionID, cp.SeasonID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("checkpoint: write temp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("checkpoint: replace: %w", err)
	}
	return nil
}

// Clear removes the checkpoint file after a job finishes. A missing file is
// not an error.
func (s *Store) Clear(competitionID, seasonID string) error {
	err := os.Remove(s.path(competitionID, seasonID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("checkpoint: clear: %w", err)
	}
	return nil
}

func (s *Store) path(competitionID, seasonID string) string {
	name := fmt.Sprintf("checkpoint_%s_%s.json", sanitizeID(competitionID), sanitizeID(seasonID))
	return filepath.Join(s.dir, name)
}

// sanitizeID makes a Sportradar identifier filesystem-safe. IDs look like
// "sr:season:107893".
func sanitizeID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}
