// Package checkpoint persists per-team fetch progress so an interrupted job
// resumes where it stopped instead of replaying finished API calls.
package checkpoint

import (
	"sort"
	"time"

	"github.com/fluxforgeai/rugby-union/internal/domain"
)

// Checkpoint is the durable progress record of one fetch job. A checkpoint
// only resumes a job with the same competition, season, and participation
// setting; anything else starts fresh.
type Checkpoint struct {
	CompetitionID       string        `json:"competition_id"`
	SeasonID            string        `json:"season_id"`
	FilterParticipation bool          `json:"filter_participation"`
	StartedAt           time.Time     `json:"started_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
	CompletedTeams      []string      `json:"completed_teams"`
	TotalPlayers        int           `json:"total_players"`
	Teams               []domain.Team `json:"teams"`
}

// New starts an empty checkpoint for the given job identity.
func New(competitionID, seasonID string, filterParticipation bool) *Checkpoint {
	return &Checkpoint{
		CompetitionID:       competitionID,
		SeasonID:            seasonID,
		FilterParticipation: filterParticipation,
		StartedAt:           time.Now().UTC(),
	}
}

// Matches reports whether the checkpoint belongs to the given job identity.
func (c *Checkpoint) Matches(competitionID, seasonID string, filterParticipation bool) bool {
	return c.CompetitionID == competitionID &&
		c.SeasonID == seasonID &&
		c.FilterParticipation == filterParticipation
}

// Completed reports whether a team has already been processed.
func (c *Checkpoint) Completed(teamID string) bool {
	for _, id := range c.CompletedTeams {
		if id == teamID {
			return true
		}
	}
	return false
}

// MarkCompleted records a team's result. Marking the same team twice keeps
// the first result.
func (c *Checkpoint) MarkCompleted(team domain.Team) {
	if c.Completed(team.ID) {
		return
	}
	c.CompletedTeams = append(c.CompletedTeams, team.ID)
	sort.Strings(c.CompletedTeams)
	c.TotalPlayers += team.PlayerCount()
	c.Teams = append(c.Teams, team)
}
