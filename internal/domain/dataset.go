package domain

import "time"

// DatasetMetadata records provenance of a consolidated dataset.
type DatasetMetadata struct {
	APIVersion  string `json:"api_version"`
	APIProvider string `json:"api_provider"`
	Structure   string `json:"data_structure_version"`
}

// Dataset is the consolidated artifact written once per completed fetch job.
type Dataset struct {
	GeneratedAt             time.Time       `json:"generated_at"`
	CompetitionID           string          `json:"competition_id"`
	SeasonID                string          `json:"season_id"`
	FilteredByParticipation bool            `json:"filtered_by_participation"`
	TotalTeams              int             `json:"total_teams"`
	TotalPlayers            int             `json:"total_players"`
	Teams                   []Team          `json:"teams"`
	Metadata                DatasetMetadata `json:"metadata"`
}

// NewDataset assembles a dataset from completed team records, computing the
// team and player totals.
func NewDataset(competitionID, seasonID string, filtered bool, teams []Team, generatedAt time.Time) Dataset {
	total := 0
	for _, t := range teams {
		total += t.PlayerCount()
	}
	return Dataset{
		GeneratedAt:             generatedAt,
		CompetitionID:           competitionID,
		SeasonID:                seasonID,
		FilteredByParticipation: filtered,
		TotalTeams:              len(teams),
		TotalPlayers:            total,
		Teams:                   teams,
		Metadata: DatasetMetadata{
			APIVersion:  "v3",
			APIProvider: "Sportradar",
			Structure:   "1.0",
		},
	}
}
