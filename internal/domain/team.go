package domain

import "sort"

// Default jersey partitions for rugby union: 1-15 start, 16-23 bench.
const (
	DefaultStarterMax    = 15
	DefaultSubstituteMax = 23
)

// Team represents one competitor and the players resolved for it.
type Team struct {
	ID           string   `json:"team_id"`
	Name         string   `json:"team"`
	Abbreviation string   `json:"abbreviation,omitempty"`
	Players      []Player `json:"players"`
	// FilteredByParticipation records whether Players came from match
	// participation data or is the full nominal roster. It can diverge from
	// the job-level flag when the roster fallback was taken.
	FilteredByParticipation bool   `json:"filtered_by_participation"`
	ErrorMessage            string `json:"error,omitempty"`
}

// PlayerCount returns the number of players on the team record.
func (t Team) PlayerCount() int {
	return len(t.Players)
}

// PositionSummary maps position code to player count.
func (t Team) PositionSummary() map[string]int {
	summary := make(map[string]int, len(t.Players))
	for _, p := range t.Players {
		summary[p.PositionLabel()]++
	}
	return summary
}

// PlayersByPosition returns players matching the given position code.
func (t Team) PlayersByPosition(position string) []Player {
	var out []Player
	for _, p := range t.Players {
		if p.Position == position {
			out = append(out, p)
		}
	}
	return out
}

// Starters returns players wearing 1..starterMax, sorted by jersey number.
// Pass 0 to use the rugby-union default.
func (t Team) Starters(starterMax int) []Player {
	if starterMax <= 0 {
		starterMax = DefaultStarterMax
	}
	return t.jerseyRange(1, starterMax)
}

// Substitutes returns players wearing starterMax+1..substituteMax, sorted by
// jersey number. Pass zeros to use the rugby-union defaults.
func (t Team) Substitutes(starterMax, substituteMax int) []Player {
	if starterMax <= 0 {
		starterMax = DefaultStarterMax
	}
	if substituteMax <= starterMax {
		substituteMax = DefaultSubstituteMax
	}
	return t.jerseyRange(starterMax+1, substituteMax)
}

func (t Team) jerseyRange(low, high int) []Player {
	var out []Player
	for _, p := range t.Players {
		if p.JerseyNumber >= low && p.JerseyNumber <= high {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].JerseyNumber < out[j].JerseyNumber
	})
	return out
}
