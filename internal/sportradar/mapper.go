package sportradar

import "github.com/fluxforgeai/rugby-union/internal/domain"

// MapPlayer converts a raw lineup/roster entry into the canonical shape.
func MapPlayer(raw LineupPlayer) domain.Player {
	position := raw.Type
	if position == "" {
		position = raw.Position
	}
	if position == "" {
		position = "Unknown"
	}
	name := raw.Name
	if name == "" {
		name = "Unknown"
	}
	return domain.Player{
		ID:           raw.ID,
		Name:         name,
		FirstName:    raw.FirstName,
		LastName:     raw.LastName,
		Position:     position,
		JerseyNumber: raw.JerseyNumber,
		DateOfBirth:  raw.DateOfBirth,
		Nationality:  raw.Nationality,
		Height:       raw.Height,
		Weight:       raw.Weight,
		Played:       raw.Played,
		Starter:      raw.Starter,
	}
}

// MapPlayers converts a raw player list, preserving order.
func MapPlayers(raw []LineupPlayer) []domain.Player {
	out := make([]domain.Player, 0, len(raw))
	for _, p := range raw {
		out = append(out, MapPlayer(p))
	}
	return out
}

// MapTeam builds a team record from competitor metadata and mapped players.
func MapTeam(comp Competitor, players []domain.Player, filtered bool) domain.Team {
	name := comp.Name
	if name == "" {
		name = "Unknown"
	}
	return domain.Team{
		ID:                      comp.ID,
		Name:                    name,
		Abbreviation:            comp.Abbreviation,
		Players:                 players,
		FilteredByParticipation: filtered,
	}
}
