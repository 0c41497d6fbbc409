package domain

// Player is the canonical player shape carried through extraction and
// persisted in datasets. Records are treated as immutable once built;
// deduplication replaces nothing, the first record seen for an ID wins.
type Player struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Position     string `json:"type"`
	JerseyNumber int    `json:"jersey_number"`
	DateOfBirth  string `json:"date_of_birth,omitempty"`
	Nationality  string `json:"nationality,omitempty"`
	Height       int    `json:"height"`
	Weight       int    `json:"weight"`
	// Played is tri-state: nil means the provider did not say, which most
	// often indicates a substitute who entered the game.
	Played  *bool `json:"played,omitempty"`
	Starter bool  `json:"starter"`
}

// ActuallyPlayed reports whether the player took the field. Only an explicit
// played=false excludes; true or absent both include.
func (p Player) ActuallyPlayed() bool {
	return p.Played == nil || *p.Played
}

// PositionLabel returns the position code, or "Unknown" when unset.
func (p Player) PositionLabel() string {
	if p.Position == "" {
		return "Unknown"
	}
	return p.Position
}
