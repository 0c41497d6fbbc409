package sportradar

import "encoding/json"

// Competition is one rugby competition as listed by the provider.
type Competition struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Gender string `json:"gender,omitempty"`
}

// Season is one season of a competition.
type Season struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Year      string `json:"year"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// Competitor identifies one team. Some endpoints wrap the payload under a
// "competitor" key and some inline it; UnmarshalJSON accepts both shapes.
type Competitor struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

func (c *Competitor) UnmarshalJSON(data []byte) error {
	type plain Competitor
	var direct plain
	if err := json.Unmarshal(data, &direct); err != nil {
		return err
	}
	if direct.ID != "" {
		*c = Competitor(direct)
		return nil
	}

	var wrapped struct {
		Competitor plain `json:"competitor"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	if wrapped.Competitor.ID != "" {
		*c = Competitor(wrapped.Competitor)
		return nil
	}
	*c = Competitor(direct)
	return nil
}

// LineupPlayer is the raw player entry inside a match lineup or roster.
// Played is tri-state: absent means the provider did not record whether the
// player entered the game.
type LineupPlayer struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Type         string `json:"type,omitempty"`
	Position     string `json:"position,omitempty"`
	JerseyNumber int    `json:"jersey_number,omitempty"`
	DateOfBirth  string `json:"date_of_birth,omitempty"`
	Nationality  string `json:"nationality,omitempty"`
	Height       int    `json:"height,omitempty"`
	Weight       int    `json:"weight,omitempty"`
	Played       *bool  `json:"played,omitempty"`
	Starter      bool   `json:"starter,omitempty"`
}

// CompetitorLineup is one team's side of a match lineup. The competitor
// fields may arrive flat or nested under "competitor" depending on the
// endpoint generation.
type CompetitorLineup struct {
	ID      string
	Name    string
	Players []LineupPlayer
}

func (l *CompetitorLineup) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Competitor struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"competitor"`
		Players []LineupPlayer `json:"players"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.ID = raw.ID
	l.Name = raw.Name
	if l.ID == "" {
		l.ID = raw.Competitor.ID
		l.Name = raw.Competitor.Name
	}
	l.Players = raw.Players
	return nil
}

// LineupSet groups both competitors' lineups for one match.
type LineupSet struct {
	Competitors []CompetitorLineup `json:"competitors"`
}

// SportEvent describes one scheduled match.
type SportEvent struct {
	ID          string       `json:"id"`
	StartTime   string       `json:"start_time,omitempty"`
	Competitors []Competitor `json:"competitors,omitempty"`
}

// MatchLineup pairs a match with the lineups fielded in it, as returned by
// the season lineups endpoint.
type MatchLineup struct {
	SportEvent SportEvent `json:"sport_event"`
	Lineups    LineupSet  `json:"lineups"`
}

// MatchSummary is one entry of the season summaries listing.
type MatchSummary struct {
	SportEvent SportEvent `json:"sport_event"`
}

// StatCompetitor is one team's slice of the match statistics block. Players
// listed here are the ones who accrued statistics, i.e. took the field.
type StatCompetitor struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Players []LineupPlayer `json:"players"`
}

// EventSummary is the single-event summary payload with its statistics.
type EventSummary struct {
	SportEvent SportEvent `json:"sport_event"`
	Statistics struct {
		Totals struct {
			Competitors []StatCompetitor `json:"competitors"`
		} `json:"totals"`
	} `json:"statistics"`
}

// CompetitorProfile is the full nominal roster for one team. The players
// array sits at the top level or under "competitor" depending on the
// provider configuration.
type CompetitorProfile struct {
	Competitor Competitor
	Players    []LineupPlayer
}

func (p *CompetitorProfile) UnmarshalJSON(data []byte) error {
	var raw struct {
		Competitor struct {
			ID           string         `json:"id"`
			Name         string         `json:"name"`
			Abbreviation string         `json:"abbreviation"`
			Players      []LineupPlayer `json:"players"`
		} `json:"competitor"`
		Players []LineupPlayer `json:"players"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Competitor = Competitor{
		ID:           raw.Competitor.ID,
		Name:         raw.Competitor.Name,
		Abbreviation: raw.Competitor.Abbreviation,
	}
	p.Players = raw.Players
	if len(p.Players) == 0 {
		p.Players = raw.Competitor.Players
	}
	return nil
}

type competitionsResponse struct {
	Competitions []Competition `json:"competitions"`
}

type seasonsResponse struct {
	Seasons []Season `json:"seasons"`
}

type competitorsResponse struct {
	SeasonCompetitors []Competitor `json:"season_competitors"`
}

type seasonLineupsResponse struct {
	Lineups []MatchLineup `json:"lineups"`
}

type summariesResponse struct {
	Summaries []MatchSummary `json:"summaries"`
}

type eventLineupsResponse struct {
	Lineups LineupSet `json:"lineups"`
}
