package sportradar

import (
	"encoding/json"
	"testing"
)

func TestMapPlayerPositionFallback(t *testing.T) {
	p := MapPlayer(LineupPlayer{ID: "sr:player:1", Name: "Dupont, Antoine", Type: "SH", Position: "scrum_half"})
	if p.Position != "SH" {
		t.Fatalf("type should win over position, got %s", p.Position)
	}

	p = MapPlayer(LineupPlayer{ID: "sr:player:2", Name: "Ramos, Thomas", Position: "full_back"})
	if p.Position != "full_back" {
		t.Fatalf("position fallback failed, got %s", p.Position)
	}

	p = MapPlayer(LineupPlayer{ID: "sr:player:3"})
	if p.Position != "Unknown" || p.Name != "Unknown" {
		t.Fatalf("missing fields should map to Unknown, got %+v", p)
	}
}

func TestMapPlayerPreservesParticipation(t *testing.T) {
	played := false
	p := MapPlayer(LineupPlayer{ID: "sr:player:1", Name: "Bench, Warmer", Played: &played})
	if p.Played == nil || *p.Played {
		t.Fatal("played flag not preserved")
	}
	if p.ActuallyPlayed() {
		t.Fatal("played=false must not count as participation")
	}

	p = MapPlayer(LineupPlayer{ID: "sr:player:2", Name: "Dupont, Antoine"})
	if !p.ActuallyPlayed() {
		t.Fatal("absent played flag must count as participation")
	}
}

func TestMapTeamUnknownName(t *testing.T) {
	team := MapTeam(Competitor{ID: "sr:competitor:4222"}, nil, true)
	if team.Name != "Unknown" {
		t.Fatalf("missing competitor name should map to Unknown, got %s", team.Name)
	}
	if !team.FilteredByParticipation {
		t.Fatal("filtered flag not carried")
	}
}

func TestCompetitorLineupNestedCompetitor(t *testing.T) {
	payload := `{"competitor":{"id":"sr:competitor:4223","name":"Italy"},
		"players":[{"id":"sr:player:9","name":"Capuozzo, Ange"}]}`
	var lineup CompetitorLineup
	if err := json.Unmarshal([]byte(payload), &lineup); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if lineup.ID != "sr:competitor:4223" || lineup.Name != "Italy" {
		t.Fatalf("nested competitor not lifted: %+v", lineup)
	}
	if len(lineup.Players) != 1 {
		t.Fatalf("players lost: %+v", lineup.Players)
	}
}

func TestCompetitorLineupFlatShape(t *testing.T) {
	payload := `{"id":"sr:competitor:4222","name":"France","players":[]}`
	var lineup CompetitorLineup
	if err := json.Unmarshal([]byte(payload), &lineup); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if lineup.ID != "sr:competitor:4222" || lineup.Name != "France" {
		t.Fatalf("flat competitor not decoded: %+v", lineup)
	}
}
