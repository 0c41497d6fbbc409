package sportradar

import (
	"context"
	"fmt"

	"github.com/fluxforgeai/rugby-union/internal/progress"
)

// Gateway maps domain operations onto client calls. Every accessor returns
// an empty collection on failure so callers can compose fallbacks without
// error branching.
type Gateway struct {
	client   *Client
	progress progress.Sink
}

// NewGateway wraps the client with domain-shaped accessors. The gateway
// reports through the same progress sink as the client.
func NewGateway(client *Client) *Gateway {
	sink := progress.Discard
	if client != nil && client.progress != nil {
		sink = client.progress
	}
	return &Gateway{client: client, progress: sink}
}

// Competitions lists all rugby competitions known to the provider.
func (g *Gateway) Competitions(ctx context.Context) []Competition {
	g.progress("Fetching competitions...")

	var payload competitionsResponse
	if err := g.client.GetJSON(ctx, "/competitions.json", &payload); err != nil {
		g.progress("Failed to fetch competitions")
		return nil
	}
	return payload.Competitions
}

// CompetitionSeasons lists the seasons of one competition.
func (g *Gateway) CompetitionSeasons(ctx context.Context, competitionID string) []Season {
	g.progress("Fetching seasons...")

	endpoint := fmt.Sprintf("/competitions/%s/seasons.json", competitionID)
	var payload seasonsResponse
	if err := g.client.GetJSON(ctx, endpoint, &payload); err != nil {
		g.progress("Failed to fetch seasons")
		return nil
	}
	return payload.Seasons
}

// SeasonCompetitors lists the teams entered in a season.
func (g *Gateway) SeasonCompetitors(ctx context.Context, seasonID string) []Competitor {
	g.progress("Fetching competitors...")

	endpoint := fmt.Sprintf("/seasons/%s/competitors.json", seasonID)
	var payload competitorsResponse
	if err := g.client.GetJSON(ctx, endpoint, &payload); err != nil {
		g.progress("Failed to fetch competitors")
		return nil
	}
	return payload.SeasonCompetitors
}

// SeasonLineups fetches every match lineup of the season in one call. Not
// all provider packages expose this endpoint; an empty result sends callers
// down the per-match path.
func (g *Gateway) SeasonLineups(ctx context.Context, seasonID string) []MatchLineup {
	g.progress("Fetching season lineups...")

	endpoint := fmt.Sprintf("/seasons/%s/lineups.json", seasonID)
	var payload seasonLineupsResponse
	if err := g.client.GetJSON(ctx, endpoint, &payload); err != nil {
		g.progress("Failed to fetch season lineups")
		return nil
	}
	return payload.Lineups
}

// SeasonSummaries lists the season's matches.
func (g *Gateway) SeasonSummaries(ctx context.Context, seasonID string) []MatchSummary {
	g.progress("Fetching season match summaries...")

	endpoint := fmt.Sprintf("/seasons/%s/summaries.json", seasonID)
	var payload summariesResponse
	if err := g.client.GetJSON(ctx, endpoint, &payload); err != nil {
		g.progress("Failed to fetch season summaries")
		return nil
	}
	return payload.Summaries
}

// SportEventLineups fetches the lineups of a single match.
func (g *Gateway) SportEventLineups(ctx context.Context, sportEventID string) LineupSet {
	endpoint := fmt.Sprintf("/sport_events/%s/lineups.json", sportEventID)
	var payload eventLineupsResponse
	if err := g.client.GetJSON(ctx, endpoint, &payload); err != nil {
		return LineupSet{}
	}
	return payload.Lineups
}

// SportEventSummary fetches a single match summary with its statistics.
func (g *Gateway) SportEventSummary(ctx context.Context, sportEventID string) EventSummary {
	endpoint := fmt.Sprintf("/sport_events/%s/summary.json", sportEventID)
	var payload EventSummary
	if err := g.client.GetJSON(ctx, endpoint, &payload); err != nil {
		return EventSummary{}
	}
	return payload
}

// CompetitorProfile fetches a team's full nominal roster.
func (g *Gateway) CompetitorProfile(ctx context.Context, competitorID string) CompetitorProfile {
	endpoint := fmt.Sprintf("/competitors/%s/profile.json", competitorID)
	var payload CompetitorProfile
	if err := g.client.GetJSON(ctx, endpoint, &payload); err != nil {
		g.progress(fmt.Sprintf("Failed to fetch competitor profile for %s", competitorID))
		return CompetitorProfile{}
	}
	return payload
}
