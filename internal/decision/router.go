package decision

import (
	"strings"

	"github.com/opsdesk/helpdesk-engine/internal/models"
)

// RouteConfig holds the routing thresholds and fallback target.
type RouteConfig struct {
	// AvailabilityThreshold is the minimum (exclusive) availability a team
	// needs to receive an expertise-matched assignment.
	AvailabilityThreshold float64
	// FallbackTeamID is the designated catch-all team.
	FallbackTeamID string
	// Confidence reported for an expertise match and for the fallback.
	MatchConfidence    float64
	FallbackConfidence float64
}

// DefaultRouteConfig returns the standard routing configuration.
func DefaultRouteConfig() RouteConfig {
	return RouteConfig{
		AvailabilityThreshold: 0.7,
		FallbackTeamID:        "SUP",
		MatchConfidence:       0.85,
		FallbackConfidence:    0.6,
	}
}

// RouteDecision is the outcome of routing a ticket category to a team.
type RouteDecision struct {
	Team       models.TeamProfile
	Confidence float64
	Fallback   bool
}

// Route selects the first team, in slice order, whose expertise contains
// the category (case-insensitive substring) and whose availability exceeds
// the threshold. When no team qualifies it falls back to the designated
// default team; routing never produces "no team" while any team exists.
// ok is false only for an empty team slice.
func (c RouteConfig) Route(category string, teams []models.TeamProfile) (RouteDecision, bool) {
	if len(teams) == 0 {
		return RouteDecision{}, false
	}

	cat := strings.ToLower(category)
	for _, team := range teams {
		if team.Availability <= c.AvailabilityThreshold {
			continue
		}
		for _, exp := range team.Expertise {
			if strings.Contains(strings.ToLower(exp), cat) {
				return RouteDecision{Team: team, Confidence: c.MatchConfidence}, true
			}
		}
	}

	// Mandatory fallback: the designated team, or failing that the first
	// team in the slice so a target always exists.
	fallback := teams[0]
	for _, team := range teams {
		if team.ID == c.FallbackTeamID {
			fallback = team
			break
		}
	}

	return RouteDecision{Team: fallback, Confidence: c.FallbackConfidence, Fallback: true}, true
}
