package decision

import (
	"testing"

	"github.com/opsdesk/helpdesk-engine/internal/models"
)

func testTeams() []models.TeamProfile {
	return []models.TeamProfile{
		{ID: "NET", Name: "Network Team", Availability: 0.8, Expertise: []string{"Network", "Infrastructure"}},
		{ID: "APP", Name: "Application Team", Availability: 0.9, Expertise: []string{"Software", "Development"}},
		{ID: "SEC", Name: "Security Team", Availability: 0.6, Expertise: []string{"Security", "Compliance"}},
		{ID: "SUP", Name: "Support Team", Availability: 0.95, Expertise: []string{"General", "Account"}},
	}
}

func TestRouteExpertiseMatch(t *testing.T) {
	cfg := DefaultRouteConfig()

	dec, ok := cfg.Route("Network", testTeams())
	if !ok {
		t.Fatal("expected routing to succeed")
	}
	if dec.Team.ID != "NET" {
		t.Errorf("expected NET, got %s", dec.Team.ID)
	}
	if dec.Confidence != 0.85 {
		t.Errorf("expected match confidence 0.85, got %v", dec.Confidence)
	}
	if dec.Fallback {
		t.Error("expertise match must not be flagged as fallback")
	}
}

func TestRouteSkipsUnavailableTeam(t *testing.T) {
	cfg := DefaultRouteConfig()

	// SEC has Security expertise but availability 0.6 <= 0.7, so the
	// ticket must fall through to the fallback team.
	dec, ok := cfg.Route("Security", testTeams())
	if !ok {
		t.Fatal("expected routing to succeed")
	}
	if dec.Team.ID != "SUP" {
		t.Errorf("expected fallback SUP, got %s", dec.Team.ID)
	}
	if dec.Confidence != 0.6 {
		t.Errorf("expected fallback confidence 0.6, got %v", dec.Confidence)
	}
	if !dec.Fallback {
		t.Error("fallback routing must be flagged")
	}
}

func TestRouteAvailabilityThresholdIsStrict(t *testing.T) {
	cfg := DefaultRouteConfig()

	teams := []models.TeamProfile{
		{ID: "NET", Availability: 0.7, Expertise: []string{"Network"}},
		{ID: "SUP", Availability: 0.95, Expertise: []string{"General"}},
	}

	// Availability exactly at the threshold does not qualify.
	dec, ok := cfg.Route("Network", teams)
	if !ok {
		t.Fatal("expected routing to succeed")
	}
	if dec.Team.ID != "SUP" || !dec.Fallback {
		t.Errorf("expected strict threshold to force fallback, got %s (fallback=%v)", dec.Team.ID, dec.Fallback)
	}
}

func TestRouteNeverReturnsNoTeam(t *testing.T) {
	cfg := DefaultRouteConfig()

	// No expertise matches and the designated fallback is absent: the
	// first team still receives the ticket.
	teams := []models.TeamProfile{
		{ID: "NET", Availability: 0.8, Expertise: []string{"Network"}},
	}
	dec, ok := cfg.Route("Billing", teams)
	if !ok {
		t.Fatal("expected routing to succeed while any team exists")
	}
	if dec.Team.ID != "NET" || !dec.Fallback {
		t.Errorf("expected first-team fallback, got %s (fallback=%v)", dec.Team.ID, dec.Fallback)
	}
}

func TestRouteEmptyTeams(t *testing.T) {
	cfg := DefaultRouteConfig()

	if _, ok := cfg.Route("Network", nil); ok {
		t.Error("expected ok=false for empty team slice")
	}
}
