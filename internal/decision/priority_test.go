package decision

import (
	"testing"

	"github.com/opsdesk/helpdesk-engine/internal/models"
)

func TestRebalanceExecutiveForcesCritical(t *testing.T) {
	for _, role := range []string{"CEO", "VIP", "Executive"} {
		got := Rebalance(models.PriorityLow, RebalanceContext{UserRole: role})
		if got != models.PriorityCritical {
			t.Errorf("role %s: expected Critical, got %s", role, got)
		}
	}
}

func TestRebalanceSLARisk(t *testing.T) {
	got := Rebalance(models.PriorityMedium, RebalanceContext{UserRole: "user", SLARisk: 0.9})
	if got != models.PriorityHigh {
		t.Errorf("expected High for slaRisk > 0.8, got %s", got)
	}

	// Exactly 0.8 does not raise.
	got = Rebalance(models.PriorityMedium, RebalanceContext{UserRole: "user", SLARisk: 0.8})
	if got != models.PriorityMedium {
		t.Errorf("expected unchanged at slaRisk 0.8, got %s", got)
	}
}

func TestRebalanceBusinessImpact(t *testing.T) {
	got := Rebalance(models.PriorityLow, RebalanceContext{UserRole: "user", SLARisk: 0.5, BusinessImpact: "High"})
	if got != models.PriorityHigh {
		t.Errorf("expected High for high impact, got %s", got)
	}
}

func TestRebalanceLowersOnlyWithExplicitLowContext(t *testing.T) {
	got := Rebalance(models.PriorityHigh, RebalanceContext{UserRole: "user", SLARisk: 0.1, BusinessImpact: "Low"})
	if got != models.PriorityLow {
		t.Errorf("expected Low for low-risk low-impact context, got %s", got)
	}

	// Low risk alone is not enough to lower.
	got = Rebalance(models.PriorityHigh, RebalanceContext{UserRole: "user", SLARisk: 0.1, BusinessImpact: "Medium"})
	if got != models.PriorityHigh {
		t.Errorf("expected unchanged without declared Low impact, got %s", got)
	}
}

func TestRebalanceUnchangedByDefault(t *testing.T) {
	got := Rebalance(models.PriorityMedium, RebalanceContext{UserRole: "user", SLARisk: 0.5, BusinessImpact: "Medium"})
	if got != models.PriorityMedium {
		t.Errorf("expected unchanged priority, got %s", got)
	}
}

func TestAutoResolutionRules(t *testing.T) {
	cases := []struct {
		ticket models.Ticket
		action string
		ok     bool
	}{
		{models.Ticket{Category: "Account", Title: "Forgot my password"}, "password_reset", true},
		{models.Ticket{Category: "General", Description: "please restart the reporting service"}, "service_restart", true},
		{models.Ticket{Category: "Network", Description: "dns lookups keep failing"}, "dns_flush", true},
		{models.Ticket{Category: "Network", Description: "switch port is flapping"}, "", false},
		{models.Ticket{Category: "Account", Title: "Need access to the wiki"}, "", false},
	}

	for _, tc := range cases {
		action, ok := AutoResolution(&tc.ticket)
		if action != tc.action || ok != tc.ok {
			t.Errorf("AutoResolution(%+v) = (%s, %v), want (%s, %v)",
				tc.ticket, action, ok, tc.action, tc.ok)
		}
	}
}
