package decision

import (
	"strings"

	"github.com/opsdesk/helpdesk-engine/internal/models"
)

// RebalanceContext carries the signals for context-driven priority
// rebalancing: who raised the ticket, how close it is to an SLA breach,
// and the declared business impact.
type RebalanceContext struct {
	UserRole       string  `json:"userRole"`
	SLARisk        float64 `json:"slaRisk"`
	BusinessImpact string  `json:"businessImpact"`
}

// Rebalance computes the new priority for a ticket under the given
// context. Executive-tier requesters force Critical; high SLA risk or
// high business impact raise to High; a ticket may drop to Low only when
// both the SLA risk is low and the impact is declared Low. Anything else
// leaves the priority unchanged. Unlike escalation, this is an explicit
// operator-triggered decision and is the only automatic path that may
// lower a priority.
func Rebalance(current models.Priority, rc RebalanceContext) models.Priority {
	switch rc.UserRole {
	case "CEO", "VIP", "Executive":
		return models.PriorityCritical
	}

	if rc.SLARisk > 0.8 {
		return models.PriorityHigh
	}
	if rc.BusinessImpact == "High" {
		return models.PriorityHigh
	}
	if rc.SLARisk < 0.3 && rc.BusinessImpact == "Low" {
		return models.PriorityLow
	}

	return current
}

// AutoResolution decides whether a ticket qualifies for self-healing and
// which scripted action resolves it. Matching is keyword-based over the
// ticket's category, title and description.
func AutoResolution(t *models.Ticket) (string, bool) {
	title := strings.ToLower(t.Title)
	desc := strings.ToLower(t.Description)

	switch {
	case t.Category == "Account" && strings.Contains(title, "password"):
		return "password_reset", true
	case t.Category == "General" && strings.Contains(desc, "restart"):
		return "service_restart", true
	case t.Category == "Network" && strings.Contains(desc, "dns"):
		return "dns_flush", true
	}
	return "", false
}
