package models

import "time"

// AuditEntry records a single workflow step or automated decision
type AuditEntry struct {
	ID         string    `json:"id"`
	TicketID   string    `json:"ticket_id,omitempty"`
	Action     string    `json:"action"`
	Actor      string    `json:"user"`
	Details    string    `json:"details"`
	AIDecision bool      `json:"ai_decision"`
	Confidence *float64  `json:"confidence,omitempty"`
	CreatedAt  time.Time `json:"timestamp"`
}

// AuditSummary aggregates an audit log for reporting
type AuditSummary struct {
	TotalActions    int     `json:"total_actions"`
	AIDecisions     int     `json:"ai_decisions"`
	ManualDecisions int     `json:"manual_decisions"`
	AIPercentage    float64 `json:"ai_percentage"`
}

// Summarize computes summary statistics over a slice of audit entries.
func Summarize(entries []*AuditEntry) AuditSummary {
	s := AuditSummary{TotalActions: len(entries)}
	for _, e := range entries {
		if e.AIDecision {
			s.AIDecisions++
		} else {
			s.ManualDecisions++
		}
	}
	if s.TotalActions > 0 {
		s.AIPercentage = float64(s.AIDecisions) / float64(s.TotalActions) * 100
	}
	return s
}
