package models

import (
	"time"
)

// TicketStatus represents the current state of a ticket
type TicketStatus string

const (
	StatusOpen       TicketStatus = "Open"
	StatusAssigned   TicketStatus = "Assigned"
	StatusInProgress TicketStatus = "In Progress"
	StatusResolved   TicketStatus = "Resolved"
	StatusClosed     TicketStatus = "Closed"
)

// IsTerminal returns true if the status is a terminal state
func (s TicketStatus) IsTerminal() bool {
	return s == StatusResolved || s == StatusClosed
}

// Priority is the severity tier of a ticket. Tiers are ordered:
// Low < Medium < High < Critical, with Urgent treated as Critical.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityUrgent   Priority = "Urgent"
	PriorityCritical Priority = "Critical"
)

// Rank returns the numeric position of a priority in the severity order.
// Unknown values rank below Low so they never outrank a real tier.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityUrgent, PriorityCritical:
		return 4
	default:
		return 0
	}
}

// MaxPriority returns the more severe of two priorities.
func MaxPriority(a, b Priority) Priority {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// Ticket represents a unit of support work
type Ticket struct {
	ID                 string       `json:"id"`
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	Category           string       `json:"category"`
	Priority           Priority     `json:"priority"`
	Status             TicketStatus `json:"status"`
	AssignedTo         string       `json:"assigned_to,omitempty"`
	CreatedBy          string       `json:"created_by"`
	Channel            string       `json:"channel,omitempty"`
	EscalationLevel    int          `json:"escalation_level"`
	PredictedSLABreach bool         `json:"predicted_sla_breach"`
	AIConfidence       float64      `json:"ai_confidence,omitempty"`
	AutoResolved       bool         `json:"auto_resolved"`
	ResolutionAction   string       `json:"resolution_action,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	SLADeadline        time.Time    `json:"sla_deadline"`
	ResolvedAt         *time.Time   `json:"resolved_at,omitempty"`
}

// HoursToDeadline returns the signed number of hours until the SLA
// deadline. Negative once the deadline has passed.
func (t *Ticket) HoursToDeadline(now time.Time) float64 {
	return t.SLADeadline.Sub(now).Hours()
}

// ResolvedWithin reports whether the ticket was resolved in under d.
func (t *Ticket) ResolvedWithin(d time.Duration) bool {
	if t.ResolvedAt == nil {
		return false
	}
	return t.ResolvedAt.Sub(t.CreatedAt) < d
}

// TicketFilters defines filters for listing tickets
type TicketFilters struct {
	Status     TicketStatus
	Priority   Priority
	Category   string
	AssignedTo string
	Limit      int
	Offset     int
}

// TicketStats aggregates counters used by the workflow health monitor
type TicketStats struct {
	Total            int     `json:"total_tickets"`
	Resolved         int     `json:"resolved_tickets"`
	Escalated        int     `json:"escalated_tickets"`
	PredictedBreach  int     `json:"predicted_breaches"`
	AvgResolutionHrs float64 `json:"avg_resolution_hours"`
}

// CreateTicketRequest represents a request to create a ticket directly
type CreateTicketRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	CreatedBy   string   `json:"created_by"`
}
