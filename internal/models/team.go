package models

// TeamProfile represents a support team that tickets can be routed to.
// Availability is the fraction of the team currently free, in [0,1].
type TeamProfile struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Members      int      `json:"members"`
	Availability float64  `json:"availability"`
	Expertise    []string `json:"expertise"`
}

// SLAAlert is a breach warning produced by the SLA monitor or the
// predictive endpoint. It is a descriptor only; delivery happens elsewhere.
type SLAAlert struct {
	Type              string  `json:"type"`
	TicketID          string  `json:"ticket_id"`
	Message           string  `json:"message"`
	Severity          string  `json:"severity"`
	RecommendedAction string  `json:"recommended_action"`
	RiskScore         float64 `json:"risk_score"`
	HoursRemaining    float64 `json:"hours_remaining"`
	Timestamp         string  `json:"timestamp"`
}
