package decision

import (
	"github.com/opsdesk/helpdesk-engine/internal/models"
)

// Milestone grants a badge once the resolved-ticket count reaches Resolved.
type Milestone struct {
	Resolved int
	Badge    string
}

// PointsTable holds the scoring rules for the gamified workflow.
type PointsTable struct {
	Base        map[models.Priority]int
	DefaultBase int
	SLABonus    int
	FastBonus   int
	FastBadge   string
	Milestones  []Milestone
}

// DefaultPointsTable returns the standard award rules.
func DefaultPointsTable() PointsTable {
	return PointsTable{
		Base: map[models.Priority]int{
			models.PriorityLow:      10,
			models.PriorityMedium:   25,
			models.PriorityHigh:     50,
			models.PriorityCritical: 100,
			models.PriorityUrgent:   100,
		},
		DefaultBase: 25,
		SLABonus:    25,
		FastBonus:   50,
		FastBadge:   "Speed Demon",
		Milestones: []Milestone{
			{Resolved: 25, Badge: "Silver"},
			{Resolved: 50, Badge: "Gold"},
		},
	}
}

// Award is the outcome of scoring one resolved ticket.
type Award struct {
	Points  int
	Badges  []string
	Account models.GamificationAccount
}

// Award computes the points and badges for resolving a ticket of the given
// priority and returns the updated account. The input account is not
// mutated. Points and the resolved counter only ever increase, and badges
// are a union: milestones already held are never re-awarded, so crossing a
// threshold twice grants its badge exactly once.
func (t PointsTable) Award(priority models.Priority, slaBreached, fastResolution bool, acct models.GamificationAccount) Award {
	points, ok := t.Base[priority]
	if !ok {
		points = t.DefaultBase
	}
	if !slaBreached {
		points += t.SLABonus
	}

	var earned []string
	if fastResolution {
		points += t.FastBonus
		if t.FastBadge != "" && !acct.HasBadge(t.FastBadge) {
			earned = append(earned, t.FastBadge)
		}
	}

	updated := acct
	updated.Badges = append([]string(nil), acct.Badges...)
	updated.Points += points
	updated.TicketsResolved++
	updated.Badges = append(updated.Badges, earned...)

	for _, m := range t.Milestones {
		if updated.TicketsResolved >= m.Resolved && !updated.HasBadge(m.Badge) {
			earned = append(earned, m.Badge)
			updated.Badges = append(updated.Badges, m.Badge)
		}
	}

	return Award{Points: points, Badges: earned, Account: updated}
}
