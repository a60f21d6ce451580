package models

// GamificationAccount tracks a team's points and badges. Points and
// TicketsResolved only ever increase; Badges is a grow-only set.
type GamificationAccount struct {
	TeamID          string   `json:"team_id"`
	Name            string   `json:"name"`
	Points          int      `json:"points"`
	Badges          []string `json:"badges"`
	TicketsResolved int      `json:"tickets_resolved"`
}

// HasBadge reports whether the account already holds the named badge.
func (a *GamificationAccount) HasBadge(name string) bool {
	for _, b := range a.Badges {
		if b == name {
			return true
		}
	}
	return false
}
