package decision

import (
	"testing"

	"github.com/opsdesk/helpdesk-engine/internal/models"
)

func TestAwardBasePointsByPriority(t *testing.T) {
	table := DefaultPointsTable()

	cases := []struct {
		priority models.Priority
		want     int
	}{
		{models.PriorityLow, 10 + 25},      // base + SLA bonus
		{models.PriorityMedium, 25 + 25},
		{models.PriorityHigh, 50 + 25},
		{models.PriorityCritical, 100 + 25},
		{models.Priority("Unknown"), 25 + 25}, // default base
	}

	for _, tc := range cases {
		award := table.Award(tc.priority, false, false, models.GamificationAccount{})
		if award.Points != tc.want {
			t.Errorf("Award(%s) = %d points, want %d", tc.priority, award.Points, tc.want)
		}
	}
}

func TestAwardCriticalFastNoBreach(t *testing.T) {
	table := DefaultPointsTable()
	acct := models.GamificationAccount{TeamID: "NET", Points: 100, TicketsResolved: 5}

	award := table.Award(models.PriorityCritical, false, true, acct)

	// 100 base + 25 SLA bonus + 50 fast bonus.
	if award.Points != 175 {
		t.Errorf("expected 175 points, got %d", award.Points)
	}
	if len(award.Badges) != 1 || award.Badges[0] != "Speed Demon" {
		t.Errorf("expected Speed Demon badge, got %v", award.Badges)
	}
	if award.Account.Points != 275 {
		t.Errorf("expected account total 275, got %d", award.Account.Points)
	}
	if award.Account.TicketsResolved != 6 {
		t.Errorf("expected 6 resolved, got %d", award.Account.TicketsResolved)
	}
}

func TestAwardNoSLABonusOnBreach(t *testing.T) {
	table := DefaultPointsTable()

	award := table.Award(models.PriorityMedium, true, false, models.GamificationAccount{})
	if award.Points != 25 {
		t.Errorf("expected base only on breach, got %d", award.Points)
	}
}

func TestAwardMilestoneBadgeExactlyOnce(t *testing.T) {
	table := DefaultPointsTable()

	acct := models.GamificationAccount{TeamID: "NET", TicketsResolved: 49}
	award := table.Award(models.PriorityLow, false, false, acct)

	if !award.Account.HasBadge("Gold") {
		t.Fatal("expected Gold at 50 resolved")
	}

	// Crossing the threshold again must not duplicate the badge.
	again := table.Award(models.PriorityLow, false, false, award.Account)
	goldCount := 0
	for _, b := range again.Account.Badges {
		if b == "Gold" {
			goldCount++
		}
	}
	if goldCount != 1 {
		t.Errorf("Gold must be awarded exactly once, found %d", goldCount)
	}
	for _, b := range again.Badges {
		if b == "Gold" {
			t.Error("Gold must not appear in newly earned badges twice")
		}
	}
}

func TestAwardDoesNotMutateInput(t *testing.T) {
	table := DefaultPointsTable()
	acct := models.GamificationAccount{TeamID: "NET", Points: 10, Badges: []string{"Bronze"}, TicketsResolved: 3}

	_ = table.Award(models.PriorityHigh, false, true, acct)

	if acct.Points != 10 || acct.TicketsResolved != 3 || len(acct.Badges) != 1 {
		t.Errorf("input account was mutated: %+v", acct)
	}
}

func TestAwardMonotonicCounters(t *testing.T) {
	table := DefaultPointsTable()
	acct := models.GamificationAccount{TeamID: "NET"}

	for i := 0; i < 30; i++ {
		award := table.Award(models.PriorityLow, true, false, acct)
		if award.Account.Points < acct.Points {
			t.Fatal("points decreased")
		}
		if award.Account.TicketsResolved != acct.TicketsResolved+1 {
			t.Fatal("resolved counter did not increment by one")
		}
		if len(award.Account.Badges) < len(acct.Badges) {
			t.Fatal("badges shrank")
		}
		acct = award.Account
	}

	if !acct.HasBadge("Silver") {
		t.Error("expected Silver after 25 resolutions")
	}
}
