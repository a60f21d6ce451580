package decision

import (
	"math"
	"testing"
)

func kbCandidates() []Candidate {
	return []Candidate{
		{ID: "KB-001", Title: "Network connectivity troubleshooting", Content: "Check router configuration and network cables", Category: "Network", Relevance: 0.95, SuccessRate: 0.87},
		{ID: "KB-002", Title: "Driver update procedures", Content: "Update network drivers on affected machines", Category: "Network", Relevance: 0.82, SuccessRate: 0.73},
		{ID: "KB-003", Title: "Infrastructure maintenance", Content: "Verify network infrastructure components", Category: "Infrastructure", Relevance: 0.78, SuccessRate: 0.81},
		{ID: "KB-004", Title: "Password reset guide", Content: "Reset user passwords via the admin console", Category: "Account", Relevance: 0.9, SuccessRate: 0.95},
	}
}

func TestRankCompositeFiltersAndOrders(t *testing.T) {
	got := RankComposite("Network", kbCandidates(), 3)

	if len(got) != 2 {
		t.Fatalf("expected 2 network suggestions, got %d", len(got))
	}

	// (0.95+0.87)/2 = 0.91 must rank above (0.82+0.73)/2 = 0.775.
	if got[0].ID != "KB-001" || got[1].ID != "KB-002" {
		t.Errorf("unexpected order: %s, %s", got[0].ID, got[1].ID)
	}
	if math.Abs(got[0].Score-0.91) > 1e-9 {
		t.Errorf("expected composite score 0.91, got %v", got[0].Score)
	}
	if got[0].Rank != 1 || got[1].Rank != 2 {
		t.Errorf("ranks must be 1-based and sequential, got %d, %d", got[0].Rank, got[1].Rank)
	}
}

func TestRankCompositeLimit(t *testing.T) {
	got := RankComposite("Network", kbCandidates(), 1)
	if len(got) != 1 {
		t.Fatalf("expected limit of 1, got %d", len(got))
	}
	if got[0].ID != "KB-001" {
		t.Errorf("expected best candidate first, got %s", got[0].ID)
	}
}

func TestRankCompositeNoMatch(t *testing.T) {
	got := RankComposite("Billing", kbCandidates(), 3)
	if len(got) != 0 {
		t.Errorf("expected no suggestions for unmatched category, got %d", len(got))
	}
}

func TestJaccardScore(t *testing.T) {
	if got := JaccardScore("network issue", "network troubleshooting guide"); got <= 0 {
		t.Errorf("expected nonzero overlap, got %v", got)
	}

	if got := JaccardScore("same words here", "same words here"); got != 1 {
		t.Errorf("identical texts must score 1.0, got %v", got)
	}

	if got := JaccardScore("alpha beta", "gamma delta"); got != 0 {
		t.Errorf("disjoint texts must score 0, got %v", got)
	}

	if got := JaccardScore("", ""); got != 0 {
		t.Errorf("empty inputs must score 0, got %v", got)
	}
}

func TestRankByOverlapThreshold(t *testing.T) {
	candidates := []Candidate{
		{ID: "A", Title: "network troubleshooting", Content: ""},
		{ID: "B", Title: "entirely unrelated cooking recipe", Content: ""},
	}

	got := RankByOverlap("network troubleshooting steps", candidates, 0.3)
	if len(got) != 1 || got[0].ID != "A" {
		t.Fatalf("expected only the overlapping candidate, got %+v", got)
	}
	if got[0].Rank != 1 {
		t.Errorf("expected rank 1, got %d", got[0].Rank)
	}
}

func TestRankByOverlapEmptyQuery(t *testing.T) {
	if got := RankByOverlap("   ", kbCandidates(), 0.3); got != nil {
		t.Errorf("expected nil result for empty query, got %+v", got)
	}
}
