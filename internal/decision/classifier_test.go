package decision

import (
	"testing"

	"github.com/opsdesk/helpdesk-engine/internal/models"
)

func testKeywordTable() KeywordTable {
	return KeywordTable{
		Order: []string{"Network", "Software", "Account", "General"},
		Keywords: map[string][]string{
			"Network":  {"network", "vpn", "wifi", "dns"},
			"Software": {"software", "application", "bug", "crash"},
			"Account":  {"login", "password", "access"},
			"General":  {"help", "question"},
		},
		Default: "General",
	}
}

func TestClassifyPicksHighestScore(t *testing.T) {
	table := testKeywordTable()

	got := Classify("the vpn is down and wifi drops, network unusable", table)
	if got != "Network" {
		t.Errorf("expected Network, got %s", got)
	}

	got = Classify("application crash after the last update, likely a bug", table)
	if got != "Software" {
		t.Errorf("expected Software, got %s", got)
	}
}

func TestClassifyCountsPresenceNotOccurrences(t *testing.T) {
	table := testKeywordTable()

	// "password" repeated many times is still one keyword present; two
	// distinct network keywords must win.
	got := Classify("password password password but vpn and wifi are down", table)
	if got != "Network" {
		t.Errorf("expected Network to win with two distinct keywords, got %s", got)
	}
}

func TestClassifyTieBreaksByTableOrder(t *testing.T) {
	table := testKeywordTable()

	// One hit each for Network and Software; Network is declared first.
	got := Classify("the vpn software", table)
	if got != "Network" {
		t.Errorf("expected tie to break in declaration order (Network), got %s", got)
	}
}

func TestClassifyFallsBackToDefault(t *testing.T) {
	table := testKeywordTable()

	got := Classify("nothing matches here at all", table)
	if got != "General" {
		t.Errorf("expected default General, got %s", got)
	}

	got = Classify("", table)
	if got != "General" {
		t.Errorf("expected default for empty text, got %s", got)
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	table := testKeywordTable()

	if got := Classify("VPN Connection Problems", table); got != "Network" {
		t.Errorf("expected Network for upper-case text, got %s", got)
	}
}

func testPriorityLadder() PriorityLadder {
	return PriorityLadder{
		Tiers: []PriorityTier{
			{Priority: models.PriorityUrgent, Keywords: []string{"urgent", "critical", "down", "emergency"}},
			{Priority: models.PriorityHigh, Keywords: []string{"important", "asap"}},
			{Priority: models.PriorityMedium, Keywords: []string{"normal", "routine"}},
		},
		Fallback: models.PriorityLow,
	}
}

func TestClassifyPriorityPrecedence(t *testing.T) {
	ladder := testPriorityLadder()

	// An urgent keyword beats any number of lower-tier hits.
	got := ClassifyPriority("routine normal request but the server is down", ladder)
	if got != models.PriorityUrgent {
		t.Errorf("expected Urgent via precedence, got %s", got)
	}
}

func TestClassifyPriorityTiers(t *testing.T) {
	ladder := testPriorityLadder()

	cases := []struct {
		text string
		want models.Priority
	}{
		{"please handle asap", models.PriorityHigh},
		{"routine maintenance request", models.PriorityMedium},
		{"no keywords at all", models.PriorityLow},
	}

	for _, tc := range cases {
		if got := ClassifyPriority(tc.text, ladder); got != tc.want {
			t.Errorf("ClassifyPriority(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}
