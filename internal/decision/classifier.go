// Package decision implements the rule-based scoring and ranking engine
// behind ticket routing, SLA-breach prediction, escalation, priority
// rebalancing, knowledge-base relevance ranking and gamification.
//
// Every function here is pure: inputs are value snapshots, outputs are
// decisions with a confidence or score, and nothing blocks or mutates
// shared state. All keyword tables, ladders and thresholds come in as
// configuration so callers can tune them without touching the algorithms.
package decision

import (
	"strings"

	"github.com/opsdesk/helpdesk-engine/internal/models"
)

// KeywordTable maps categories to their trigger keywords. Order carries
// the declaration order of categories and breaks score ties: the first
// category among the maximal scores wins.
type KeywordTable struct {
	Order    []string
	Keywords map[string][]string
	Default  string
}

// Classify picks the category whose keywords appear most often in text.
// Matching is a case-insensitive substring check, one point per keyword
// present. When nothing matches (or the table is empty) the configured
// default category is returned.
func Classify(text string, table KeywordTable) string {
	lower := strings.ToLower(text)

	best := table.Default
	bestScore := 0
	for _, category := range table.Order {
		score := 0
		for _, kw := range table.Keywords[category] {
			if kw == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(kw)) {
				score++
			}
		}
		if score > bestScore {
			best = category
			bestScore = score
		}
	}

	return best
}

// PriorityTier is one rung of the priority keyword ladder.
type PriorityTier struct {
	Priority models.Priority
	Keywords []string
}

// PriorityLadder classifies priority by strict precedence: tiers are
// checked in order and the first tier with any keyword hit wins. This is
// precedence, not a score comparison — an "urgent" hit beats any number
// of "medium" hits.
type PriorityLadder struct {
	Tiers    []PriorityTier
	Fallback models.Priority
}

// ClassifyPriority returns the first tier whose keyword set matches text,
// or the ladder's fallback when no tier matches.
func ClassifyPriority(text string, ladder PriorityLadder) models.Priority {
	lower := strings.ToLower(text)

	for _, tier := range ladder.Tiers {
		for _, kw := range tier.Keywords {
			if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
				return tier.Priority
			}
		}
	}

	return ladder.Fallback
}
