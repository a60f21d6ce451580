package decision

import (
	"sort"
	"strings"
)

// Candidate is a knowledge-base entry offered to the rankers.
type Candidate struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Category    string  `json:"category"`
	Relevance   float64 `json:"relevance_score"`
	SuccessRate float64 `json:"success_rate"`
}

// Scored is a candidate with its computed score and 1-based rank.
type Scored struct {
	Candidate
	Score float64 `json:"score"`
	Rank  int     `json:"rank"`
}

// RankComposite filters candidates whose category matches the ticket's
// category (case-insensitive substring), scores each as the mean of its
// relevance score and success rate, and returns the top limit entries in
// descending order. Ties keep input order. A limit <= 0 means all.
func RankComposite(category string, candidates []Candidate, limit int) []Scored {
	cat := strings.ToLower(category)

	scored := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		if !strings.Contains(cat, strings.ToLower(c.Category)) &&
			!strings.Contains(strings.ToLower(c.Category), cat) {
			continue
		}
		scored = append(scored, Scored{
			Candidate: c,
			Score:     (c.Relevance + c.SuccessRate) / 2,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	for i := range scored {
		scored[i].Rank = i + 1
	}
	return scored
}

// JaccardScore computes the Jaccard similarity of two texts over their
// lower-cased, whitespace-tokenized word sets: |intersection| / |union|.
// Empty inputs yield 0.
func JaccardScore(query, doc string) float64 {
	qwords := wordSet(query)
	dwords := wordSet(doc)
	if len(qwords) == 0 && len(dwords) == 0 {
		return 0
	}

	intersection := 0
	for w := range qwords {
		if dwords[w] {
			intersection++
		}
	}
	union := len(qwords) + len(dwords) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// RankByOverlap scores candidates by Jaccard similarity between the query
// and the candidate's title+content, drops anything below threshold and
// returns the rest in descending score order (input order breaks ties).
// An empty query or candidate list yields an empty result, never an error.
func RankByOverlap(query string, candidates []Candidate, threshold float64) []Scored {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	var scored []Scored
	for _, c := range candidates {
		score := JaccardScore(query, c.Title+" "+c.Content)
		if score < threshold {
			continue
		}
		scored = append(scored, Scored{Candidate: c, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	for i := range scored {
		scored[i].Rank = i + 1
	}
	return scored
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = true
	}
	return set
}
