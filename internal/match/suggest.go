package match

import (
	"sort"
)

// MinScore is the lowest similarity at which a candidate is still suggested.
const MinScore = 0.5

// Candidate is a scored suggestion.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every candidate against name and returns those at or above
// MinScore, best first. Ties keep the order of candidates.
func Rank(name string, candidates []string) []Candidate {
	norm := NormalizeIdent(name)

	var ranked []Candidate

	for _, c := range candidates {
		score := Similarity(norm, NormalizeIdent(c))
		if score < MinScore {
			continue
		}

		ranked = append(ranked, Candidate{Name: c, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}

// Suggest returns at most limit candidate names closest to name.
func Suggest(name string, candidates []string, limit int) []string {
	ranked := Rank(name, candidates)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, c.Name)
	}

	return out
}
