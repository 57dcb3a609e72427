package match

import (
	"cmp"
	"slices"
)

// MinScore is the similarity below which a name is not worth suggesting.
const MinScore = 0.6

// Candidate is a declared name scored against the name looked up.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every name against target and returns them best first. Ties
// keep alphabetical order.
func Rank(target string, names []string) []Candidate {
	norm := Normalize(target)

	candidates := make([]Candidate, 0, len(names))
	for _, name := range names {
		if name == target {
			continue
		}

		candidates = append(candidates, Candidate{
			Name:  name,
			Score: Similarity(norm, Normalize(name)),
		})
	}

	slices.SortFunc(candidates, func(a, b Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return candidates
}

// Closest returns up to limit names scoring at least MinScore, best first.
func Closest(target string, names []string, limit int) []string {
	var out []string

	for _, c := range Rank(target, names) {
		if c.Score < MinScore || len(out) == limit {
			break
		}

		out = append(out, c.Name)
	}

	return out
}
