package search

import (
	"sort"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// EditDistance is the unit-cost Levenshtein distance. It is case-sensitive;
// callers lower-case first.
func EditDistance(a, b string) int {
	return edlib.LevenshteinDistance(a, b)
}

// Similarity maps distance onto [0,1] relative to the longer string.
func Similarity(a, b string) float64 {
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	return float64(longest-EditDistance(a, b)) / float64(longest)
}

// FindMatches returns the candidates at least threshold-similar to input,
// most similar first. Equal similarities keep candidate order.
func FindMatches(input string, candidates []string, threshold float64) []string {
	type scored struct {
		value string
		sim   float64
	}
	hits := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if s := Similarity(input, c); s >= threshold {
			hits = append(hits, scored{c, s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].sim > hits[j].sim })

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.value
	}
	return out
}
