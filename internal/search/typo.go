package search

import (
	"regexp"
	"strings"
)

type correctionRule struct {
	pattern *regexp.Regexp
	to      string
}

// TypoCorrector rewrites known misspellings to their canonical form.
type TypoCorrector struct {
	rules []correctionRule
}

// NewTypoCorrector compiles corrections in declaration order. Entries with an
// empty side are ignored.
func NewTypoCorrector(corrections []Correction) *TypoCorrector {
	tc := &TypoCorrector{rules: make([]correctionRule, 0, len(corrections))}
	for _, c := range corrections {
		from := strings.ToLower(strings.TrimSpace(c.From))
		to := strings.ToLower(strings.TrimSpace(c.To))
		if from == "" || to == "" || from == to {
			continue
		}
		tc.rules = append(tc.rules, correctionRule{
			pattern: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(from) + `\b`),
			to:      to,
		})
	}
	return tc
}

// Correct lower-cases text and replaces whole-word misspellings. The first
// rule that rewrites a word wins because later rules only ever see the
// canonical term.
func (tc *TypoCorrector) Correct(text string) string {
	out := strings.ToLower(text)
	for _, r := range tc.rules {
		out = r.pattern.ReplaceAllLiteralString(out, r.to)
	}
	return out
}
