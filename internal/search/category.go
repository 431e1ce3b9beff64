package search

import "strings"

// CategoryMatcher resolves a query to one category of a fixed set.
type CategoryMatcher struct {
	keywords      []CategoryKeywords
	threshold     float64
	minWordLength int
}

func NewCategoryMatcher(keywords []CategoryKeywords, threshold float64, minWordLength int) *CategoryMatcher {
	return &CategoryMatcher{
		keywords:      keywords,
		threshold:     threshold,
		minWordLength: minWordLength,
	}
}

// Match returns "" when no stage finds a category. Stages run in order:
// verbatim substring, fuzzy word match, keyword table.
func (m *CategoryMatcher) Match(query string, categories []string) string {
	q := strings.ToLower(query)

	for _, c := range categories {
		if strings.Contains(q, strings.ToLower(c)) {
			return c
		}
	}

	lowered := make([]string, len(categories))
	for i, c := range categories {
		lowered[i] = strings.ToLower(c)
	}
	for _, w := range strings.Fields(q) {
		w = strings.Trim(w, punctuation)
		if len([]rune(w)) < m.minWordLength {
			continue
		}
		if hits := FindMatches(w, lowered, m.threshold); len(hits) > 0 {
			for i, c := range lowered {
				if c == hits[0] {
					return categories[i]
				}
			}
		}
	}

	for _, ck := range m.keywords {
		if !containsFold(categories, ck.Category) {
			continue
		}
		for _, kw := range ck.Keywords {
			if kw != "" && strings.Contains(q, strings.ToLower(kw)) {
				return ck.Category
			}
		}
	}
	return ""
}

const punctuation = ".,!?;:'\"()[]{}"

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
