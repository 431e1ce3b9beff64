package search

import (
	"strings"
	"unicode"

	"github.com/wichananm65/artisan-market-backend/internal/product"
)

// Criteria are the narrowing stages for one search. Zero values disable a
// stage.
type Criteria struct {
	PriceRange *PriceRange
	Category   string
	Keywords   []string
}

// Filter narrows products by price, then category, then keywords. Each stage
// works on the previous stage's output and an empty result is returned as
// is. The input slice is never modified.
func Filter(products []product.Product, c Criteria) []product.Product {
	out := make([]product.Product, 0, len(products))
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}

	if c.PriceRange != nil {
		out = keep(out, func(p product.Product) bool { return c.PriceRange.Contains(p.Price) })
	}
	if c.Category != "" {
		want := strings.ToLower(c.Category)
		out = keep(out, func(p product.Product) bool {
			got := strings.ToLower(p.Category)
			return got == want || strings.Contains(got, want)
		})
	}
	if len(c.Keywords) > 0 {
		out = keep(out, func(p product.Product) bool {
			text := keywordSurface(p)
			for _, k := range c.Keywords {
				if strings.Contains(text, k) {
					return true
				}
			}
			return false
		})
	}
	return out
}

func keep(in []product.Product, fn func(product.Product) bool) []product.Product {
	out := make([]product.Product, 0, len(in))
	for _, p := range in {
		if fn(p) {
			out = append(out, p)
		}
	}
	return out
}

func keywordSurface(p product.Product) string {
	return strings.ToLower(p.Name + " " + p.Artisan + " " + p.AIHint + " " + p.Description)
}

// Tokenizer splits a query into search terms.
type Tokenizer struct {
	stop map[string]struct{}
}

func NewTokenizer(stopWords []string) *Tokenizer {
	stop := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{stop: stop}
}

// Terms lower-cases and splits the query, dropping stop words, numbers,
// currency-prefixed tokens and words of two characters or fewer.
func (t *Tokenizer) Terms(query string) []string {
	var out []string
	for _, raw := range strings.Fields(strings.ToLower(query)) {
		if strings.HasPrefix(raw, "₹") || strings.HasPrefix(raw, "$") || strings.HasPrefix(raw, "rs.") {
			continue
		}
		w := strings.TrimFunc(raw, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' })
		if len([]rune(w)) <= 2 || isNumeric(w) {
			continue
		}
		if _, ok := t.stop[w]; ok {
			continue
		}
		out = append(out, w)
	}
	return out
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != ',' && r != '.' {
			return false
		}
	}
	return s != ""
}
