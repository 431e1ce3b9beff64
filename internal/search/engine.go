// Package search ranks artisan products against a free-text query.
//
// The engine is pure: it reads the products it is given, never mutates them,
// performs no I/O and keeps no state between calls, so one Engine can serve
// concurrent requests.
package search

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/wichananm65/artisan-market-backend/internal/product"
)

// Preferences are explicit shopper constraints sent with a query. They are
// ANDed with whatever the query implies.
type Preferences struct {
	Categories []string `json:"categories,omitempty"`
	MinPrice   *float64 `json:"minPrice,omitempty"`
	MaxPrice   *float64 `json:"maxPrice,omitempty"`
	Artisans   []string `json:"artisans,omitempty"`
	Styles     []string `json:"styles,omitempty"`
	Occasions  []string `json:"occasions,omitempty"`
}

// SuggestedFilters echoes what was understood from the query.
type SuggestedFilters struct {
	Category   string      `json:"category,omitempty"`
	PriceRange *PriceRange `json:"priceRange,omitempty"`
	Context
	Keywords []string `json:"keywords"`
}

// Response is the ranked result of one search.
type Response struct {
	Products         []product.Product `json:"products"`
	Reasoning        string            `json:"reasoning"`
	Confidence       float64           `json:"confidence"`
	Categories       []string          `json:"categories"`
	SuggestedFilters *SuggestedFilters `json:"suggestedFilters,omitempty"`
	CorrectedQuery   string            `json:"-"`
}

// Engine runs the full pipeline: correction, extraction, filtering, ranking
// and reasoning.
type Engine struct {
	categories []string
	typos      *TypoCorrector
	prices     PriceRangeExtractor
	matcher    *CategoryMatcher
	context    *ContextExtractor
	tokens     *Tokenizer
	ranker     *Ranker
	reasoner   ReasoningComposer
}

// NewEngine compiles rules into an Engine.
func NewEngine(rules Rules) (*Engine, error) {
	if len(rules.Categories) == 0 {
		return nil, errors.New("search rules: at least one category is required")
	}
	if rules.FuzzyThreshold < 0 || rules.FuzzyThreshold > 1 {
		return nil, fmt.Errorf("search rules: fuzzy threshold %v outside [0,1]", rules.FuzzyThreshold)
	}
	cats := make([]string, len(rules.Categories))
	for i, c := range rules.Categories {
		cats[i] = strings.ToLower(strings.TrimSpace(c))
	}
	return &Engine{
		categories: cats,
		typos:      NewTypoCorrector(rules.Typos),
		matcher:    NewCategoryMatcher(rules.CategoryKeywords, rules.FuzzyThreshold, rules.MinFuzzyWordLength),
		context:    NewContextExtractor(rules.Intent, rules.Occasion, rules.Aesthetic, rules.Recipient),
		tokens:     NewTokenizer(rules.StopWords),
		ranker:     NewRanker(rules.IntentCues, rules.OccasionCues, rules.AestheticCues, rules.RecipientCues, rules.Scoring),
	}, nil
}

// Categories returns the engine's category set.
func (e *Engine) Categories() []string {
	out := make([]string, len(e.categories))
	copy(out, e.categories)
	return out
}

// Search ranks products for query. prefs may be nil.
func (e *Engine) Search(query string, products []product.Product, prefs *Preferences) Response {
	corrected := e.typos.Correct(query)

	var pr *PriceRange
	if r, ok := e.prices.Extract(corrected); ok {
		pr = &r
	}
	category := e.matcher.Match(corrected, e.categories)
	qc := e.context.Extract(corrected)
	terms := e.tokens.Terms(corrected)

	candidates := products
	if prefs != nil {
		pr = intersectPrice(pr, prefs)
		candidates = applyPreferences(candidates, prefs)
		if qc.Aesthetic == "" {
			qc.Aesthetic = e.context.aesthetic.classify(strings.ToLower(strings.Join(prefs.Styles, " ")))
		}
		if qc.Occasion == "" {
			qc.Occasion = e.context.occasion.classify(strings.ToLower(strings.Join(prefs.Occasions, " ")))
		}
	}

	var keywords []string
	if category == "" {
		keywords = e.filterKeywords(terms, candidates)
	}

	filtered := Filter(candidates, Criteria{PriceRange: pr, Category: category, Keywords: keywords})
	ranked := e.ranker.Rank(filtered, terms, qc, pr)

	targeted := pr != nil || category != "" || len(keywords) > 0 ||
		qc.Intent != IntentBrowse || qc.Occasion != "" || qc.Aesthetic != "" || qc.Recipient != ""

	cats := e.Categories()
	if category != "" {
		cats = []string{category}
	}

	return Response{
		Products: ranked,
		Reasoning: e.reasoner.Compose(Summary{
			OriginalQuery:  query,
			CorrectedQuery: corrected,
			ResultCount:    len(ranked),
			PriceRange:     pr,
			Category:       category,
			Context:        qc,
			Targeted:       targeted,
			Categories:     e.categories,
		}),
		Confidence: e.reasoner.Confidence(query, corrected, len(ranked)),
		Categories: cats,
		SuggestedFilters: &SuggestedFilters{
			Category:   category,
			PriceRange: pr,
			Context:    qc,
			Keywords:   nonNil(keywords),
		},
		CorrectedQuery: corrected,
	}
}

// filterKeywords keeps the terms that can act as keyword filters: not
// context vocabulary, and present somewhere in the candidate catalog. Terms
// no product mentions are unrecognized rather than filters.
func (e *Engine) filterKeywords(terms []string, products []product.Product) []string {
	var out []string
	for _, t := range terms {
		if e.context.vocabulary(t) {
			continue
		}
		for _, p := range products {
			if strings.Contains(keywordSurface(p), t) {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

func intersectPrice(pr *PriceRange, prefs *Preferences) *PriceRange {
	if prefs.MinPrice == nil && prefs.MaxPrice == nil {
		return pr
	}
	out := PriceRange{Min: 0, Max: math.Inf(1)}
	if pr != nil {
		out = *pr
	}
	if prefs.MinPrice != nil && *prefs.MinPrice > out.Min {
		out.Min = *prefs.MinPrice
	}
	if prefs.MaxPrice != nil && *prefs.MaxPrice < out.Max {
		out.Max = *prefs.MaxPrice
	}
	return &out
}

func applyPreferences(products []product.Product, prefs *Preferences) []product.Product {
	out := products
	if len(prefs.Categories) > 0 {
		out = keep(out, func(p product.Product) bool { return containsFold(prefs.Categories, p.Category) })
	}
	if len(prefs.Artisans) > 0 {
		out = keep(out, func(p product.Product) bool { return containsFold(prefs.Artisans, p.Artisan) })
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
