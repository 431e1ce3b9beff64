package search

import (
	"regexp"
	"sort"
	"strings"

	"github.com/wichananm65/artisan-market-backend/internal/product"
)

type compiledCue struct {
	label      string
	pattern    *regexp.Regexp
	categories []string
	bonus      float64
}

func compileCues(cues []Cue) []compiledCue {
	out := make([]compiledCue, 0, len(cues))
	for _, c := range cues {
		cc := compiledCue{label: c.Label, categories: c.Categories, bonus: c.Bonus}
		quoted := make([]string, 0, len(c.Terms))
		for _, t := range c.Terms {
			if t = strings.TrimSpace(t); t != "" {
				quoted = append(quoted, regexp.QuoteMeta(strings.ToLower(t)))
			}
		}
		if len(quoted) > 0 {
			cc.pattern = regexp.MustCompile(strings.Join(quoted, "|"))
		}
		out = append(out, cc)
	}
	return out
}

// cueBonus sums every cue for label that the product satisfies.
func cueBonus(cues []compiledCue, label, text, category string) float64 {
	if label == "" {
		return 0
	}
	var total float64
	for _, c := range cues {
		if c.label != label {
			continue
		}
		if (c.pattern != nil && c.pattern.MatchString(text)) || containsFold(c.categories, category) {
			total += c.bonus
		}
	}
	return total
}

// Ranker orders products by an additive relevance score.
type Ranker struct {
	intent    []compiledCue
	occasion  []compiledCue
	aesthetic []compiledCue
	recipient []compiledCue
	scoring   Scoring
}

func NewRanker(intent, occasion, aesthetic, recipient []Cue, scoring Scoring) *Ranker {
	return &Ranker{
		intent:    compileCues(intent),
		occasion:  compileCues(occasion),
		aesthetic: compileCues(aesthetic),
		recipient: compileCues(recipient),
		scoring:   scoring,
	}
}

// Score is the relevance of p for the given terms and context.
func (r *Ranker) Score(p product.Product, terms []string, qc Context, pr *PriceRange) float64 {
	category := strings.ToLower(p.Category)
	surface := strings.ToLower(p.Name + p.Artisan + p.AIHint + category)
	cueText := strings.ToLower(p.Name + " " + p.Artisan + " " + p.AIHint + " " + p.Description + " " + category)

	var score float64
	for _, t := range terms {
		if strings.Contains(surface, t) {
			score += r.scoring.TermMatch
		}
	}

	if qc.Intent != IntentBrowse {
		score += cueBonus(r.intent, qc.Intent, cueText, category)
	}
	score += cueBonus(r.occasion, qc.Occasion, cueText, category)
	score += cueBonus(r.aesthetic, qc.Aesthetic, cueText, category)
	score += cueBonus(r.recipient, qc.Recipient, cueText, category)

	if pr != nil && pr.Bounded() && pr.Max <= r.scoring.BudgetCeiling && r.scoring.BudgetDivisor != 0 {
		score += (r.scoring.BudgetPivot - p.Price) / r.scoring.BudgetDivisor
	}

	for _, t := range terms {
		if category != "" && strings.Contains(category, t) {
			score += r.scoring.CategoryWord
			break
		}
	}
	return score
}

// Rank returns a reordered copy of products, highest score first. Equal
// scores go cheapest-first when a bounded price range is active and keep
// input order otherwise.
func (r *Ranker) Rank(products []product.Product, terms []string, qc Context, pr *PriceRange) []product.Product {
	type scored struct {
		p     product.Product
		score float64
	}
	items := make([]scored, len(products))
	for i, p := range products {
		items[i] = scored{p: p, score: r.Score(p, terms, qc, pr)}
	}

	cheapestFirst := pr != nil && pr.Bounded()
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score > items[j].score
		}
		if cheapestFirst {
			return items[i].p.Price < items[j].p.Price
		}
		return false
	})

	out := make([]product.Product, len(items))
	for i, it := range items {
		out[i] = it.p
	}
	return out
}
