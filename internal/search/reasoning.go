package search

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Summary is what the reasoning text is built from.
type Summary struct {
	OriginalQuery  string
	CorrectedQuery string
	ResultCount    int
	PriceRange     *PriceRange
	Category       string
	Context        Context
	// Targeted is false when the query produced no price, category,
	// keyword or context signal at all.
	Targeted   bool
	Categories []string
}

var intentPhrases = map[string]string{
	IntentGift:     "Looking for gift options",
	IntentDecorate: "Finding items for home decoration",
	IntentWear:     "Searching for pieces to wear",
	IntentKitchen:  "Finding kitchen and dining pieces",
}

var occasionPhrases = map[string]string{
	"wedding":      "for a wedding",
	"festival":     "for festive celebrations",
	"birthday":     "for a birthday or anniversary",
	"professional": "for a professional setting",
}

var recipientPhrases = map[string]string{
	"women":  "for women",
	"men":    "for men",
	"family": "for the family",
	"friend": "for a friend",
}

// ReasoningComposer renders the explanation and confidence for a result.
type ReasoningComposer struct{}

func (ReasoningComposer) Compose(s Summary) string {
	if s.ResultCount == 0 {
		return fmt.Sprintf(
			"Sorry, no products matched %q. Try browsing our categories (%s) or widening your price range.",
			s.OriginalQuery, strings.Join(s.Categories, ", "),
		)
	}

	var b strings.Builder
	if phrase, ok := intentPhrases[s.Context.Intent]; ok {
		b.WriteString(phrase)
	} else {
		b.WriteString("Found " + pluralProducts(s.ResultCount))
	}
	if s.Context.Aesthetic != "" {
		b.WriteString(" with a " + s.Context.Aesthetic + " aesthetic")
	}
	if phrase, ok := recipientPhrases[s.Context.Recipient]; ok {
		b.WriteString(" " + phrase)
	}
	if phrase, ok := occasionPhrases[s.Context.Occasion]; ok {
		b.WriteString(" " + phrase)
	}
	if s.PriceRange != nil {
		b.WriteString(" " + priceClause(*s.PriceRange))
	}
	if s.Category != "" {
		b.WriteString(" in the " + s.Category + " category")
	}
	b.WriteString(".")

	if !s.Targeted {
		b.WriteString(" No category, price range or keywords were recognized, so all " + pluralProducts(s.ResultCount) + " are shown.")
	}
	if wasCorrected(s.OriginalQuery, s.CorrectedQuery) {
		fmt.Fprintf(&b, " Corrected %q to %q.", s.OriginalQuery, s.CorrectedQuery)
	}
	if s.ResultCount == 1 {
		b.WriteString(" This item perfectly matches your search.")
	} else {
		b.WriteString(" Results are ranked by relevance.")
	}
	return b.String()
}

// Confidence starts at 0.8 and is clamped to [0.1, 0.95].
func (ReasoningComposer) Confidence(original, corrected string, resultCount int) float64 {
	c := 0.8
	if wasCorrected(original, corrected) {
		c -= 0.1
	}
	switch {
	case resultCount == 0:
		c = math.Max(c-0.5, 0.3)
	case resultCount == 1:
		c += 0.1
	case resultCount > 10:
		c -= 0.1
	}
	return math.Round(math.Min(math.Max(c, 0.1), 0.95)*100) / 100
}

// wasCorrected ignores case since correction lower-cases everything.
func wasCorrected(original, corrected string) bool {
	return strings.ToLower(original) != corrected
}

func priceClause(r PriceRange) string {
	switch {
	case !r.Bounded():
		return "priced above ₹" + formatAmount(r.Min)
	case r.Min <= 0:
		return "priced under ₹" + formatAmount(r.Max)
	case r.Reordered:
		return "priced between ₹" + formatAmount(r.Min) + " and ₹" + formatAmount(r.Max) + " (bounds reordered)"
	default:
		return "priced between ₹" + formatAmount(r.Min) + " and ₹" + formatAmount(r.Max)
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pluralProducts(n int) string {
	if n == 1 {
		return "1 product"
	}
	return strconv.Itoa(n) + " products"
}
