package search

import (
	"regexp"
	"strings"
)

// Default labels.
const (
	IntentBrowse   = "browse"
	IntentGift     = "gift"
	IntentDecorate = "decorate"
	IntentWear     = "wear"
	IntentKitchen  = "kitchen"
)

// Context is what the query says about purpose and audience. Empty string
// means "not stated"; Intent is never empty.
type Context struct {
	Intent    string `json:"intent"`
	Occasion  string `json:"occasion,omitempty"`
	Aesthetic string `json:"aesthetic,omitempty"`
	Recipient string `json:"recipient,omitempty"`
}

type compiledRule struct {
	label   string
	pattern *regexp.Regexp
}

// ruleTable is an ordered {pattern, label} list; the first match wins.
type ruleTable []compiledRule

func compileRules(rules []LabelRule) ruleTable {
	out := make(ruleTable, 0, len(rules))
	for _, r := range rules {
		if p := wordAlternation(r.Terms); p != nil {
			out = append(out, compiledRule{label: r.Label, pattern: p})
		}
	}
	return out
}

func (t ruleTable) classify(text string) string {
	for _, r := range t {
		if r.pattern.MatchString(text) {
			return r.label
		}
	}
	return ""
}

// wordAlternation builds \b(?:t1|t2|...)\b, or nil for an empty term list.
func wordAlternation(terms []string) *regexp.Regexp {
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.TrimSpace(t); t != "" {
			quoted = append(quoted, regexp.QuoteMeta(strings.ToLower(t)))
		}
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// ContextExtractor classifies intent, occasion, aesthetic and recipient.
type ContextExtractor struct {
	intent    ruleTable
	occasion  ruleTable
	aesthetic ruleTable
	recipient ruleTable
}

func NewContextExtractor(intent, occasion, aesthetic, recipient []LabelRule) *ContextExtractor {
	return &ContextExtractor{
		intent:    compileRules(intent),
		occasion:  compileRules(occasion),
		aesthetic: compileRules(aesthetic),
		recipient: compileRules(recipient),
	}
}

func (e *ContextExtractor) Extract(query string) Context {
	q := strings.ToLower(query)
	ctx := Context{
		Intent:    e.intent.classify(q),
		Occasion:  e.occasion.classify(q),
		Aesthetic: e.aesthetic.classify(q),
		Recipient: e.recipient.classify(q),
	}
	if ctx.Intent == "" {
		ctx.Intent = IntentBrowse
	}
	return ctx
}

// vocabulary reports whether word alone triggers any context rule. Such
// words steer ranking and are not used as keyword filters.
func (e *ContextExtractor) vocabulary(word string) bool {
	for _, t := range []ruleTable{e.intent, e.occasion, e.aesthetic, e.recipient} {
		if t.classify(word) != "" {
			return true
		}
	}
	return false
}
