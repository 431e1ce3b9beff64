package search

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules holds every table the engine consults. It is plain data so a YAML
// file (or a test) can replace any part of it.
type Rules struct {
	Categories         []string           `yaml:"categories"`
	Typos              []Correction       `yaml:"typos"`
	CategoryKeywords   []CategoryKeywords `yaml:"category_keywords"`
	StopWords          []string           `yaml:"stop_words"`
	Intent             []LabelRule        `yaml:"intent"`
	Occasion           []LabelRule        `yaml:"occasion"`
	Aesthetic          []LabelRule        `yaml:"aesthetic"`
	Recipient          []LabelRule        `yaml:"recipient"`
	IntentCues         []Cue              `yaml:"intent_cues"`
	OccasionCues       []Cue              `yaml:"occasion_cues"`
	AestheticCues      []Cue              `yaml:"aesthetic_cues"`
	RecipientCues      []Cue              `yaml:"recipient_cues"`
	FuzzyThreshold     float64            `yaml:"fuzzy_threshold"`
	MinFuzzyWordLength int                `yaml:"min_fuzzy_word_length"`
	Scoring            Scoring            `yaml:"scoring"`
}

// Correction maps a known misspelling to its canonical term.
type Correction struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// CategoryKeywords lists nouns that imply a category.
type CategoryKeywords struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// LabelRule assigns Label when any of Terms appears as a whole word.
type LabelRule struct {
	Label string   `yaml:"label"`
	Terms []string `yaml:"terms"`
}

// Cue awards Bonus to a product whose text contains any of Terms or whose
// category is one of Categories, when Label is active for the query.
type Cue struct {
	Label      string   `yaml:"label"`
	Terms      []string `yaml:"terms"`
	Categories []string `yaml:"categories"`
	Bonus      float64  `yaml:"bonus"`
}

// Scoring holds the additive ranking constants.
type Scoring struct {
	TermMatch     float64 `yaml:"term_match"`
	CategoryWord  float64 `yaml:"category_word"`
	BudgetCeiling float64 `yaml:"budget_ceiling"`
	BudgetPivot   float64 `yaml:"budget_pivot"`
	BudgetDivisor float64 `yaml:"budget_divisor"`
}

// LoadRules reads a YAML file on top of DefaultRules. Tables present in the
// file replace the default table wholesale; absent ones keep the default.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	b, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read search rules: %w", err)
	}
	if err := yaml.Unmarshal(b, &rules); err != nil {
		return Rules{}, fmt.Errorf("parse search rules %s: %w", path, err)
	}
	return rules, nil
}

// DefaultRules returns the built-in vocabulary for the artisan catalog.
func DefaultRules() Rules {
	return Rules{
		Categories: []string{"pottery", "textiles", "jewelry", "woodwork", "metalwork", "painting"},
		Typos: []Correction{
			{"poterry", "pottery"},
			{"pottry", "pottery"},
			{"potery", "pottery"},
			{"pottey", "pottery"},
			{"jewlery", "jewelry"},
			{"jewelery", "jewelry"},
			{"jewellery", "jewelry"},
			{"jewlry", "jewelry"},
			{"jwelery", "jewelry"},
			{"textils", "textiles"},
			{"textels", "textiles"},
			{"texttiles", "textiles"},
			{"woodwrok", "woodwork"},
			{"wodwork", "woodwork"},
			{"woodwok", "woodwork"},
			{"metalwrok", "metalwork"},
			{"metelwork", "metalwork"},
			{"paintng", "painting"},
			{"painitng", "painting"},
			{"paintig", "painting"},
			{"neckless", "necklace"},
			{"necklase", "necklace"},
			{"earings", "earrings"},
			{"braclet", "bracelet"},
			{"ceramik", "ceramic"},
			{"terracota", "terracotta"},
			{"handmad", "handmade"},
			{"madubani", "madhubani"},
			{"kalamkary", "kalamkari"},
			{"pashmeena", "pashmina"},
			{"sari", "saree"},
		},
		CategoryKeywords: []CategoryKeywords{
			{"pottery", []string{"pot", "ceramic", "clay", "vase", "bowl", "kettle", "terracotta", "mug"}},
			{"textiles", []string{"saree", "shawl", "scarf", "fabric", "cotton", "silk", "cloth", "dupatta", "stole", "kurta", "handloom"}},
			{"jewelry", []string{"necklace", "earring", "bracelet", "bangle", "pendant", "anklet", "jhumka", "rings"}},
			{"woodwork", []string{"wood", "carved", "carving", "teak", "sheesham", "furniture", "toy"}},
			{"metalwork", []string{"metal", "brass", "copper", "bronze", "iron", "dhokra", "bidri"}},
			{"painting", []string{"canvas", "madhubani", "warli", "pattachitra", "artwork", "portrait", "wall art"}},
		},
		StopWords: []string{
			"a", "an", "the", "and", "or", "but", "of", "in", "on", "at", "to", "for", "from", "with",
			"by", "about", "into", "over", "under", "below", "above", "between", "than", "less", "lesser",
			"more", "greater", "around", "near", "some", "any", "can", "could", "should", "would", "will",
			"shall", "may", "might", "must", "want", "need", "looking", "show", "find", "give", "get",
			"me", "my", "i", "you", "your", "something", "things", "thing", "items", "item", "products",
			"product", "rs", "rupees", "price", "priced", "budget", "within", "upto", "is", "are", "be",
			"that", "this", "these", "those", "very", "please",
		},
		Intent: []LabelRule{
			{"gift", []string{"gift", "present", "surprise"}},
			{"decorate", []string{"decorate", "decoration", "home", "house", "room"}},
			{"wear", []string{"wear", "wearing", "jewelry", "accessories"}},
			{"kitchen", []string{"cook", "cooking", "kitchen", "dining"}},
		},
		Occasion: []LabelRule{
			{"wedding", []string{"wedding", "marriage", "shaadi"}},
			{"festival", []string{"festival", "diwali", "holi", "navratri", "celebration"}},
			{"birthday", []string{"birthday", "anniversary"}},
			{"professional", []string{"office", "work", "professional"}},
		},
		Aesthetic: []LabelRule{
			{"beautiful", []string{"beautiful", "pretty", "elegant", "graceful", "lovely"}},
			{"traditional", []string{"traditional", "ethnic", "cultural", "classical"}},
			{"modern", []string{"modern", "contemporary", "stylish", "trendy"}},
			{"unique", []string{"unique", "special", "rare", "exclusive", "one-of-a-kind"}},
			{"simple", []string{"simple", "minimal", "clean", "basic"}},
		},
		Recipient: []LabelRule{
			{"women", []string{"women", "woman", "female", "girl", "lady", "wife", "mother", "mom", "sister", "daughter"}},
			{"men", []string{"men", "man", "male", "boy", "guy", "husband", "father", "dad", "brother", "son"}},
			{"family", []string{"couple", "family", "parents", "grandparents"}},
			{"friend", []string{"friend", "colleague", "boss", "teacher"}},
		},
		IntentCues: []Cue{
			{Label: "gift", Terms: []string{"gift", "present", "beautiful", "elegant", "special"}, Bonus: 25},
			{Label: "decorate", Terms: []string{"decor", "decoration", "home", "wall", "display"}, Categories: []string{"pottery", "painting", "metalwork"}, Bonus: 20},
			{Label: "wear", Categories: []string{"jewelry", "textiles"}, Bonus: 25},
			{Label: "kitchen", Terms: []string{"kitchen", "cooking", "dining", "food", "tea", "kettle", "bowl", "pot"}, Bonus: 20},
		},
		OccasionCues: []Cue{
			{Label: "wedding", Terms: []string{"wedding", "bridal", "silk", "gold", "zari", "kundan"}, Categories: []string{"jewelry"}, Bonus: 20},
			{Label: "festival", Terms: []string{"festival", "diwali", "diya", "lamp", "brass", "colorful"}, Bonus: 15},
			{Label: "birthday", Terms: []string{"gift", "special", "personalized", "toy"}, Bonus: 15},
			{Label: "professional", Terms: []string{"office", "desk", "minimal", "elegant"}, Bonus: 15},
		},
		AestheticCues: []Cue{
			{Label: "beautiful", Terms: []string{"beautiful", "elegant", "pretty", "delicate", "floral"}, Bonus: 15},
			{Label: "traditional", Terms: []string{"traditional", "ethnic", "handwoven", "tribal", "heritage", "madhubani", "warli", "terracotta"}, Bonus: 20},
			{Label: "modern", Terms: []string{"modern", "contemporary", "minimal", "sleek"}, Bonus: 15},
			{Label: "unique", Terms: []string{"unique", "rare", "one-of-a-kind", "hand-painted", "lost-wax"}, Bonus: 15},
			{Label: "simple", Terms: []string{"simple", "minimal", "plain", "clean"}, Bonus: 15},
		},
		RecipientCues: []Cue{
			{Label: "women", Terms: []string{"women", "woman", "saree", "shawl", "necklace", "earring"}, Categories: []string{"jewelry", "textiles"}, Bonus: 15},
			{Label: "men", Terms: []string{"kurta", "wallet"}, Categories: []string{"woodwork", "metalwork"}, Bonus: 15},
			{Label: "family", Terms: []string{"family", "home", "decor", "set"}, Categories: []string{"pottery", "painting"}, Bonus: 15},
			{Label: "friend", Terms: []string{"gift", "friend", "mug", "small"}, Bonus: 15},
		},
		FuzzyThreshold:     0.6,
		MinFuzzyWordLength: 4,
		Scoring: Scoring{
			TermMatch:     10,
			CategoryWord:  20,
			BudgetCeiling: 3000,
			BudgetPivot:   5000,
			BudgetDivisor: 100,
		},
	}
}
