package search

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// PriceRange is an inclusive price window. Max is +Inf for "above X".
type PriceRange struct {
	Min float64
	Max float64
	// Reordered is set when a "between" query named the bounds high-to-low.
	Reordered bool
}

// Bounded reports whether the range has a finite upper bound.
func (r PriceRange) Bounded() bool { return !math.IsInf(r.Max, 1) }

// Contains reports whether price lies inside the range, bounds included.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && (!r.Bounded() || price <= r.Max)
}

type priceRangeJSON struct {
	Min float64  `json:"min"`
	Max *float64 `json:"max"`
}

// MarshalJSON writes an open upper bound as null since JSON has no infinity.
func (r PriceRange) MarshalJSON() ([]byte, error) {
	out := priceRangeJSON{Min: r.Min}
	if r.Bounded() {
		hi := r.Max
		out.Max = &hi
	}
	return json.Marshal(out)
}

// UnmarshalJSON treats a missing or null max as unbounded.
func (r *PriceRange) UnmarshalJSON(b []byte) error {
	var in priceRangeJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	r.Min = in.Min
	r.Max = math.Inf(1)
	if in.Max != nil {
		r.Max = *in.Max
	}
	return nil
}

const (
	currencyToken = `(?:₹\s*|rs\.?\s*|rupees\s*)?`
	amountToken   = `(\d[\d,]*)`
)

var (
	betweenPattern = regexp.MustCompile(`\bbetween\s+` + currencyToken + amountToken + `\s*(?:and|to|-)\s*` + currencyToken + amountToken)
	underPattern   = regexp.MustCompile(`\b(?:under|below|less than|lesser than)\s+` + currencyToken + amountToken)
	abovePattern   = regexp.MustCompile(`\b(?:above|over|more than|greater than)\s+` + currencyToken + amountToken)
)

// PriceRangeExtractor pulls a price bound out of free text.
type PriceRangeExtractor struct{}

// Extract tries between, under and above in that order against the
// lower-cased text. ok is false when nothing matched.
func (PriceRangeExtractor) Extract(text string) (PriceRange, bool) {
	text = strings.ToLower(text)

	if m := betweenPattern.FindStringSubmatch(text); m != nil {
		lo, okLo := parseAmount(m[1])
		hi, okHi := parseAmount(m[2])
		if okLo && okHi {
			if lo > hi {
				return PriceRange{Min: hi, Max: lo, Reordered: true}, true
			}
			return PriceRange{Min: lo, Max: hi}, true
		}
	}
	if m := underPattern.FindStringSubmatch(text); m != nil {
		if v, ok := parseAmount(m[1]); ok {
			return PriceRange{Min: 0, Max: v}, true
		}
	}
	if m := abovePattern.FindStringSubmatch(text); m != nil {
		if v, ok := parseAmount(m[1]); ok {
			return PriceRange{Min: v, Max: math.Inf(1)}, true
		}
	}
	return PriceRange{}, false
}

func parseAmount(s string) (float64, bool) {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0, false
	}
	return float64(n), true
}
