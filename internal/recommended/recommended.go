package recommended

import (
	"context"

	"github.com/wichananm65/artisan-market-backend/internal/product"
	"github.com/wichananm65/artisan-market-backend/internal/search"
)

// Request is the body of POST /api/v1/recommendations.
type Request struct {
	UserPrompt      string              `json:"userPrompt"`
	UserPreferences *search.Preferences `json:"userPreferences,omitempty"`
	MaxResults      int                 `json:"maxResults,omitempty"`
	ExcludeProducts []string            `json:"excludeProducts,omitempty"`
}

// Suggestion is what an Assistant proposes: product ids in rank order plus
// its own explanation.
type Suggestion struct {
	ProductIDs []string
	Reasoning  string
	Confidence float64
}

// Assistant is an optional model-backed recommender. Its answers are checked
// against the catalog and the deterministic engine is used whenever it fails.
type Assistant interface {
	Recommend(ctx context.Context, prompt string, catalog []product.Product) (Suggestion, error)
}
