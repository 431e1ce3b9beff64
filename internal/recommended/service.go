package recommended

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/wichananm65/artisan-market-backend/internal/product"
	"github.com/wichananm65/artisan-market-backend/internal/search"
)

var (
	ErrEmptyPrompt        = errors.New("userPrompt is required")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// CatalogSource is satisfied by product.Service.
type CatalogSource interface {
	CatalogExcluding(ids []string) ([]product.Product, error)
}

// Service runs recommendation requests against the current catalog.
type Service struct {
	engine     *search.Engine
	catalog    CatalogSource
	assistant  Assistant
	defaultMax int
	log        zerolog.Logger
}

func NewService(engine *search.Engine, catalog CatalogSource, defaultMax int, log zerolog.Logger) *Service {
	if defaultMax <= 0 {
		defaultMax = 10
	}
	return &Service{engine: engine, catalog: catalog, defaultMax: defaultMax, log: log}
}

// WithAssistant makes s consult a first before falling back to the engine.
func (s *Service) WithAssistant(a Assistant) *Service {
	s.assistant = a
	return s
}

// Recommend answers req. Excluded ids are removed before any matching runs
// and the ranked list is cut to MaxResults (or the service default).
func (s *Service) Recommend(ctx context.Context, req Request) (search.Response, error) {
	if strings.TrimSpace(req.UserPrompt) == "" {
		return search.Response{}, ErrEmptyPrompt
	}

	catalog, err := s.catalog.CatalogExcluding(req.ExcludeProducts)
	if err != nil {
		return search.Response{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	limit := req.MaxResults
	if limit <= 0 {
		limit = s.defaultMax
	}

	if s.assistant != nil {
		resp, err := s.fromAssistant(ctx, req.UserPrompt, catalog)
		if err == nil {
			resp.Products = truncate(resp.Products, limit)
			return resp, nil
		}
		s.log.Warn().Err(err).Str("prompt", req.UserPrompt).Msg("assistant failed, using keyword search")
	}

	resp := s.engine.Search(req.UserPrompt, catalog, req.UserPreferences)
	s.log.Debug().
		Str("prompt", req.UserPrompt).
		Str("corrected", resp.CorrectedQuery).
		Strs("categories", resp.Categories).
		Int("matches", len(resp.Products)).
		Float64("confidence", resp.Confidence).
		Msg("search completed")

	resp.Products = truncate(resp.Products, limit)
	return resp, nil
}

// fromAssistant accepts the suggestion only when every id is a known,
// non-repeated catalog product and the confidence and reasoning are usable.
func (s *Service) fromAssistant(ctx context.Context, prompt string, catalog []product.Product) (search.Response, error) {
	sug, err := s.assistant.Recommend(ctx, prompt, catalog)
	if err != nil {
		return search.Response{}, err
	}
	if sug.Reasoning == "" {
		return search.Response{}, errors.New("assistant returned empty reasoning")
	}
	if sug.Confidence < 0.05 || sug.Confidence > 0.95 {
		return search.Response{}, fmt.Errorf("assistant confidence %v out of range", sug.Confidence)
	}

	byID := make(map[string]product.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}
	seen := make(map[string]struct{}, len(sug.ProductIDs))
	products := make([]product.Product, 0, len(sug.ProductIDs))
	for _, id := range sug.ProductIDs {
		p, ok := byID[id]
		if !ok {
			return search.Response{}, fmt.Errorf("assistant returned unknown product %q", id)
		}
		if _, dup := seen[id]; dup {
			return search.Response{}, fmt.Errorf("assistant returned product %q twice", id)
		}
		seen[id] = struct{}{}
		products = append(products, p)
	}

	return search.Response{
		Products:   products,
		Reasoning:  sug.Reasoning,
		Confidence: sug.Confidence,
		Categories: s.categoriesOf(products),
	}, nil
}

// categoriesOf is the single shared category, or the full set.
func (s *Service) categoriesOf(products []product.Product) []string {
	if len(products) > 0 {
		first := products[0].Category
		same := true
		for _, p := range products[1:] {
			if p.Category != first {
				same = false
				break
			}
		}
		if same {
			return []string{first}
		}
	}
	return s.engine.Categories()
}

func truncate(products []product.Product, n int) []product.Product {
	if n > 0 && len(products) > n {
		return products[:n]
	}
	return products
}
