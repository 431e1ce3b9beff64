package category

import (
	"github.com/rs/zerolog"
)

// Service provides business logic for categories.
type Service struct {
	repo       Repository
	categories []string
	log        zerolog.Logger
}

// NewService lists categories in the given order; names outside it are
// never reported.
func NewService(r Repository, categories []string, log zerolog.Logger) *Service {
	return &Service{repo: r, categories: categories, log: log}
}

// List returns up to `limit` category items. Categories with no products are
// included with a zero count.
func (s *Service) List(limit int) []CategoryItem {
	counts, err := s.repo.Counts()
	if err != nil {
		// keep the endpoint usable; counts fall back to zero
		s.log.Error().Err(err).Msg("category counts unavailable")
		counts = map[string]int{}
	}

	out := make([]CategoryItem, 0, len(s.categories))
	for _, name := range s.categories {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, CategoryItem{CategoryName: name, ProductCount: counts[name]})
	}
	return out
}
