package product

import (
	"github.com/rs/zerolog"
)

type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) List() ([]Product, error) {
	return s.repo.List()
}

// Catalog returns the searchable products: normalized, with rows that fail
// validation left out and logged.
func (s *Service) Catalog() ([]Product, error) {
	products, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	return s.clean(products), nil
}

// CatalogExcluding is Catalog without the given product IDs.
func (s *Service) CatalogExcluding(ids []string) ([]Product, error) {
	products, err := s.repo.ListExcluding(ids)
	if err != nil {
		return nil, err
	}
	return s.clean(products), nil
}

func (s *Service) clean(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		p = Normalize(p)
		if errs := Validate(p); len(errs) > 0 || p.ID == "" {
			s.log.Warn().Str("product_id", p.ID).Interface("errors", errs).Msg("skipping invalid catalog row")
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *Service) GetByID(id string) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(p Product) (Product, error) {
	return s.repo.Create(Normalize(p))
}

func (s *Service) Update(id string, p Product) (Product, error) {
	return s.repo.Update(id, Normalize(p))
}

func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}

// ResetProducts replaces all products with the given list (used for dev / seeding).
func (s *Service) ResetProducts(products []Product) error {
	normalized := make([]Product, len(products))
	for i, p := range products {
		normalized[i] = Normalize(p)
	}
	return s.repo.Reset(normalized)
}
