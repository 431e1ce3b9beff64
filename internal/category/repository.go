package category

import (
	"strings"

	"github.com/wichananm65/artisan-market-backend/internal/product"
)

// Repository reports how many products each category holds.
type Repository interface {
	Counts() (map[string]int, error)
}

// CatalogLister is satisfied by product.Service.
type CatalogLister interface {
	Catalog() ([]product.Product, error)
}

// CatalogRepository counts over the validated product catalog. It is used
// with the in-memory product store.
type CatalogRepository struct {
	catalog CatalogLister
}

func NewCatalogRepository(catalog CatalogLister) *CatalogRepository {
	return &CatalogRepository{catalog: catalog}
}

func (r *CatalogRepository) Counts() (map[string]int, error) {
	products, err := r.catalog.Catalog()
	if err != nil {
		return nil, err
	}
	out := make(map[string]int)
	for _, p := range products {
		out[strings.ToLower(p.Category)]++
	}
	return out, nil
}
