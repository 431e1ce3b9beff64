package product

import "strings"

// Product is a single artisan catalog item and maps to the `artisan_product` table.
// JSON tags follow the camelCase convention used by the storefront.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Artisan     string  `json:"artisan"`
	Category    string  `json:"category"`
	AIHint      string  `json:"aiHint"`
	Description string  `json:"description"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	CreatedAt   *string `json:"createdAt,omitempty"`
	UpdatedAt   *string `json:"updatedAt,omitempty"`
}

// Categories is the closed category set used across the app.
var Categories = []string{
	"pottery",
	"textiles",
	"jewelry",
	"woodwork",
	"metalwork",
	"painting",
}

// IsCategory reports whether name is one of Categories (case-insensitive).
func IsCategory(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Normalize trims text fields and lower-cases the category.
func Normalize(p Product) Product {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Artisan = strings.TrimSpace(p.Artisan)
	p.Category = strings.ToLower(strings.TrimSpace(p.Category))
	p.AIHint = strings.TrimSpace(p.AIHint)
	p.Description = strings.TrimSpace(p.Description)
	return p
}

// Validate returns field -> message for every problem found. An empty map
// means the product can be handed to the search engine. ID is not checked
// here because repositories assign one on create.
func Validate(p Product) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(p.Name) == "" {
		errs["name"] = "name is required"
	}
	if strings.TrimSpace(p.Artisan) == "" {
		errs["artisan"] = "artisan is required"
	}
	if p.Price < 0 {
		errs["price"] = "price must be >= 0"
	}
	if !IsCategory(p.Category) {
		errs["category"] = "invalid category"
	}
	return errs
}

func ptrString(s string) *string { return &s }
