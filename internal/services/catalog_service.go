package services

import "handmade/internal/domain"

// AllCategories is the pseudo-category that disables filtering.
const AllCategories = "All"

// Categories returns "All" followed by each distinct category in the order
// it first appears in products.
func Categories(products []domain.Product) []string {
	out := []string{AllCategories}
	seen := map[string]bool{}
	for _, p := range products {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// FilterByCategory keeps products whose category equals category exactly.
// "All" and "" keep everything.
func FilterByCategory(products []domain.Product, category string) []domain.Product {
	if category == "" || category == AllCategories {
		return products
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
