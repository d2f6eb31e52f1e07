package catalog

import (
	"cmp"
	"slices"
	"strings"
)

// Category filter values with special meaning.
const (
	CategoryAll         = "all"
	CategoryNewArrivals = "new-arrivals"
)

// Sort keys understood by Query. Any other value keeps catalog order.
const (
	SortFeatured  = "featured"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortNewest    = "newest"
)

// Params are the optional filters of a catalog query. Zero values disable a filter.
type Params struct {
	Category string
	Search   string
	SortBy   string
}

// Query filters products by category and name search, then sorts by SortBy.
// The input slice is left untouched; the result is always a fresh slice.
func Query(products []Product, p Params) []Product {
	search := strings.ToLower(strings.TrimSpace(p.Search))

	out := make([]Product, 0, len(products))
	for _, prod := range products {
		if !matchesCategory(prod, p.Category) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(prod.Name), search) {
			continue
		}
		out = append(out, prod)
	}

	switch p.SortBy {
	case SortPriceLow:
		slices.SortStableFunc(out, func(a, b Product) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceHigh:
		slices.SortStableFunc(out, func(a, b Product) int { return cmp.Compare(b.Price, a.Price) })
	case SortNewest:
		slices.SortStableFunc(out, func(a, b Product) int { return newestRank(a) - newestRank(b) })
	}
	return out
}

// Find looks a product up by id, falling back to its slug.
func Find(products []Product, idOrSlug string) (Product, bool) {
	for _, p := range products {
		if p.ID == idOrSlug {
			return p, true
		}
	}
	for _, p := range products {
		if p.Slug != "" && p.Slug == idOrSlug {
			return p, true
		}
	}
	return Product{}, false
}

func matchesCategory(p Product, category string) bool {
	switch category {
	case "", CategoryAll:
		return true
	case CategoryNewArrivals:
		return p.IsNew
	default:
		return p.Category == category
	}
}

func newestRank(p Product) int {
	if p.IsNew {
		return 0
	}
	return 1
}
