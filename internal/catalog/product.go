package catalog

import (
	"strconv"
	"strings"
)

// Product is an item in the static storefront catalog. Prices are in minor currency units.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	Price         int64    `json:"price"`
	OriginalPrice *int64   `json:"originalPrice"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Images        []string `json:"images"`
	Sizes         []string `json:"sizes"`
	InStock       bool     `json:"inStock"`
	IsNew         bool     `json:"isNew"`
}

// OnSale reports whether the product is discounted from its original price.
func (p Product) OnSale() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}

// Image returns the first image, or "" when the product has none.
func (p Product) Image() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// FormatPrice renders minor units the way the storefront shows them, e.g. "Rs. 12,500".
func FormatPrice(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return "Rs. " + sign + b.String()
}
