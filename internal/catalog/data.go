package catalog

import "github.com/gosimple/slug"

const (
	detailImage = "/api/placeholder/500/600"
)

var standardSizes = []string{"XS", "S", "M", "L", "XL"}

var sampleProducts = buildSampleProducts()

// Products returns a copy of the sample catalog. Callers may reorder the returned
// slice freely; the products themselves share image and size slices and must not be mutated.
func Products() []Product {
	out := make([]Product, len(sampleProducts))
	copy(out, sampleProducts)
	return out
}

func buildSampleProducts() []Product {
	products := []Product{
		{
			ID:            "1",
			Name:          "Classic Black Dress",
			Price:         12500,
			OriginalPrice: price(15000),
			Description:   "Elegant black dress perfect for any formal occasion.",
			Category:      "dresses",
		},
		{
			ID:          "2",
			Name:        "Silk Evening Gown",
			Price:       25000,
			Description: "Luxurious silk evening gown for special occasions.",
			Category:    "formal",
			IsNew:       true,
		},
		{
			ID:            "3",
			Name:          "Floral Summer Dress",
			Price:         8500,
			OriginalPrice: price(10000),
			Description:   "Light and comfortable floral dress for summer.",
			Category:      "casual",
		},
		{
			ID:          "4",
			Name:        "Professional Blazer Set",
			Price:       18500,
			Description: "Professional blazer set for office wear.",
			Category:    "formal",
		},
		{
			ID:            "5",
			Name:          "Bohemian Maxi Dress",
			Price:         14500,
			OriginalPrice: price(16000),
			Description:   "Flowing maxi dress with bohemian prints for relaxed evenings.",
			Category:      "dresses",
			IsNew:         true,
		},
		{
			ID:          "6",
			Name:        "Office Pencil Dress",
			Price:       11500,
			Description: "Tailored pencil dress with a sharp silhouette for the workday.",
			Category:    "formal",
		},
		{
			ID:            "7",
			Name:          "Casual T-shirt Dress",
			Price:         6500,
			OriginalPrice: price(8000),
			Description:   "Soft cotton t-shirt dress for everyday comfort.",
			Category:      "casual",
			IsNew:         true,
		},
		{
			ID:          "8",
			Name:        "Elegant Cocktail Dress",
			Price:       22000,
			Description: "Statement cocktail dress for parties and celebrations.",
			Category:    "dresses",
		},
	}

	for i := range products {
		products[i].Slug = slug.Make(products[i].Name)
		products[i].Images = []string{detailImage}
		products[i].Sizes = standardSizes
		products[i].InStock = true
	}
	return products
}

func price(v int64) *int64 { return &v }
