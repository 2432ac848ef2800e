package catalog

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Prices are stored as JSON numbers in the catalog document; the
	// default quoted-string encoding would rewrite every price on the
	// first write-back and change the response shape for numeric
	// consumers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Document is the catalog root: an ordered mapping of category key to
// Category. It is the single source of truth for product data and is
// persisted wholesale through the document store.
type Document struct {
	Categories Map[Category] `json:"categories"`
}

// Category maps product keys to products.
type Category = Map[Product]

// Product carries the fixed attributes plus an open, category-dependent
// property set (celestial bodies report surface area and density, stars
// report mass and distance, and so on).
type Product struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	InStock     bool            `json:"in-stock"`
	Properties  map[string]any  `json:"properties"`
}

// ProductCount reports the total number of products across all categories.
func (d *Document) ProductCount() int {
	total := 0
	for _, k := range d.Categories.Keys() {
		if c, ok := d.Categories.Get(k); ok {
			total += c.Len()
		}
	}
	return total
}
