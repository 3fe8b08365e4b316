// Package catalog searches the fixed product table.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Chative-core-poc-v1/storefront/internal/agent/extract"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/model"
)

// MaxResults caps every search.
const MaxResults = 2

// Catalog is an immutable product table. It is safe for concurrent use.
type Catalog struct {
	products []model.Product
	colors   []string
}

// New copies products into a Catalog.
func New(products []model.Product) *Catalog {
	c := &Catalog{products: make([]model.Product, 0, len(products)), colors: []string{}}
	seen := map[string]bool{}
	for _, p := range products {
		c.products = append(c.products, p.Clone())
		key := strings.ToLower(strings.TrimSpace(p.Color))
		if key != "" && !seen[key] {
			seen[key] = true
			c.colors = append(c.colors, p.Color)
		}
	}
	return c
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Colors lists the distinct product colors in catalog order.
func (c *Catalog) Colors() []string {
	return slices.Clone(c.colors)
}

// SearchOptions overrides filters that would otherwise be derived from the query.
type SearchOptions struct {
	Ceiling *extract.Ceiling
	Tags    []string
}

// Search returns at most MaxResults products matching the query, cheapest
// first. Ceiling and tags fall back to what the query mentions; color is
// always taken from the query and resolved against the catalog's colors.
// An empty result is a normal outcome.
func (c *Catalog) Search(query string, opts SearchOptions) []model.Product {
	ceiling := extract.PriceCeiling(query)
	if opts.Ceiling != nil {
		ceiling = *opts.Ceiling
	}
	tags := opts.Tags
	if len(tags) == 0 {
		tags = extract.Tags(query)
	}
	color := extract.Color(query, c.colors)

	var hits []model.Product
	for _, p := range c.products {
		if !ceiling.Allows(p.Price) {
			continue
		}
		if len(tags) > 0 && !p.HasTags(tags) {
			continue
		}
		if color != "" && !strings.EqualFold(p.Color, color) {
			continue
		}
		hits = append(hits, p.Clone())
	}

	slices.SortStableFunc(hits, func(a, b model.Product) int {
		return cmp.Compare(a.Price, b.Price)
	})
	if len(hits) > MaxResults {
		hits = hits[:MaxResults]
	}
	if hits == nil {
		hits = []model.Product{}
	}
	return hits
}
