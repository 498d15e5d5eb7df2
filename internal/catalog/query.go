package catalog

import (
	"sort"
	"strings"
)

const (
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortName      = "name"
	SortBrand     = "brand"

	// All disables the brand or category filter.
	All = "all"
)

// Query is the shop page filter. Zero value lists everything sorted by name.
type Query struct {
	Search   string `form:"search"`
	Brand    string `form:"brand"`
	Category string `form:"category"`
	Sort     string `form:"sort"`
}

// Find applies search, brand and category filters and then a stable sort.
func (c *Catalog) Find(q Query) []Product {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := c.filter(func(p Product) bool {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			return false
		}
		if !matchesFacet(q.Brand, p.Brand) {
			return false
		}
		return matchesFacet(q.Category, p.Category)
	})

	var less func(a, b Product) bool
	switch q.Sort {
	case SortPriceLow:
		less = func(a, b Product) bool { return a.Price < b.Price }
	case SortPriceHigh:
		less = func(a, b Product) bool { return a.Price > b.Price }
	case SortBrand:
		less = func(a, b Product) bool { return a.Brand < b.Brand }
	default:
		less = func(a, b Product) bool { return a.Name < b.Name }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func matchesFacet(want, got string) bool {
	return want == "" || strings.EqualFold(want, All) || want == got
}
