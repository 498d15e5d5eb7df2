package catalog

// Catalog is an immutable, indexed product list. It is safe for concurrent
// use because nothing mutates it after New.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// New indexes products by ID. A later duplicate ID replaces the earlier one
// in the index but keeps the first position in listing order.
func New(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for _, p := range products {
		if i, ok := c.byID[p.ID]; ok {
			c.products[i] = p
			continue
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c
}

func (c *Catalog) ProductByID(id string) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// All returns a copy of every product in listing order.
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// Brands lists distinct brands in first-seen order.
func (c *Catalog) Brands() []string {
	return c.distinct(func(p Product) string { return p.Brand })
}

// Categories lists distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	return c.distinct(func(p Product) string { return p.Category })
}

func (c *Catalog) distinct(key func(Product) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.products {
		k := key(p)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

func (c *Catalog) ByBrand(brand string) []Product {
	return c.filter(func(p Product) bool { return p.Brand == brand })
}

func (c *Catalog) ByCategory(category string) []Product {
	return c.filter(func(p Product) bool { return p.Category == category })
}

// BrandBySlug resolves a brand page slug such as "happy-raithu".
func (c *Catalog) BrandBySlug(slug string) (string, bool) {
	brand, ok := brandSlugs[slug]
	return brand, ok
}

// Featured returns discounted products.
func (c *Catalog) Featured() []Product {
	return c.filter(Product.HasDiscount)
}

// Related returns other products in the same category, at most limit of them
// (limit <= 0 means no limit).
func (c *Catalog) Related(id string, limit int) []Product {
	p, ok := c.ProductByID(id)
	if !ok {
		return nil
	}
	out := c.filter(func(o Product) bool { return o.ID != id && o.Category == p.Category })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (c *Catalog) filter(keep func(Product) bool) []Product {
	var out []Product
	for _, p := range c.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
