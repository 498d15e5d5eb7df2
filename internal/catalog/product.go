package catalog

import (
	"fmt"

	"karesave-backend/pkg/money"
)

// Product is a read-only catalog entry.
type Product struct {
	ID             string            `json:"id" bson:"product_id"`
	Name           string            `json:"name" bson:"name"`
	Description    string            `json:"description" bson:"description"`
	Price          money.Money       `json:"price" bson:"price"`
	OriginalPrice  money.Money       `json:"original_price,omitempty" bson:"original_price,omitempty"`
	Brand          string            `json:"brand" bson:"brand"`
	Category       string            `json:"category" bson:"category"`
	Image          string            `json:"image" bson:"image"`
	Stock          int               `json:"stock" bson:"stock"`
	IsEcoFriendly  bool              `json:"is_eco_friendly" bson:"is_eco_friendly"`
	Sustainability string            `json:"sustainability" bson:"sustainability"`
	Features       []string          `json:"features" bson:"features"`
	Specifications map[string]string `json:"specifications,omitempty" bson:"specifications,omitempty"`
}

// HasDiscount reports whether the product carries a strike-through price.
func (p Product) HasDiscount() bool {
	return p.OriginalPrice > p.Price
}

// UnitSavings is the per-unit discount, zero without a strike-through price.
func (p Product) UnitSavings() money.Money {
	if !p.HasDiscount() {
		return 0
	}
	return p.OriginalPrice - p.Price
}

func (p Product) PercentOff() int {
	return money.PercentOff(p.OriginalPrice, p.Price)
}

// Availability is the stock label shown on product pages.
func (p Product) Availability() string {
	switch {
	case p.Stock <= 0:
		return "Out of Stock"
	case p.Stock > 10:
		return "In Stock"
	default:
		return fmt.Sprintf("Only %d left", p.Stock)
	}
}
