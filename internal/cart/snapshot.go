package cart

import (
	"karesave-backend/internal/catalog"
	"karesave-backend/pkg/money"
)

// Line is the stored form of a cart entry. The product is a weak reference
// resolved through the catalog.
type Line struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// LineView is a line joined with its product.
type LineView struct {
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal money.Money     `json:"line_total"`
	Savings   money.Money     `json:"savings"`
}

// Snapshot is an immutable view of the cart at one version.
type Snapshot struct {
	Version                  uint64      `json:"version"`
	Lines                    []LineView  `json:"lines"`
	ItemCount                int         `json:"item_count"`
	Subtotal                 money.Money `json:"subtotal"`
	Savings                  money.Money `json:"savings"`
	DeliveryFee              money.Money `json:"delivery_fee"`
	GrandTotal               money.Money `json:"grand_total"`
	RemainingForFreeShipping money.Money `json:"remaining_for_free_shipping"`
}

func (s Snapshot) Empty() bool {
	return len(s.Lines) == 0
}

// Items returns the lines in stored form.
func (s Snapshot) Items() []Line {
	items := make([]Line, 0, len(s.Lines))
	for _, l := range s.Lines {
		items = append(items, Line{ProductID: l.Product.ID, Quantity: l.Quantity})
	}
	return items
}

// Change describes the outcome of a mutation.
type Change struct {
	Line    Line `json:"line"`
	Removed bool `json:"removed,omitempty"`
	Clamped bool `json:"clamped,omitempty"`
	// Notice is ErrQuantityClamped when Clamped is set.
	Notice error `json:"-"`
}

func buildSnapshot(version uint64, lines []Line, lookup Lookup, pricing Pricing) Snapshot {
	snap := Snapshot{Version: version, Lines: make([]LineView, 0, len(lines))}
	for _, l := range lines {
		p, ok := lookup.ProductByID(l.ProductID)
		if !ok {
			continue
		}
		view := LineView{
			Product:   p,
			Quantity:  l.Quantity,
			LineTotal: p.Price.Times(l.Quantity),
			Savings:   p.UnitSavings().Times(l.Quantity),
		}
		snap.Lines = append(snap.Lines, view)
		snap.ItemCount += l.Quantity
		snap.Subtotal += view.LineTotal
		snap.Savings += view.Savings
	}
	snap.DeliveryFee = pricing.FeeFor(snap.Subtotal)
	snap.GrandTotal = snap.Subtotal + snap.DeliveryFee
	snap.RemainingForFreeShipping = pricing.RemainingForFreeShipping(snap.Subtotal)
	return snap
}
