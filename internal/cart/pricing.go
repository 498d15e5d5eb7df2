package cart

import "karesave-backend/pkg/money"

// Pricing holds the delivery rule shared by the cart view, checkout and the
// order writer.
type Pricing struct {
	FreeShippingThreshold money.Money
	DeliveryFee           money.Money
}

// DefaultPricing is free delivery from ₹500, otherwise a flat ₹50.
var DefaultPricing = Pricing{
	FreeShippingThreshold: money.Rupees(500),
	DeliveryFee:           money.Rupees(50),
}

// FeeFor returns the delivery fee for a subtotal. An empty cart ships nothing
// and pays nothing.
func (p Pricing) FeeFor(subtotal money.Money) money.Money {
	if subtotal <= 0 || subtotal >= p.FreeShippingThreshold {
		return 0
	}
	return p.DeliveryFee
}

// RemainingForFreeShipping is how much more must be added to qualify.
func (p Pricing) RemainingForFreeShipping(subtotal money.Money) money.Money {
	if subtotal >= p.FreeShippingThreshold {
		return 0
	}
	return p.FreeShippingThreshold - subtotal
}
