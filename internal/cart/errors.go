package cart

import "errors"

var (
	// ErrOutOfStock is returned when adding a product with no stock. The cart
	// is left unchanged.
	ErrOutOfStock = errors.New("product is out of stock")

	// ErrQuantityClamped is a notice, not a failure: the mutation applied but
	// the quantity was reduced to the available stock.
	ErrQuantityClamped = errors.New("quantity reduced to available stock")

	// ErrNotFound is returned when updating a product that is not in the cart.
	ErrNotFound = errors.New("product not in cart")

	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrUnknownProduct  = errors.New("unknown product")

	// ErrPersistenceWriteFailed wraps side-store failures. It is only logged.
	ErrPersistenceWriteFailed = errors.New("cart persistence write failed")
)
