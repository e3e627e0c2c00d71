package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
)

// CartRepository stores the one open cart of every buyer.
type CartRepository interface {
	// Get returns the buyer's cart. A buyer without a cart gets an empty one.
	Get(ctx context.Context, buyerID kernel.UUID) (*cart.Cart, error)

	// Save replaces the buyer's cart lines.
	Save(ctx context.Context, c *cart.Cart) error

	// Delete removes the buyer's cart. Deleting a missing cart is not an error.
	Delete(ctx context.Context, buyerID kernel.UUID) error
}
