// Package ports defines the contracts between the fulfillment domain and its infrastructure.
package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Items are stored with their order; Update replaces the item rows of the order.
type OrderRepository interface {
	// Add persists a new order aggregate with all of its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Returns OrderNotFoundError if the order does not exist.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and holds a row lock on it until the
	// surrounding transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListIDsWithItemsShippedBefore returns the ids of orders that have at least
	// one item in shipped state whose shippedAt is at or before cutoff.
	ListIDsWithItemsShippedBefore(ctx context.Context, cutoff time.Time) ([]kernel.UUID, error)
}
