package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// Notification is a message for one user about an order.
type Notification struct {
	UserID    kernel.UUID
	Role      order.Role
	Subject   string
	Message   string
	Link      string
	ExpiresAt time.Time
}

// Notifier delivers notifications. It is called only after the transaction that
// caused the notification has committed.
type Notifier interface {
	Notify(ctx context.Context, n Notification) (kernel.UUID, error)
}
