package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
	ErrOrderNotFound         = errors.New("order not found")
	ErrItemNotFound          = errors.New("order item not found")
	ErrNotOwner              = errors.New("not owner")
	ErrInvalidTransition     = errors.New("invalid transition")
	ErrRefundWindowExpired   = errors.New("refund window expired")
)

type OrderNotFoundError struct {
	OrderID kernel.UUID
}

func NewOrderNotFoundError(orderID kernel.UUID) *OrderNotFoundError {
	return &OrderNotFoundError{OrderID: orderID}
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrOrderNotFound, e.OrderID)
}

func (e *OrderNotFoundError) Unwrap() []error {
	return []error{ErrOrderNotFound, errs.ErrObjectNotFound}
}

type ItemNotFoundError struct {
	OrderID kernel.UUID
	ItemID  kernel.UUID
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("%s: item %s in order %s", ErrItemNotFound, e.ItemID, e.OrderID)
}

func (e *ItemNotFoundError) Unwrap() []error {
	return []error{ErrItemNotFound, errs.ErrObjectNotFound}
}

// NotOwnerError is returned when a seller touches another seller's item or a
// buyer touches another buyer's order.
type NotOwnerError struct {
	Actor    Actor
	Resource string
	ID       kernel.UUID
}

func (e *NotOwnerError) Error() string {
	return fmt.Sprintf("%s: %s may not modify %s %s", ErrNotOwner, e.Actor, e.Resource, e.ID)
}

func (e *NotOwnerError) Unwrap() error {
	return ErrNotOwner
}

type InvalidTransitionError struct {
	From      ItemStatus
	Attempted ItemStatus
	Actor     Role
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move item from %s to %s", ErrInvalidTransition, e.Actor, e.From, e.Attempted)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

type RefundWindowExpiredError struct {
	ItemID   kernel.UUID
	Deadline time.Time
}

func (e *RefundWindowExpiredError) Error() string {
	return fmt.Sprintf("%s: item %s, deadline was %s", ErrRefundWindowExpired, e.ItemID, e.Deadline.Format(time.RFC3339))
}

func (e *RefundWindowExpiredError) Unwrap() error {
	return ErrRefundWindowExpired
}
