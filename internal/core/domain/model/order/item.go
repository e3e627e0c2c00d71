package order

import (
	"errors"
	"maps"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Cancellation records who cancelled an item, when and why. RefundAmount is owed to
// the buyer only when the order had already been paid.
type Cancellation struct {
	By           Role
	At           time.Time
	Reason       string
	RefundAmount kernel.Money
}

// Item is one seller's line within an order. Order hands out copies, so changing
// a returned Item never affects the aggregate.
type Item struct {
	ID         kernel.UUID
	ProductID  kernel.UUID
	SellerID   kernel.UUID
	Name       string
	UnitPrice  kernel.Money
	Quantity   int
	Attributes map[string]string
	Status     ItemStatus

	Courier        string
	TrackingNumber string

	ShippedAt         *time.Time
	DeliveredAt       *time.Time
	RefundRequestedAt *time.Time
	RefundedAt        *time.Time
	RejectedAt        *time.Time

	Cancellation *Cancellation
	RefundReason string
	RefundAmount kernel.Money
}

func (i Item) Subtotal() kernel.Money {
	return i.UnitPrice.Times(i.Quantity)
}

func (i Item) validate() error {
	var errList []error
	if err := i.ID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("item id", err))
	}
	if err := i.ProductID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("productId", err))
	}
	if err := i.SellerID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("sellerId", err))
	}
	if strings.TrimSpace(i.Name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("item name"))
	}
	if i.Quantity <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("quantity", i.Quantity, 1, "unbounded"))
	}
	if err := i.Status.Validate(); err != nil {
		errList = append(errList, err)
	}
	return errors.Join(errList...)
}

func (i Item) clone() Item {
	c := i
	c.Attributes = maps.Clone(i.Attributes)
	c.ShippedAt = cloneTime(i.ShippedAt)
	c.DeliveredAt = cloneTime(i.DeliveredAt)
	c.RefundRequestedAt = cloneTime(i.RefundRequestedAt)
	c.RefundedAt = cloneTime(i.RefundedAt)
	c.RejectedAt = cloneTime(i.RejectedAt)
	if i.Cancellation != nil {
		cancellation := *i.Cancellation
		c.Cancellation = &cancellation
	}
	return c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
