package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

var ErrListBuyerOrdersQueryIsNotConstructed = errors.New(
	"ListBuyerOrdersQuery must be created via NewListBuyerOrdersQuery constructor",
)

// ListBuyerOrdersQuery pages through a buyer's orders, newest first.
type ListBuyerOrdersQuery struct { //nolint:recvcheck //using for validation
	buyerID kernel.UUID
	limit   int
	guard   guard.ConstructorGuard
}

// NewListBuyerOrdersQuery creates the query. A zero limit means DefaultListLimit.
func NewListBuyerOrdersQuery(buyerID kernel.UUID, limit int) (ListBuyerOrdersQuery, error) {
	if err := buyerID.Validate(); err != nil {
		return ListBuyerOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("buyerId", err)
	}
	limit, err := listLimit(limit)
	if err != nil {
		return ListBuyerOrdersQuery{}, err
	}
	return ListBuyerOrdersQuery{buyerID: buyerID, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListBuyerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListBuyerOrdersQueryIsNotConstructed)
}

func (q ListBuyerOrdersQuery) BuyerID() kernel.UUID { return q.buyerID }
func (q ListBuyerOrdersQuery) Limit() int           { return q.limit }

// OrderSummary is one row of a buyer's order list.
type OrderSummary struct {
	ID        kernel.UUID
	Status    order.Status
	ItemCount int
	Total     kernel.Money
	CreatedAt time.Time
}

func listLimit(limit int) (int, error) {
	switch {
	case limit == 0:
		return DefaultListLimit, nil
	case limit < 0 || limit > MaxListLimit:
		return 0, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	default:
		return limit, nil
	}
}
