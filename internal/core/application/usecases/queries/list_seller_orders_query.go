package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrListSellerOrdersQueryIsNotConstructed = errors.New(
	"ListSellerOrdersQuery must be created via NewListSellerOrdersQuery constructor",
)

// ListSellerOrdersQuery pages through the orders that contain a seller's items,
// newest first.
type ListSellerOrdersQuery struct { //nolint:recvcheck //using for validation
	sellerID kernel.UUID
	limit    int
	guard    guard.ConstructorGuard
}

func NewListSellerOrdersQuery(sellerID kernel.UUID, limit int) (ListSellerOrdersQuery, error) {
	if err := sellerID.Validate(); err != nil {
		return ListSellerOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("sellerId", err)
	}
	limit, err := listLimit(limit)
	if err != nil {
		return ListSellerOrdersQuery{}, err
	}
	return ListSellerOrdersQuery{sellerID: sellerID, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListSellerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListSellerOrdersQueryIsNotConstructed)
}

func (q ListSellerOrdersQuery) SellerID() kernel.UUID { return q.sellerID }
func (q ListSellerOrdersQuery) Limit() int            { return q.limit }

// SellerOrderSummary is one order as its seller sees it: only their own items,
// and a subtotal over those items.
type SellerOrderSummary struct {
	ID        kernel.UUID
	Status    order.Status
	CreatedAt time.Time
	Subtotal  kernel.Money
	Items     []SellerItemSummary
}

type SellerItemSummary struct {
	ID        kernel.UUID
	Name      string
	Quantity  int
	UnitPrice kernel.Money
	Status    order.ItemStatus
}
