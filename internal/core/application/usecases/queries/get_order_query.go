// Package queries contains the read side: order views for buyers, sellers and
// administrators. Queries never change state and never take row locks.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery asks for one order as seen by viewer. A buyer sees the whole
// order, a seller only the items they sell, an administrator everything.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	viewer  order.Actor
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID, viewer order.Actor) (GetOrderQuery, error) {
	var errList []error
	if err := orderID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("orderId", err))
	}
	if err := viewer.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("viewer", err))
	}
	if err := errors.Join(errList...); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, viewer: viewer, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }
func (q GetOrderQuery) Viewer() order.Actor  { return q.viewer }
