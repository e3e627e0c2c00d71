package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderReader loads an order aggregate without locking it.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// GetOrderQueryHandler loads the aggregate and projects it for the viewer.
type GetOrderQueryHandler struct {
	orders OrderReader
}

func NewGetOrderQueryHandler(orders OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}

	return ViewFor(o, query.Viewer())
}

// ViewFor projects o for viewer: the buyer sees the whole order, a seller only the
// items they sell, administrators and the system everything. It fails with
// NotOwnerError when viewer may not see the order at all.
func ViewFor(o *order.Order, viewer order.Actor) (OrderView, error) {
	switch viewer.Role {
	case order.RoleBuyer:
		if !viewer.UserID.IsEqual(o.BuyerID()) {
			return OrderView{}, &order.NotOwnerError{Actor: viewer, Resource: "order", ID: o.ID()}
		}
		return newOrderView(o, o.Items()), nil
	case order.RoleSeller:
		items := o.ItemsForSeller(viewer.SellerID)
		if len(items) == 0 {
			return OrderView{}, &order.NotOwnerError{Actor: viewer, Resource: "order", ID: o.ID()}
		}
		return newOrderView(o, items), nil
	default:
		return newOrderView(o, o.Items()), nil
	}
}
