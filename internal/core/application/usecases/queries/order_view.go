package queries

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderView is the read model of one order as a particular viewer may see it.
type OrderView struct {
	ID              kernel.UUID
	BuyerID         kernel.UUID
	Status          order.Status
	ShippingAddress kernel.Address
	ItemsTotal      kernel.Money
	ShippingFee     kernel.Money
	Total           kernel.Money
	PaymentMethod   order.PaymentMethod
	Paid            bool
	PaidAt          *time.Time
	TransactionID   string
	RefundDeadline  *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Items           []ItemView
}

type ItemView struct {
	ID             kernel.UUID
	ProductID      kernel.UUID
	SellerID       kernel.UUID
	Name           string
	UnitPrice      kernel.Money
	Quantity       int
	Subtotal       kernel.Money
	Attributes     map[string]string
	Status         order.ItemStatus
	Courier        string
	TrackingNumber string
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	CancelledBy    string
	CancelledAt    *time.Time
	CancelReason   string
	RefundReason   string
	RefundAmount   kernel.Money
}

func newOrderView(o *order.Order, items []order.Item) OrderView {
	pricing := o.Pricing()
	payment := o.Payment()

	view := OrderView{
		ID:              o.ID(),
		BuyerID:         o.BuyerID(),
		Status:          o.Status(),
		ShippingAddress: o.ShippingAddress(),
		ItemsTotal:      pricing.ItemsTotal(),
		ShippingFee:     pricing.ShippingFee(),
		Total:           pricing.Total(),
		PaymentMethod:   payment.Method(),
		Paid:            payment.IsPaid(),
		PaidAt:          payment.PaidAt(),
		TransactionID:   payment.TransactionID(),
		RefundDeadline:  o.RefundDeadline(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		Items:           make([]ItemView, 0, len(items)),
	}
	for _, it := range items {
		view.Items = append(view.Items, newItemView(it))
	}
	return view
}

func newItemView(it order.Item) ItemView {
	v := ItemView{
		ID:             it.ID,
		ProductID:      it.ProductID,
		SellerID:       it.SellerID,
		Name:           it.Name,
		UnitPrice:      it.UnitPrice,
		Quantity:       it.Quantity,
		Subtotal:       it.Subtotal(),
		Attributes:     it.Attributes,
		Status:         it.Status,
		Courier:        it.Courier,
		TrackingNumber: it.TrackingNumber,
		ShippedAt:      it.ShippedAt,
		DeliveredAt:    it.DeliveredAt,
		RefundReason:   it.RefundReason,
		RefundAmount:   it.RefundAmount,
	}
	if c := it.Cancellation; c != nil {
		at := c.At
		v.CancelledBy = c.By.String()
		v.CancelledAt = &at
		v.CancelReason = c.Reason
		v.RefundAmount = c.RefundAmount
	}
	return v
}
