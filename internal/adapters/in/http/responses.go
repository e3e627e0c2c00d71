package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stock"
)

// Error is the body of every failed response.
type Error struct {
	Code       int         `json:"code"`
	Message    string      `json:"message"`
	Retryable  bool        `json:"retryable,omitempty"`
	Violations []Violation `json:"violations,omitempty"`
}

type Violation struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
}

type Address struct {
	Street      string `json:"street"`
	City        string `json:"city"`
	Country     string `json:"country"`
	PostalCode  string `json:"postalCode,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type Order struct {
	ID              string     `json:"id"`
	BuyerID         string     `json:"buyerId"`
	Status          string     `json:"status"`
	ShippingAddress Address    `json:"shippingAddress"`
	ItemsTotal      string     `json:"itemsTotal"`
	ShippingFee     string     `json:"shippingFee"`
	Total           string     `json:"total"`
	PaymentMethod   string     `json:"paymentMethod"`
	Paid            bool       `json:"paid"`
	PaidAt          *time.Time `json:"paidAt,omitempty"`
	TransactionID   string     `json:"transactionId,omitempty"`
	RefundDeadline  *time.Time `json:"refundDeadline,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	Items           []Item     `json:"items"`
}

type Item struct {
	ID             string            `json:"id"`
	ProductID      string            `json:"productId"`
	SellerID       string            `json:"sellerId"`
	Name           string            `json:"name"`
	UnitPrice      string            `json:"unitPrice"`
	Quantity       int               `json:"quantity"`
	Subtotal       string            `json:"subtotal"`
	Attributes     map[string]string `json:"attributes,omitempty"`
	Status         string            `json:"status"`
	Courier        string            `json:"courier,omitempty"`
	TrackingNumber string            `json:"trackingNumber,omitempty"`
	ShippedAt      *time.Time        `json:"shippedAt,omitempty"`
	DeliveredAt    *time.Time        `json:"deliveredAt,omitempty"`
	CancelledBy    string            `json:"cancelledBy,omitempty"`
	CancelledAt    *time.Time        `json:"cancelledAt,omitempty"`
	CancelReason   string            `json:"cancelReason,omitempty"`
	RefundReason   string            `json:"refundReason,omitempty"`
	RefundAmount   string            `json:"refundAmount,omitempty"`
}

type OrderSummary struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	ItemCount int       `json:"itemCount"`
	Total     string    `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}

type SellerOrder struct {
	ID        string       `json:"id"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	Subtotal  string       `json:"subtotal"`
	Items     []SellerItem `json:"items"`
}

type SellerItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Status    string `json:"status"`
}

func newOrder(v queries.OrderView) Order {
	out := Order{
		ID:      v.ID.String(),
		BuyerID: v.BuyerID.String(),
		Status:  v.Status.String(),
		ShippingAddress: Address{
			Street:      v.ShippingAddress.Street(),
			City:        v.ShippingAddress.City(),
			Country:     v.ShippingAddress.Country(),
			PostalCode:  v.ShippingAddress.PostalCode(),
			PhoneNumber: v.ShippingAddress.PhoneNumber(),
		},
		ItemsTotal:     v.ItemsTotal.String(),
		ShippingFee:    v.ShippingFee.String(),
		Total:          v.Total.String(),
		PaymentMethod:  string(v.PaymentMethod),
		Paid:           v.Paid,
		PaidAt:         v.PaidAt,
		TransactionID:  v.TransactionID,
		RefundDeadline: v.RefundDeadline,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
		Items:          make([]Item, 0, len(v.Items)),
	}
	for _, it := range v.Items {
		out.Items = append(out.Items, Item{
			ID:             it.ID.String(),
			ProductID:      it.ProductID.String(),
			SellerID:       it.SellerID.String(),
			Name:           it.Name,
			UnitPrice:      it.UnitPrice.String(),
			Quantity:       it.Quantity,
			Subtotal:       it.Subtotal.String(),
			Attributes:     it.Attributes,
			Status:         it.Status.String(),
			Courier:        it.Courier,
			TrackingNumber: it.TrackingNumber,
			ShippedAt:      it.ShippedAt,
			DeliveredAt:    it.DeliveredAt,
			CancelledBy:    it.CancelledBy,
			CancelledAt:    it.CancelledAt,
			CancelReason:   it.CancelReason,
			RefundReason:   it.RefundReason,
			RefundAmount:   optionalMoney(it.RefundAmount),
		})
	}
	return out
}

func newOrderSummaries(in []queries.OrderSummary) []OrderSummary {
	out := make([]OrderSummary, 0, len(in))
	for _, s := range in {
		out = append(out, OrderSummary{
			ID:        s.ID.String(),
			Status:    s.Status.String(),
			ItemCount: s.ItemCount,
			Total:     s.Total.String(),
			CreatedAt: s.CreatedAt,
		})
	}
	return out
}

func newSellerOrders(in []queries.SellerOrderSummary) []SellerOrder {
	out := make([]SellerOrder, 0, len(in))
	for _, s := range in {
		o := SellerOrder{
			ID:        s.ID.String(),
			Status:    s.Status.String(),
			CreatedAt: s.CreatedAt,
			Subtotal:  s.Subtotal.String(),
			Items:     make([]SellerItem, 0, len(s.Items)),
		}
		for _, it := range s.Items {
			o.Items = append(o.Items, SellerItem{
				ID:        it.ID.String(),
				Name:      it.Name,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice.String(),
				Status:    it.Status.String(),
			})
		}
		out = append(out, o)
	}
	return out
}

func newStatusCounts(counts queries.StatusCounts) map[string]int {
	out := make(map[string]int, len(counts))
	for status, n := range counts {
		out[status.String()] = n
	}
	return out
}

func newViolations(in []stock.Violation) []Violation {
	out := make([]Violation, 0, len(in))
	for _, v := range in {
		out = append(out, Violation{
			ProductID: v.ProductID.String(),
			Name:      v.Name,
			Available: v.Available,
			Requested: v.Requested,
		})
	}
	return out
}

func optionalMoney(m kernel.Money) string {
	if m.IsZero() {
		return ""
	}
	return m.String()
}
