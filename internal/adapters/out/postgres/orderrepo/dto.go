// Package orderrepo maps order aggregates to the orders and order_items tables.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Status is denormalized for listing and counting;
// the aggregate re-derives it from the items on load.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BuyerID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status          string          `gorm:"type:varchar(32);not null;index"`
	ShippingAddress AddressDTO      `gorm:"embedded;embeddedPrefix:shipping_"`
	ItemsTotal      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ShippingFee     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Total           decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Payment         PaymentDTO      `gorm:"embedded;embeddedPrefix:payment_"`
	RefundWindow    int64           `gorm:"not null"`
	RefundDeadline  *time.Time
	CreatedAt       time.Time      `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt       time.Time      `gorm:"not null;autoUpdateTime:false"`
	Items           []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type AddressDTO struct {
	Street      string `gorm:"type:varchar(255);not null"`
	City        string `gorm:"type:varchar(128);not null"`
	Country     string `gorm:"type:varchar(128);not null"`
	PostalCode  string `gorm:"type:varchar(32)"`
	PhoneNumber string `gorm:"type:varchar(32)"`
}

type PaymentDTO struct {
	Method        string `gorm:"type:varchar(16);not null"`
	Paid          bool   `gorm:"not null"`
	PaidAt        *time.Time
	TransactionID string `gorm:"type:varchar(128)"`
}

// OrderItemDTO is one order_items row. Position keeps checkout order.
type OrderItemDTO struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	Position       int               `gorm:"not null"`
	ProductID      uuid.UUID         `gorm:"type:uuid;not null"`
	SellerID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	Name           string            `gorm:"type:varchar(255);not null"`
	UnitPrice      decimal.Decimal   `gorm:"type:numeric(14,2);not null"`
	Quantity       int               `gorm:"not null"`
	Attributes     map[string]string `gorm:"serializer:json"`
	Status         string            `gorm:"type:varchar(32);not null;index:idx_order_items_status_shipped,priority:1"`
	Courier        string            `gorm:"type:varchar(128)"`
	TrackingNumber string            `gorm:"type:varchar(128)"`

	ShippedAt         *time.Time `gorm:"index:idx_order_items_status_shipped,priority:2"`
	DeliveredAt       *time.Time
	RefundRequestedAt *time.Time
	RefundedAt        *time.Time
	RejectedAt        *time.Time

	CancelledBy        string `gorm:"type:varchar(16)"`
	CancelledAt        *time.Time
	CancelReason       string
	CancelRefundAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	RefundReason string
	RefundAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	id := aggregate.ID().Bytes()
	address := aggregate.ShippingAddress()
	pricing := aggregate.Pricing()
	payment := aggregate.Payment()

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for pos, it := range aggregate.Items() {
		items = append(items, itemFromDomain(id, pos, it))
	}

	return OrderDTO{
		ID:      id,
		BuyerID: aggregate.BuyerID().Bytes(),
		Status:  aggregate.Status().String(),
		ShippingAddress: AddressDTO{
			Street:      address.Street(),
			City:        address.City(),
			Country:     address.Country(),
			PostalCode:  address.PostalCode(),
			PhoneNumber: address.PhoneNumber(),
		},
		ItemsTotal:  pricing.ItemsTotal().Amount(),
		ShippingFee: pricing.ShippingFee().Amount(),
		Total:       pricing.Total().Amount(),
		Payment: PaymentDTO{
			Method:        string(payment.Method()),
			Paid:          payment.IsPaid(),
			PaidAt:        utc(payment.PaidAt()),
			TransactionID: payment.TransactionID(),
		},
		RefundWindow:   int64(aggregate.RefundWindow()),
		RefundDeadline: utc(aggregate.RefundDeadline()),
		CreatedAt:      aggregate.CreatedAt().UTC(),
		UpdatedAt:      aggregate.UpdatedAt().UTC(),
		Items:          items,
	}
}

func itemFromDomain(orderID uuid.UUID, pos int, it order.Item) OrderItemDTO {
	dto := OrderItemDTO{
		ID:                it.ID.Bytes(),
		OrderID:           orderID,
		Position:          pos,
		ProductID:         it.ProductID.Bytes(),
		SellerID:          it.SellerID.Bytes(),
		Name:              it.Name,
		UnitPrice:         it.UnitPrice.Amount(),
		Quantity:          it.Quantity,
		Attributes:        it.Attributes,
		Status:            it.Status.String(),
		Courier:           it.Courier,
		TrackingNumber:    it.TrackingNumber,
		ShippedAt:         utc(it.ShippedAt),
		DeliveredAt:       utc(it.DeliveredAt),
		RefundRequestedAt: utc(it.RefundRequestedAt),
		RefundedAt:        utc(it.RefundedAt),
		RejectedAt:        utc(it.RejectedAt),
		RefundReason:      it.RefundReason,
		RefundAmount:      it.RefundAmount.Amount(),
	}
	if c := it.Cancellation; c != nil {
		at := c.At.UTC()
		dto.CancelledBy = c.By.String()
		dto.CancelledAt = &at
		dto.CancelReason = c.Reason
		dto.CancelRefundAmount = c.RefundAmount.Amount()
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	buyerID, err := kernel.UUIDFromUUID(dto.BuyerID)
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress(
		dto.ShippingAddress.Street,
		dto.ShippingAddress.City,
		dto.ShippingAddress.Country,
		dto.ShippingAddress.PostalCode,
		dto.ShippingAddress.PhoneNumber,
	)
	if err != nil {
		return nil, err
	}

	pricing, err := restorePricing(dto)
	if err != nil {
		return nil, err
	}

	method, err := order.ParsePaymentMethod(dto.Payment.Method)
	if err != nil {
		return nil, err
	}
	payment, err := order.RestorePayment(method, dto.Payment.Paid, dto.Payment.PaidAt, dto.Payment.TransactionID)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		it, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, it)
	}

	return order.RestoreOrder(order.State{
		ID:              id,
		BuyerID:         buyerID,
		Items:           items,
		ShippingAddress: address,
		Pricing:         pricing,
		Payment:         payment,
		RefundWindow:    time.Duration(dto.RefundWindow),
		RefundDeadline:  dto.RefundDeadline,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
	})
}

func restorePricing(dto OrderDTO) (order.Pricing, error) {
	itemsTotal, err := kernel.NewMoney(dto.ItemsTotal)
	if err != nil {
		return order.Pricing{}, err
	}
	shippingFee, err := kernel.NewMoney(dto.ShippingFee)
	if err != nil {
		return order.Pricing{}, err
	}
	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return order.Pricing{}, err
	}
	return order.RestorePricing(itemsTotal, shippingFee, total)
}

func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	id, err := kernel.UUIDFromUUID(dto.ID)
	if err != nil {
		return order.Item{}, err
	}
	productID, err := kernel.UUIDFromUUID(dto.ProductID)
	if err != nil {
		return order.Item{}, err
	}
	sellerID, err := kernel.UUIDFromUUID(dto.SellerID)
	if err != nil {
		return order.Item{}, err
	}
	status, err := order.ParseItemStatus(dto.Status)
	if err != nil {
		return order.Item{}, err
	}
	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.Item{}, err
	}
	refundAmount, err := kernel.NewMoney(dto.RefundAmount)
	if err != nil {
		return order.Item{}, err
	}

	it := order.Item{
		ID:                id,
		ProductID:         productID,
		SellerID:          sellerID,
		Name:              dto.Name,
		UnitPrice:         unitPrice,
		Quantity:          dto.Quantity,
		Attributes:        dto.Attributes,
		Status:            status,
		Courier:           dto.Courier,
		TrackingNumber:    dto.TrackingNumber,
		ShippedAt:         dto.ShippedAt,
		DeliveredAt:       dto.DeliveredAt,
		RefundRequestedAt: dto.RefundRequestedAt,
		RefundedAt:        dto.RefundedAt,
		RejectedAt:        dto.RejectedAt,
		RefundReason:      dto.RefundReason,
		RefundAmount:      refundAmount,
	}

	if dto.CancelledAt != nil {
		by, roleErr := order.ParseRole(dto.CancelledBy)
		if roleErr != nil {
			return order.Item{}, roleErr
		}
		amount, amountErr := kernel.NewMoney(dto.CancelRefundAmount)
		if amountErr != nil {
			return order.Item{}, amountErr
		}
		it.Cancellation = &order.Cancellation{
			By:           by,
			At:           *dto.CancelledAt,
			Reason:       dto.CancelReason,
			RefundAmount: amount,
		}
	}

	return it, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
