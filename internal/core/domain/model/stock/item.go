package stock

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrItemIsNotConstructed = errors.New("stock Item must be created via NewItem constructor")

// Item is a ledger entry for a single product.
type Item struct {
	productID kernel.UUID
	sellerID  kernel.UUID
	name      string
	unitPrice kernel.Money
	available int

	isConstructed bool
}

func NewItem(
	productID kernel.UUID,
	sellerID kernel.UUID,
	name string,
	unitPrice kernel.Money,
	available int,
) (*Item, error) {
	item := &Item{
		unitPrice:     unitPrice,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setSellerID(sellerID),
		item.setName(name),
		item.setAvailable(available),
	); err != nil {
		return nil, err
	}

	return item, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ProductID() kernel.UUID  { return i.productID }
func (i *Item) SellerID() kernel.UUID   { return i.sellerID }
func (i *Item) Name() string            { return i.name }
func (i *Item) UnitPrice() kernel.Money { return i.unitPrice }
func (i *Item) Available() int          { return i.available }

// CanCover reports whether qty units are available.
func (i *Item) CanCover(qty int) bool {
	return qty > 0 && i.available >= qty
}

// Debit removes qty units. A debit that would leave the entry negative fails
// with InsufficientStockError and leaves it untouched.
func (i *Item) Debit(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", qty, 1, "unbounded")
	}
	if !i.CanCover(qty) {
		return &InsufficientStockError{Violations: []Violation{i.violation(qty)}}
	}
	i.available -= qty
	return nil
}

func (i *Item) violation(requested int) Violation {
	return Violation{
		ProductID: i.productID,
		Name:      i.name,
		Available: i.available,
		Requested: requested,
	}
}

func (i *Item) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	i.productID = id
	return nil
}

func (i *Item) setSellerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("sellerId", err)
	}
	i.sellerID = id
	return nil
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *Item) setAvailable(available int) error {
	if available < 0 {
		return errs.NewValueIsOutOfRangeError("available", available, 0, "unbounded")
	}
	i.available = available
	return nil
}
