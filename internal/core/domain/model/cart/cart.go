package cart

import (
	"errors"
	"maps"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart constructor")
	ErrCartIsEmpty          = errs.NewValueIsRequiredError("cart items")
)

// Line is one product entry in a cart.
type Line struct {
	productID  kernel.UUID
	quantity   int
	attributes map[string]string
}

func NewLine(productID kernel.UUID, quantity int, attributes map[string]string) (Line, error) {
	if err := productID.Validate(); err != nil {
		return Line{}, errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	if quantity <= 0 {
		return Line{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	return Line{
		productID:  productID,
		quantity:   quantity,
		attributes: maps.Clone(attributes),
	}, nil
}

func (l Line) ProductID() kernel.UUID { return l.productID }
func (l Line) Quantity() int          { return l.quantity }

func (l Line) Attributes() map[string]string {
	return maps.Clone(l.attributes)
}

// Cart is the mutable pre-checkout basket of one buyer.
type Cart struct {
	buyerID kernel.UUID
	lines   []Line

	isConstructed bool
}

func NewCart(buyerID kernel.UUID, lines ...Line) (*Cart, error) {
	if err := buyerID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("buyerId", err)
	}
	c := &Cart{
		buyerID:       buyerID,
		lines:         make([]Line, 0, len(lines)),
		isConstructed: true,
	}
	for _, l := range lines {
		if err := c.Add(l); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

// Add appends a line. Lines built with the zero Line value are rejected.
func (c *Cart) Add(l Line) error {
	if err := l.productID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	if l.quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", l.quantity, 1, "unbounded")
	}
	c.lines = append(c.lines, l)
	return nil
}

func (c *Cart) BuyerID() kernel.UUID { return c.buyerID }

func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// ProductIDs returns each referenced product once, in first-seen order.
func (c *Cart) ProductIDs() []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(c.lines))
	ids := make([]kernel.UUID, 0, len(c.lines))
	for _, l := range c.lines {
		if _, ok := seen[l.productID]; ok {
			continue
		}
		seen[l.productID] = struct{}{}
		ids = append(ids, l.productID)
	}
	return ids
}
