package stock

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	ErrProductUnavailable = errors.New("product unavailable")
	ErrInsufficientStock  = errors.New("insufficient stock")
)

// ProductUnavailableError is returned when a cart references a product that is
// no longer in the catalog.
type ProductUnavailableError struct {
	ProductID kernel.UUID
}

func NewProductUnavailableError(productID kernel.UUID) *ProductUnavailableError {
	return &ProductUnavailableError{ProductID: productID}
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("%s: %s", ErrProductUnavailable, e.ProductID)
}

func (e *ProductUnavailableError) Unwrap() error {
	return ErrProductUnavailable
}

// Violation describes one cart line that the ledger cannot cover.
type Violation struct {
	ProductID kernel.UUID
	Name      string
	Available int
	Requested int
}

// InsufficientStockError carries every shortfall of a checkout, not only the first.
// There is one Violation per product: Requested is the product's total demand
// across all cart lines, not the quantity of a single line.
type InsufficientStockError struct {
	Violations []Violation
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s (%s): requested %d, available %d",
			v.Name, v.ProductID, v.Requested, v.Available))
	}
	return fmt.Sprintf("%s: %s", ErrInsufficientStock, strings.Join(parts, "; "))
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
