package services

import (
	"slices"
	"strings"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stock"
)

// Allocation is the quantity to take from one product's stock.
type Allocation struct {
	ProductID kernel.UUID
	Quantity  int
}

// StockAllocator reserves stock for a checkout.
//
// Business rules:
//   - demand is summed per product, so two lines of the same product compete for the same units
//   - every product is checked before any entry is debited
//   - a shortfall on any product fails the whole allocation and leaves every entry untouched
//   - all shortfalls are reported together, in cart order
type StockAllocator struct{}

func NewStockAllocator() StockAllocator {
	return StockAllocator{}
}

// Allocate debits ledger for snapshot and returns the debits applied, ordered by
// product id so callers persist them in the same order they locked the rows.
//
// Returns ProductUnavailableError when a product has no ledger entry and
// InsufficientStockError when one or more products cannot cover their demand.
func (a StockAllocator) Allocate(
	snapshot cart.Snapshot,
	ledger map[kernel.UUID]*stock.Item,
) ([]Allocation, error) {
	demand := snapshot.Demand()
	order := a.productsInCartOrder(snapshot)

	var violations []stock.Violation
	for _, productID := range order {
		entry, ok := ledger[productID]
		if !ok || entry == nil {
			return nil, stock.NewProductUnavailableError(productID)
		}
		if err := entry.Validate(); err != nil {
			return nil, err
		}
		if requested := demand[productID]; !entry.CanCover(requested) {
			violations = append(violations, stock.Violation{
				ProductID: productID,
				Name:      entry.Name(),
				Available: entry.Available(),
				Requested: requested,
			})
		}
	}
	if len(violations) > 0 {
		return nil, &stock.InsufficientStockError{Violations: violations}
	}

	plan := make([]Allocation, 0, len(order))
	for _, productID := range order {
		plan = append(plan, Allocation{ProductID: productID, Quantity: demand[productID]})
	}
	slices.SortFunc(plan, func(x, y Allocation) int {
		return strings.Compare(x.ProductID.String(), y.ProductID.String())
	})

	for _, alloc := range plan {
		if err := ledger[alloc.ProductID].Debit(alloc.Quantity); err != nil {
			return nil, err
		}
	}

	return plan, nil
}

func (a StockAllocator) productsInCartOrder(snapshot cart.Snapshot) []kernel.UUID {
	items := snapshot.Items()
	seen := make(map[kernel.UUID]struct{}, len(items))
	ids := make([]kernel.UUID, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID()]; ok {
			continue
		}
		seen[it.ProductID()] = struct{}{}
		ids = append(ids, it.ProductID())
	}
	return ids
}
