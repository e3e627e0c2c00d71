package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stock"
)

// StockRepository is the stock ledger. Only the checkout transaction debits it.
type StockRepository interface {
	// Add registers a product in the ledger.
	Add(ctx context.Context, item *stock.Item) error

	// GetForUpdate loads the ledger entries for ids, locking them in id order.
	// Products without an entry are absent from the result.
	GetForUpdate(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*stock.Item, error)

	// Debit decrements the available quantity of a product by qty only if enough
	// is available. A lost race is reported as a TransactionAbortError.
	Debit(ctx context.Context, productID kernel.UUID, qty int) error
}
