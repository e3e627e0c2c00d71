package stockrepo

import (
	"context"
	"fmt"

	"fulfillment/internal/adapters/out/postgres/pgtx"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stock"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockRepository implements StockRepository using GORM.
type GormStockRepository struct {
	db *gorm.DB
}

func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

func (r *GormStockRepository) Add(ctx context.Context, item *stock.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	return pgtx.Classify("insert stock item", r.db.WithContext(ctx).Create(&dto).Error)
}

// GetForUpdate locks the rows in id order so that concurrent checkouts touching
// the same products always acquire their locks in the same order.
func (r *GormStockRepository) GetForUpdate(
	ctx context.Context,
	ids []kernel.UUID,
) (map[kernel.UUID]*stock.Item, error) {
	if len(ids) == 0 {
		return map[kernel.UUID]*stock.Item{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []StockItemDTO
	err := pgtx.ForUpdate(r.db.WithContext(ctx)).
		Where("id IN ?", raw).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgtx.Classify("lock stock", err)
	}

	ledger := make(map[kernel.UUID]*stock.Item, len(dtos))
	for _, dto := range dtos {
		item, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		ledger[item.ProductID()] = item
	}
	return ledger, nil
}

// Debit is a guarded decrement: it only applies while available >= qty.
func (r *GormStockRepository) Debit(ctx context.Context, productID kernel.UUID, qty int) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if qty <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", qty, 1, "unbounded")
	}

	result := r.db.WithContext(ctx).
		Model(&StockItemDTO{}).
		Where("id = ? AND available >= ?", productID.Bytes(), qty).
		UpdateColumn("available", gorm.Expr("available - ?", qty))
	if result.Error != nil {
		return pgtx.Classify("debit stock", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewTransactionAbortError("debit stock",
			fmt.Errorf("product %s no longer has %d available", productID, qty))
	}
	return nil
}
