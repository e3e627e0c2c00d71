package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListBuyerOrdersQueryHandler reads the orders table directly; the status column
// is kept in step with the items by every write.
type ListBuyerOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListBuyerOrdersQueryHandler(db *gorm.DB) ListBuyerOrdersQueryHandler {
	return ListBuyerOrdersQueryHandler{db: db}
}

func (h ListBuyerOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListBuyerOrdersQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	summaries := make([]OrderSummary, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			o.total,
			o.created_at,
			(SELECT COUNT(*) FROM order_items i WHERE i.order_id = o.id)
		FROM orders o
		WHERE o.buyer_id = ?
		ORDER BY o.created_at DESC, o.id
		LIMIT ?
	`, query.BuyerID().Bytes(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        uuid.UUID
			status    string
			total     decimal.Decimal
			createdAt time.Time
			itemCount int
		)
		if err = rows.Scan(&id, &status, &total, &createdAt, &itemCount); err != nil {
			return nil, err
		}

		summary, convErr := newOrderSummary(id, status, total, createdAt)
		if convErr != nil {
			return nil, convErr
		}
		summary.ItemCount = itemCount
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

func newOrderSummary(id uuid.UUID, status string, total decimal.Decimal, createdAt time.Time) (OrderSummary, error) {
	orderID, err := kernel.UUIDFromUUID(id)
	if err != nil {
		return OrderSummary{}, err
	}
	parsed, err := order.ParseStatus(status)
	if err != nil {
		return OrderSummary{}, err
	}
	amount, err := kernel.NewMoney(total)
	if err != nil {
		return OrderSummary{}, err
	}
	return OrderSummary{
		ID:        orderID,
		Status:    parsed,
		Total:     amount,
		CreatedAt: createdAt.UTC(),
	}, nil
}
