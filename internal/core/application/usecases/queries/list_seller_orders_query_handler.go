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

// ListSellerOrdersQueryHandler runs two reads: one page of order headers, then
// the seller's items of exactly those orders.
type ListSellerOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListSellerOrdersQueryHandler(db *gorm.DB) ListSellerOrdersQueryHandler {
	return ListSellerOrdersQueryHandler{db: db}
}

func (h ListSellerOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListSellerOrdersQuery,
) ([]SellerOrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	sellerID := query.SellerID().Bytes()

	summaries, ids, err := h.headers(db, sellerID, query.Limit())
	if err != nil || len(summaries) == 0 {
		return summaries, err
	}

	byOrder := make(map[uuid.UUID]*SellerOrderSummary, len(summaries))
	for i := range summaries {
		byOrder[ids[i]] = &summaries[i]
	}

	rows, err := db.Raw(`
		SELECT id, order_id, name, quantity, unit_price, status
		FROM order_items
		WHERE seller_id = ? AND order_id IN ?
		ORDER BY order_id, position
	`, sellerID, ids).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, orderID uuid.UUID
			name        string
			quantity    int
			unitPrice   decimal.Decimal
			status      string
		)
		if err = rows.Scan(&id, &orderID, &name, &quantity, &unitPrice, &status); err != nil {
			return nil, err
		}

		summary, ok := byOrder[orderID]
		if !ok {
			continue
		}
		item, convErr := newSellerItemSummary(id, name, quantity, unitPrice, status)
		if convErr != nil {
			return nil, convErr
		}
		summary.Items = append(summary.Items, item)
		summary.Subtotal = summary.Subtotal.Add(item.UnitPrice.Times(item.Quantity))
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

func (h ListSellerOrdersQueryHandler) headers(
	db *gorm.DB,
	sellerID uuid.UUID,
	limit int,
) ([]SellerOrderSummary, []uuid.UUID, error) {
	summaries := make([]SellerOrderSummary, 0)
	ids := make([]uuid.UUID, 0)

	rows, err := db.Raw(`
		SELECT o.id, o.status, o.created_at
		FROM orders o
		WHERE EXISTS (
			SELECT 1 FROM order_items i
			WHERE i.order_id = o.id AND i.seller_id = ?
		)
		ORDER BY o.created_at DESC, o.id
		LIMIT ?
	`, sellerID, limit).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        uuid.UUID
			status    string
			createdAt time.Time
		)
		if err = rows.Scan(&id, &status, &createdAt); err != nil {
			return nil, nil, err
		}

		orderID, convErr := kernel.UUIDFromUUID(id)
		if convErr != nil {
			return nil, nil, convErr
		}
		parsed, convErr := order.ParseStatus(status)
		if convErr != nil {
			return nil, nil, convErr
		}
		summaries = append(summaries, SellerOrderSummary{
			ID:        orderID,
			Status:    parsed,
			CreatedAt: createdAt.UTC(),
			Subtotal:  kernel.ZeroMoney(),
			Items:     make([]SellerItemSummary, 0),
		})
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	return summaries, ids, nil
}

func newSellerItemSummary(
	id uuid.UUID,
	name string,
	quantity int,
	unitPrice decimal.Decimal,
	status string,
) (SellerItemSummary, error) {
	itemID, err := kernel.UUIDFromUUID(id)
	if err != nil {
		return SellerItemSummary{}, err
	}
	price, err := kernel.NewMoney(unitPrice)
	if err != nil {
		return SellerItemSummary{}, err
	}
	parsed, err := order.ParseItemStatus(status)
	if err != nil {
		return SellerItemSummary{}, err
	}
	return SellerItemSummary{
		ID:        itemID,
		Name:      name,
		Quantity:  quantity,
		UnitPrice: price,
		Status:    parsed,
	}, nil
}
