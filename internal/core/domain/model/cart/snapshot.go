package cart

import (
	"maps"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stock"
)

// SnapshotItem is a cart line frozen together with the catalog data it was priced at.
type SnapshotItem struct {
	productID  kernel.UUID
	sellerID   kernel.UUID
	name       string
	unitPrice  kernel.Money
	quantity   int
	attributes map[string]string
}

func (i SnapshotItem) ProductID() kernel.UUID  { return i.productID }
func (i SnapshotItem) SellerID() kernel.UUID   { return i.sellerID }
func (i SnapshotItem) Name() string            { return i.name }
func (i SnapshotItem) UnitPrice() kernel.Money { return i.unitPrice }
func (i SnapshotItem) Quantity() int           { return i.quantity }

func (i SnapshotItem) Attributes() map[string]string {
	return maps.Clone(i.attributes)
}

// Subtotal is unit price times quantity.
func (i SnapshotItem) Subtotal() kernel.Money {
	return i.unitPrice.Times(i.quantity)
}

// Snapshot is the immutable input of a checkout.
type Snapshot struct {
	buyerID    kernel.UUID
	items      []SnapshotItem
	capturedAt time.Time
}

// Capture freezes c against catalog, which holds the ledger entries keyed by product id.
// A line whose product is not in catalog fails with ProductUnavailableError.
func Capture(c *Cart, catalog map[kernel.UUID]*stock.Item, now time.Time) (Snapshot, error) {
	if err := c.Validate(); err != nil {
		return Snapshot{}, err
	}
	if c.IsEmpty() {
		return Snapshot{}, ErrCartIsEmpty
	}

	items := make([]SnapshotItem, 0, len(c.lines))
	for _, l := range c.lines {
		entry, ok := catalog[l.productID]
		if !ok || entry == nil {
			return Snapshot{}, stock.NewProductUnavailableError(l.productID)
		}
		items = append(items, SnapshotItem{
			productID:  l.productID,
			sellerID:   entry.SellerID(),
			name:       entry.Name(),
			unitPrice:  entry.UnitPrice(),
			quantity:   l.quantity,
			attributes: maps.Clone(l.attributes),
		})
	}

	return Snapshot{
		buyerID:    c.buyerID,
		items:      items,
		capturedAt: now.UTC(),
	}, nil
}

func (s Snapshot) BuyerID() kernel.UUID  { return s.buyerID }
func (s Snapshot) CapturedAt() time.Time { return s.capturedAt }

func (s Snapshot) Items() []SnapshotItem {
	out := make([]SnapshotItem, len(s.items))
	copy(out, s.items)
	return out
}

// ItemsTotal is the sum of unit price times quantity over all lines.
func (s Snapshot) ItemsTotal() kernel.Money {
	total := kernel.ZeroMoney()
	for _, i := range s.items {
		total = total.Add(i.Subtotal())
	}
	return total
}

// Demand sums requested quantities per product.
func (s Snapshot) Demand() map[kernel.UUID]int {
	demand := make(map[kernel.UUID]int, len(s.items))
	for _, i := range s.items {
		demand[i.productID] += i.quantity
	}
	return demand
}

// SellerIDs returns each seller once, in first-seen order.
func (s Snapshot) SellerIDs() []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(s.items))
	ids := make([]kernel.UUID, 0, len(s.items))
	for _, i := range s.items {
		if _, ok := seen[i.sellerID]; ok {
			continue
		}
		seen[i.sellerID] = struct{}{}
		ids = append(ids, i.sellerID)
	}
	return ids
}
