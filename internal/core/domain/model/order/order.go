package order

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Terms are the marketplace settings frozen onto an order at checkout.
type Terms struct {
	ShippingFee  kernel.Money
	RefundWindow time.Duration
}

// Order is the aggregate root of a checkout.
//
// Invariants:
//   - items keep checkout order and are addressed by id
//   - pricing.total == pricing.itemsTotal + pricing.shippingFee and never changes
//   - status == Aggregate(item states) after every mutation
//   - refundDeadline is set once, the first time status becomes delivered
type Order struct {
	id              kernel.UUID
	buyerID         kernel.UUID
	items           []Item
	shippingAddress kernel.Address
	pricing         Pricing
	payment         Payment
	status          Status
	refundWindow    time.Duration
	refundDeadline  *time.Time
	createdAt       time.Time
	updatedAt       time.Time

	isConstructed bool
}

// NewOrder places an order for snapshot. Every item starts pending.
func NewOrder(
	id kernel.UUID,
	snapshot cart.Snapshot,
	address kernel.Address,
	payment Payment,
	terms Terms,
	now time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBuyerID(snapshot.BuyerID()),
		o.setShippingAddress(address),
		o.setPayment(payment),
		o.setRefundWindow(terms.RefundWindow),
	); err != nil {
		return nil, err
	}

	lines := snapshot.Items()
	if len(lines) == 0 {
		return nil, cart.ErrCartIsEmpty
	}

	o.items = make([]Item, 0, len(lines))
	for _, line := range lines {
		o.items = append(o.items, Item{
			ID:         kernel.NewUUID(),
			ProductID:  line.ProductID(),
			SellerID:   line.SellerID(),
			Name:       line.Name(),
			UnitPrice:  line.UnitPrice(),
			Quantity:   line.Quantity(),
			Attributes: line.Attributes(),
			Status:     ItemPending,
		})
	}
	o.pricing = NewPricing(snapshot.ItemsTotal(), terms.ShippingFee)
	o.recompute(now)

	return o, nil
}

// State is the persisted shape of an order, used to rebuild it with RestoreOrder.
type State struct {
	ID              kernel.UUID
	BuyerID         kernel.UUID
	Items           []Item
	ShippingAddress kernel.Address
	Pricing         Pricing
	Payment         Payment
	RefundWindow    time.Duration
	RefundDeadline  *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RestoreOrder rebuilds a stored order. The status is re-derived from the items;
// a stored status column is never trusted.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		pricing:        s.Pricing,
		refundDeadline: cloneTime(s.RefundDeadline),
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setBuyerID(s.BuyerID),
		o.setShippingAddress(s.ShippingAddress),
		o.setPayment(s.Payment),
		o.setRefundWindow(s.RefundWindow),
	); err != nil {
		return nil, err
	}

	if len(s.Items) == 0 {
		return nil, errs.NewValueIsRequiredError("order items")
	}
	if _, err := RestorePricing(s.Pricing.ItemsTotal(), s.Pricing.ShippingFee(), s.Pricing.Total()); err != nil {
		return nil, err
	}

	seen := make(map[kernel.UUID]struct{}, len(s.Items))
	o.items = make([]Item, 0, len(s.Items))
	for _, it := range s.Items {
		if err := it.validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[it.ID]; dup {
			return nil, errs.NewValueIsInvalidError("duplicate item id " + it.ID.String())
		}
		seen[it.ID] = struct{}{}
		o.items = append(o.items, it.clone())
	}
	o.status = Aggregate(o.itemStates())

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                 { return o.id }
func (o *Order) BuyerID() kernel.UUID            { return o.buyerID }
func (o *Order) ShippingAddress() kernel.Address { return o.shippingAddress }
func (o *Order) Pricing() Pricing                { return o.pricing }
func (o *Order) Payment() Payment                { return o.payment }
func (o *Order) Status() Status                  { return o.status }
func (o *Order) RefundWindow() time.Duration     { return o.refundWindow }
func (o *Order) RefundDeadline() *time.Time      { return cloneTime(o.refundDeadline) }
func (o *Order) CreatedAt() time.Time            { return o.createdAt }
func (o *Order) UpdatedAt() time.Time            { return o.updatedAt }

// Items returns copies of all items in checkout order.
func (o *Order) Items() []Item {
	out := make([]Item, 0, len(o.items))
	for _, it := range o.items {
		out = append(out, it.clone())
	}
	return out
}

// ItemsForSeller returns copies of the items sold by sellerID.
func (o *Order) ItemsForSeller(sellerID kernel.UUID) []Item {
	out := make([]Item, 0)
	for _, it := range o.items {
		if it.SellerID.IsEqual(sellerID) {
			out = append(out, it.clone())
		}
	}
	return out
}

func (o *Order) Item(itemID kernel.UUID) (Item, error) {
	idx, err := o.indexOf(itemID)
	if err != nil {
		return Item{}, err
	}
	return o.items[idx].clone(), nil
}

// SellerIDs returns each seller on the order once, in checkout order.
func (o *Order) SellerIDs() []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(o.items))
	ids := make([]kernel.UUID, 0, len(o.items))
	for _, it := range o.items {
		if _, ok := seen[it.SellerID]; ok {
			continue
		}
		seen[it.SellerID] = struct{}{}
		ids = append(ids, it.SellerID)
	}
	return ids
}

// StartProcessing: seller, pending → processing.
func (o *Order) StartProcessing(actor Actor, itemID kernel.UUID, now time.Time) error {
	return o.mutate(actor, itemID, ItemProcessing, now, nil)
}

// Ship moves a processing item to shipped, or to forPickUp for pickup shipments.
func (o *Order) Ship(actor Actor, itemID kernel.UUID, shipment Shipment, now time.Time) error {
	if err := shipment.Validate(); err != nil {
		return err
	}
	return o.mutate(actor, itemID, shipment.target(), now, func(it *Item) error {
		it.Courier = shipment.Courier()
		it.TrackingNumber = shipment.TrackingNumber()
		it.ShippedAt = &now
		return nil
	})
}

// Cancel is open to the buyer and the item's seller while the item is pending or processing.
func (o *Order) Cancel(actor Actor, itemID kernel.UUID, reason string, now time.Time) error {
	return o.mutate(actor, itemID, ItemCancelled, now, func(it *Item) error {
		refund := kernel.ZeroMoney()
		if o.payment.IsPaid() {
			refund = it.Subtotal()
		}
		it.Cancellation = &Cancellation{
			By:           actor.Role,
			At:           now,
			Reason:       strings.TrimSpace(reason),
			RefundAmount: refund,
		}
		return nil
	})
}

// ConfirmDelivery: buyer, shipped or forPickUp → delivered.
func (o *Order) ConfirmDelivery(actor Actor, itemID kernel.UUID, now time.Time) error {
	return o.mutate(actor, itemID, ItemDelivered, now, func(it *Item) error {
		it.DeliveredAt = &now
		return nil
	})
}

// RequestRefund: buyer, delivered → requestRefund, only until the refund deadline.
func (o *Order) RequestRefund(actor Actor, itemID kernel.UUID, reason string, now time.Time) error {
	return o.mutate(actor, itemID, ItemRequestRefund, now, func(it *Item) error {
		deadline := o.refundDeadlineFor(*it)
		if now.After(deadline) {
			return &RefundWindowExpiredError{ItemID: it.ID, Deadline: deadline}
		}
		it.RefundRequestedAt = &now
		it.RefundReason = strings.TrimSpace(reason)
		return nil
	})
}

// ResolveRefund lets the seller approve (refunded) or reject (rejected) a refund request.
func (o *Order) ResolveRefund(actor Actor, itemID kernel.UUID, approve bool, now time.Time) error {
	target := ItemRejected
	if approve {
		target = ItemRefunded
	}
	return o.mutate(actor, itemID, target, now, func(it *Item) error {
		if approve {
			it.RefundedAt = &now
			it.RefundAmount = it.Subtotal()
			return nil
		}
		it.RejectedAt = &now
		return nil
	})
}

// AutoDeliver delivers every shipped item whose shippedAt is at least `after` before now,
// the same way a buyer confirmation would. It returns the number of items delivered;
// a second call at the same instant delivers nothing.
func (o *Order) AutoDeliver(now time.Time, after time.Duration) int {
	delivered := 0
	for i := range o.items {
		it := &o.items[i]
		if it.Status != ItemShipped || it.ShippedAt == nil {
			continue
		}
		if now.Sub(*it.ShippedAt) < after || !CanTransition(RoleSystem, it.Status, ItemDelivered) {
			continue
		}
		deliveredAt := now
		it.Status = ItemDelivered
		it.DeliveredAt = &deliveredAt
		delivered++
	}
	if delivered > 0 {
		o.recompute(now)
	}
	return delivered
}

// mutate is the only path that changes an item. Checks run before anything is
// written, and apply works on a copy, so a failed call leaves the order untouched.
func (o *Order) mutate(actor Actor, itemID kernel.UUID, to ItemStatus, now time.Time, apply func(*Item) error) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	idx, err := o.indexOf(itemID)
	if err != nil {
		return err
	}
	current := o.items[idx]
	if err = o.authorize(actor, current); err != nil {
		return err
	}
	if !CanTransition(actor.Role, current.Status, to) {
		return &InvalidTransitionError{From: current.Status, Attempted: to, Actor: actor.Role}
	}

	next := current.clone()
	if apply != nil {
		if err = apply(&next); err != nil {
			return err
		}
	}
	next.Status = to
	o.items[idx] = next
	o.recompute(now)

	return nil
}

// recompute is the single place where the aggregate status changes.
func (o *Order) recompute(now time.Time) {
	o.status = Aggregate(o.itemStates())
	if o.status == StatusDelivered && o.refundDeadline == nil {
		deadline := now.Add(o.refundWindow)
		o.refundDeadline = &deadline
	}
	o.updatedAt = now
}

func (o *Order) authorize(actor Actor, it Item) error {
	switch actor.Role {
	case RoleBuyer:
		if !actor.UserID.IsEqual(o.buyerID) {
			return &NotOwnerError{Actor: actor, Resource: "order", ID: o.id}
		}
	case RoleSeller:
		if !actor.SellerID.IsEqual(it.SellerID) {
			return &NotOwnerError{Actor: actor, Resource: "item", ID: it.ID}
		}
	case RoleUnknown, RoleAdmin, RoleSystem:
	}
	return nil
}

func (o *Order) refundDeadlineFor(it Item) time.Time {
	if o.refundDeadline != nil {
		return *o.refundDeadline
	}
	if it.DeliveredAt != nil {
		return it.DeliveredAt.Add(o.refundWindow)
	}
	return time.Time{}
}

func (o *Order) indexOf(itemID kernel.UUID) (int, error) {
	for i := range o.items {
		if o.items[i].ID.IsEqual(itemID) {
			return i, nil
		}
	}
	return -1, &ItemNotFoundError{OrderID: o.id, ItemID: itemID}
}

func (o *Order) itemStates() []ItemStatus {
	states := make([]ItemStatus, len(o.items))
	for i, it := range o.items {
		states[i] = it.Status
	}
	return states
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	o.id = id
	return nil
}

func (o *Order) setBuyerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("buyerId", err)
	}
	o.buyerID = id
	return nil
}

func (o *Order) setShippingAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.shippingAddress = address
	return nil
}

func (o *Order) setPayment(payment Payment) error {
	if err := payment.Validate(); err != nil {
		return err
	}
	o.payment = payment
	return nil
}

func (o *Order) setRefundWindow(window time.Duration) error {
	if window < 0 {
		return errs.NewValueIsOutOfRangeError("refund window", window, 0, "unbounded")
	}
	o.refundWindow = window
	return nil
}
