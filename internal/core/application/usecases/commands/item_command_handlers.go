package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/metrics"
	"fulfillment/internal/pkg/errs"

	"github.com/sirupsen/logrus"
)

// itemTransition runs one item change inside its own unit of work. The order row
// is locked for the whole read-modify-write, so two concurrent changes to the same
// order are serialized and neither is lost.
type itemTransition struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	clock      ports.Clock
	metrics    *metrics.Fulfillment
	log        *logrus.Entry
}

func newItemTransition(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
	m *metrics.Fulfillment,
	logger *logrus.Entry,
	operation string,
) itemTransition {
	return itemTransition{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
		metrics:    m,
		log:        logger.WithField("component", "order-items").WithField("operation", operation),
	}
}

func (t itemTransition) run(
	ctx context.Context,
	ref itemRef,
	change func(o *order.Order, now time.Time) error,
) (*order.Order, order.Item, error) {
	log := t.log.
		WithField("order_id", ref.OrderID().String()).
		WithField("item_id", ref.ItemID().String()).
		WithField("actor", ref.Actor().String())

	updated, err := t.apply(ctx, ref, change)
	if err != nil {
		if isBusinessError(err) {
			log.WithError(err).Info("item change refused")
		} else {
			log.WithError(err).Error("item change failed")
		}
		return nil, order.Item{}, err
	}

	it, err := updated.Item(ref.ItemID())
	if err != nil {
		return nil, order.Item{}, err
	}
	t.metrics.ItemTransitioned(it.Status.String())
	log.WithField("item_status", it.Status.String()).
		WithField("order_status", updated.Status().String()).
		Info("item updated")

	return updated, it, nil
}

func (t itemTransition) apply(
	ctx context.Context,
	ref itemRef,
	change func(o *order.Order, now time.Time) error,
) (*order.Order, error) {
	uow := t.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, ref.OrderID())
	if err != nil {
		return nil, err
	}

	if err = change(o, t.clock.Now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func (t itemTransition) tell(ctx context.Context, notes []ports.Notification) {
	notify(ctx, t.log, t.notifier, notes...)
}

func isBusinessError(err error) bool {
	return errors.Is(err, order.ErrInvalidTransition) ||
		errors.Is(err, order.ErrNotOwner) ||
		errors.Is(err, order.ErrRefundWindowExpired) ||
		errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsInvalid)
}

// ProcessItemCommandHandler moves a pending item to processing.
type ProcessItemCommandHandler struct {
	itemTransition
}

func NewProcessItemCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
	m *metrics.Fulfillment,
	logger *logrus.Entry,
) ProcessItemCommandHandler {
	return ProcessItemCommandHandler{newItemTransition(uowFactory, notifier, clock, m, logger, "process")}
}

func (h *ProcessItemCommandHandler) Handle(ctx context.Context, cmd ProcessItemCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, _, err := h.run(ctx, cmd.itemRef, func(o *order.Order, now time.Time) error {
		return o.StartProcessing(cmd.Actor(), cmd.ItemID(), now)
	})
	return o, err
}

// ShipItemCommandHandler ships a processing item and tells the buyer.
type ShipItemCommandHandler struct {
	itemTransition
}

func NewShipItemCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
	m *metrics.Fulfillment,
	logger *logrus.Entry,
) ShipItemCommandHandler {
	return ShipItemCommandHandler{newItemTransition(uowFactory, notifier, clock, m, logger, "ship")}
}

func (h *ShipItemCommandHandler) Handle(ctx context.Context, cmd ShipItemCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, it, err := h.run(ctx, cmd.itemRef, func(o *order.Order, now time.Time) error {
		return o.Ship(cmd.Actor(), cmd.ItemID(), cmd.Shipment(), now)
	})
	if err != nil {
		return nil, err
	}

	h.tell(ctx, shippedNotes(o, it))
	return o, nil
}

// CancelItemCommandHandler cancels an item and tells the other party.
type CancelItemCommandHandler struct {
	itemTransition
}

func NewCancelItemCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
	m *metrics.Fulfillment,
	logger *logrus.Entry,
) CancelItemCommandHandler {
	return CancelItemCommandHandler{newItemTransition(uowFactory, notifier, clock, m, logger, "cancel")}
}

func (h *CancelItemCommandHandler) Handle(ctx context.Context, cmd CancelItemCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, it, err := h.run(ctx, cmd.itemRef, func(o *order.Order, now time.Time) error {
		return o.Cancel(cmd.Actor(), cmd.ItemID(), cmd.Reason(), now)
	})
	if err != nil {
		return nil, err
	}

	h.tell(ctx, cancelledNotes(o, it, cmd.Actor().Role))
	return o, nil
}

// ConfirmDeliveryCommandHandler records the buyer's receipt of an item.
type ConfirmDeliveryCommandHandler struct {
	itemTransition
}

func NewConfirmDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
	m *metrics.Fulfillment,
	logger *logrus.Entry,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{newItemTransition(uowFactory, notifier, clock, m, logger, "deliver")}
}

func (h *ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, _, err := h.run(ctx, cmd.itemRef, func(o *order.Order, now time.Time) error {
		return o.ConfirmDelivery(cmd.Actor(), cmd.ItemID(), now)
	})
	return o, err
}

// RequestRefundCommandHandler opens a refund request and tells both parties.
type RequestRefundCommandHandler struct {
	itemTransition
}

func NewRequestRefundCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
	m *metrics.Fulfillment,
	logger *logrus.Entry,
) RequestRefundCommandHandler {
	return RequestRefundCommandHandler{newItemTransition(uowFactory, notifier, clock, m, logger, "request-refund")}
}

func (h *RequestRefundCommandHandler) Handle(ctx context.Context, cmd RequestRefundCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, it, err := h.run(ctx, cmd.itemRef, func(o *order.Order, now time.Time) error {
		return o.RequestRefund(cmd.Actor(), cmd.ItemID(), cmd.Reason(), now)
	})
	if err != nil {
		return nil, err
	}

	h.tell(ctx, refundRequestedNotes(o, it))
	return o, nil
}

// ResolveRefundCommandHandler approves or rejects a refund request and tells the buyer.
type ResolveRefundCommandHandler struct {
	itemTransition
}

func NewResolveRefundCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
	m *metrics.Fulfillment,
	logger *logrus.Entry,
) ResolveRefundCommandHandler {
	return ResolveRefundCommandHandler{newItemTransition(uowFactory, notifier, clock, m, logger, "resolve-refund")}
}

func (h *ResolveRefundCommandHandler) Handle(ctx context.Context, cmd ResolveRefundCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, it, err := h.run(ctx, cmd.itemRef, func(o *order.Order, now time.Time) error {
		return o.ResolveRefund(cmd.Actor(), cmd.ItemID(), cmd.Approve(), now)
	})
	if err != nil {
		return nil, err
	}

	h.tell(ctx, refundResolvedNotes(o, it))
	return o, nil
}
