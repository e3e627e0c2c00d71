package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stock"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/metrics"
	"fulfillment/internal/pkg/errs"

	"github.com/sirupsen/logrus"
)

// CheckoutCommandHandler runs the checkout transaction: it reserves stock for every
// cart line and creates the order, or changes nothing at all.
//
// Steps, inside one unit of work:
//  1. load the buyer's cart
//  2. lock the stock rows of every product in it, in product id order
//  3. capture the cart snapshot and allocate stock for all lines
//  4. debit each product with a guarded decrement
//  5. add the order with every item pending and delete the cart
//  6. commit, then tell every seller in the order about it
//
// A shortfall on any line fails the whole checkout with InsufficientStockError
// listing every short product. The handler does not retry: transaction aborts are
// returned as TransactionAbortError for the caller to retry.
type CheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
	allocator  services.StockAllocator
	terms      order.Terms
	notifier   ports.Notifier
	clock      ports.Clock
	metrics    *metrics.Fulfillment
	log        *logrus.Entry
}

func NewCheckoutCommandHandler(
	uowFactory CheckoutUoWFactory,
	terms order.Terms,
	notifier ports.Notifier,
	clock ports.Clock,
	m *metrics.Fulfillment,
	logger *logrus.Entry,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		allocator:  services.NewStockAllocator(),
		terms:      terms,
		notifier:   notifier,
		clock:      clock,
		metrics:    m,
		log:        logger.WithField("component", "checkout"),
	}
}

// Handle places the order and returns it.
func (h *CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (*order.Order, error) {
	started := time.Now()
	placed, err := h.checkout(ctx, cmd)
	result := checkoutResult(err)
	h.metrics.CheckoutFinished(result, time.Since(started))

	log := h.log.WithField("buyer_id", cmd.BuyerID().String())
	switch result {
	case metrics.ResultCompleted:
		log.WithField("order_id", placed.ID().String()).
			WithField("items", len(placed.Items())).
			WithField("total", placed.Pricing().Total().String()).
			Info("order placed")
	case metrics.ResultRejected:
		log.WithError(err).Info("checkout rejected")
	case metrics.ResultAborted:
		log.WithError(err).Warn("checkout aborted")
	default:
		log.WithError(err).Error("checkout failed")
	}
	if err != nil {
		return nil, err
	}

	notify(ctx, log, h.notifier, newOrderNotes(placed)...)
	return placed, nil
}

func (h *CheckoutCommandHandler) checkout(ctx context.Context, cmd CheckoutCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	payment, err := order.NewPayment(cmd.PaymentMethod(), cmd.TransactionID(), now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	basket, err := uow.CartRepository().Get(ctx, cmd.BuyerID())
	if err != nil {
		return nil, err
	}
	if basket.IsEmpty() {
		return nil, cart.ErrCartIsEmpty
	}

	stockRepo := uow.StockRepository()
	ledger, err := stockRepo.GetForUpdate(ctx, basket.ProductIDs())
	if err != nil {
		return nil, err
	}

	snapshot, err := cart.Capture(basket, ledger, now)
	if err != nil {
		return nil, err
	}

	plan, err := h.allocator.Allocate(snapshot, ledger)
	if err != nil {
		return nil, err
	}
	for _, alloc := range plan {
		if err = stockRepo.Debit(ctx, alloc.ProductID, alloc.Quantity); err != nil {
			return nil, err
		}
	}

	placed, err := order.NewOrder(kernel.NewUUID(), snapshot, cmd.Address(), payment, h.terms, now)
	if err != nil {
		return nil, err
	}
	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}
	if err = uow.CartRepository().Delete(ctx, cmd.BuyerID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return placed, nil
}

func checkoutResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultCompleted
	case errs.IsRetryable(err):
		return metrics.ResultAborted
	case errors.Is(err, stock.ErrInsufficientStock),
		errors.Is(err, stock.ErrProductUnavailable),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return metrics.ResultRejected
	default:
		return metrics.ResultFailed
	}
}
