package commands

import (
	"context"
	"sync/atomic"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/metrics"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// SweepResult reports what one auto-deliver sweep did.
type SweepResult struct {
	Scanned   int // candidate orders found
	Updated   int // orders that changed
	Delivered int // items moved to delivered
	Failed    int // orders that could not be processed
}

// AutoDeliverCommandHandler is the Fulfillment Clock: it marks items delivered
// once they have been shipped for longer than the auto-deliver window.
//
// Every order is handled in its own unit of work, so a sweep never holds a lock
// on more than one order per worker, and a failing order is logged and skipped
// without affecting the others. Running the same sweep twice delivers nothing new.
type AutoDeliverCommandHandler struct {
	uowFactory  OrderUoWFactory
	after       time.Duration
	concurrency int
	metrics     *metrics.Fulfillment
	log         *logrus.Entry
}

func NewAutoDeliverCommandHandler(
	uowFactory OrderUoWFactory,
	after time.Duration,
	concurrency int,
	m *metrics.Fulfillment,
	logger *logrus.Entry,
) AutoDeliverCommandHandler {
	if concurrency < 1 {
		concurrency = 1
	}
	return AutoDeliverCommandHandler{
		uowFactory:  uowFactory,
		after:       after,
		concurrency: concurrency,
		metrics:     m,
		log:         logger.WithField("component", "fulfillment-clock"),
	}
}

// Handle runs one sweep. Per-order failures are counted in the result; only a
// failure to list candidates or a cancelled context is returned as an error.
func (h *AutoDeliverCommandHandler) Handle(ctx context.Context, cmd AutoDeliverCommand) (SweepResult, error) {
	if err := cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	now := cmd.Now()
	ids, err := h.uowFactory.Create().OrderRepository().ListIDsWithItemsShippedBefore(ctx, now.Add(-h.after))
	if err != nil {
		h.log.WithError(err).Error("listing shipped orders failed")
		return SweepResult{}, err
	}

	var updated, delivered, failed atomic.Int64
	g := new(errgroup.Group)
	g.SetLimit(h.concurrency)

	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			n, sweepErr := h.sweepOrder(ctx, id, now)
			if sweepErr != nil {
				failed.Add(1)
				h.log.WithError(sweepErr).WithField("order_id", id.String()).Warn("auto-deliver skipped order")
				return nil
			}
			if n > 0 {
				updated.Add(1)
				delivered.Add(int64(n))
			}
			return nil
		})
	}
	_ = g.Wait()

	result := SweepResult{
		Scanned:   len(ids),
		Updated:   int(updated.Load()),
		Delivered: int(delivered.Load()),
		Failed:    int(failed.Load()),
	}
	h.metrics.SweepFinished(result.Delivered, result.Failed)

	entry := h.log.
		WithField("scanned", result.Scanned).
		WithField("updated", result.Updated).
		WithField("delivered", result.Delivered).
		WithField("failed", result.Failed)
	if result.Scanned > 0 {
		entry.Info("auto-deliver sweep finished")
	} else {
		entry.Debug("auto-deliver sweep finished")
	}

	return result, ctx.Err()
}

func (h *AutoDeliverCommandHandler) sweepOrder(ctx context.Context, id kernel.UUID, now time.Time) (int, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, id)
	if err != nil {
		return 0, err
	}

	delivered := o.AutoDeliver(now, h.after)
	if delivered == 0 {
		return 0, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return delivered, nil
}
