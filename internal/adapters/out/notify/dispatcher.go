package notify

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/metrics"

	"github.com/sirupsen/logrus"
)

// Dispatcher puts a deadline on every delivery, fills in the expiry and counts
// the outcome. It hands transport errors back unchanged; the command handlers
// log them and carry on.
//
// Neither broker client takes a context, so the deadline is enforced here: a
// delivery still running when it passes is reported as failed and left to finish
// in the background.
type Dispatcher struct {
	transport ports.Notifier
	timeout   time.Duration
	clock     ports.Clock
	metrics   *metrics.Fulfillment
	log       *logrus.Entry
}

func NewDispatcher(
	transport ports.Notifier,
	timeout time.Duration,
	clock ports.Clock,
	m *metrics.Fulfillment,
	logger *logrus.Entry,
) *Dispatcher {
	return &Dispatcher{
		transport: transport,
		timeout:   timeout,
		clock:     clock,
		metrics:   m,
		log:       logger.WithField("component", "notifier"),
	}
}

func (d *Dispatcher) Notify(ctx context.Context, n ports.Notification) (kernel.UUID, error) {
	if n.ExpiresAt.IsZero() {
		n.ExpiresAt = d.clock.Now().AddDate(0, 1, 0)
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	id, err := d.send(ctx, n)
	if err != nil {
		d.metrics.NotificationFinished(metrics.NotificationFailed)
		return kernel.UUID{}, err
	}

	d.metrics.NotificationFinished(metrics.NotificationSent)
	d.log.WithField("notification_id", id.String()).
		WithField("user_id", n.UserID.String()).
		WithField("subject", n.Subject).
		Debug("notification sent")
	return id, nil
}

type delivery struct {
	id  kernel.UUID
	err error
}

func (d *Dispatcher) send(ctx context.Context, n ports.Notification) (kernel.UUID, error) {
	done := make(chan delivery, 1)
	go func() {
		id, err := d.transport.Notify(ctx, n)
		done <- delivery{id: id, err: err}
	}()

	select {
	case r := <-done:
		return r.id, r.err
	case <-ctx.Done():
		return kernel.UUID{}, ctx.Err()
	}
}
