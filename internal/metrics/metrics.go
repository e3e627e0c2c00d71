// Package metrics exposes the fulfillment service's Prometheus collectors.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Checkout results.
const (
	ResultCompleted = "completed"
	ResultRejected  = "rejected"
	ResultAborted   = "aborted"
	ResultFailed    = "failed"
)

// Notification results.
const (
	NotificationSent   = "sent"
	NotificationFailed = "failed"
)

// Fulfillment holds the service's collectors. A nil *Fulfillment records nothing.
type Fulfillment struct {
	checkouts        *prometheus.CounterVec
	checkoutDuration prometheus.Histogram
	itemTransitions  *prometheus.CounterVec
	sweepRuns        prometheus.Counter
	autoDelivered    prometheus.Counter
	sweepFailures    prometheus.Counter
	notifications    *prometheus.CounterVec
}

// New registers the collectors with registerer, or with the default registerer
// when it is nil. Registering twice returns the collectors already registered.
func New(registerer prometheus.Registerer) *Fulfillment {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &Fulfillment{
		checkouts: register(registerer, "fulfillment_checkouts_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fulfillment_checkouts_total",
			Help: "Checkout transactions by result.",
		}, []string{"result"})),
		checkoutDuration: register(registerer, "fulfillment_checkout_duration_seconds",
			prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "fulfillment_checkout_duration_seconds",
				Help:    "Duration of checkout transactions in seconds.",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			})),
		itemTransitions: register(registerer, "fulfillment_item_transitions_total",
			prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "fulfillment_item_transitions_total",
				Help: "Order item state transitions by target state.",
			}, []string{"to"})),
		sweepRuns: register(registerer, "fulfillment_sweep_runs_total", prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fulfillment_sweep_runs_total",
			Help: "Completed auto-deliver sweeps.",
		})),
		autoDelivered: register(registerer, "fulfillment_auto_delivered_items_total",
			prometheus.NewCounter(prometheus.CounterOpts{
				Name: "fulfillment_auto_delivered_items_total",
				Help: "Items marked delivered by the auto-deliver sweep.",
			})),
		sweepFailures: register(registerer, "fulfillment_sweep_order_failures_total",
			prometheus.NewCounter(prometheus.CounterOpts{
				Name: "fulfillment_sweep_order_failures_total",
				Help: "Orders the auto-deliver sweep failed to process.",
			})),
		notifications: register(registerer, "fulfillment_notifications_total",
			prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "fulfillment_notifications_total",
				Help: "Notifications by result.",
			}, []string{"result"})),
	}
}

func register[T prometheus.Collector](registerer prometheus.Registerer, name string, collector T) T {
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(T)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", name))
			}
			return existing
		}
		panic(fmt.Sprintf("register %q: %v", name, err))
	}
	return collector
}

func (m *Fulfillment) CheckoutFinished(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.checkouts.WithLabelValues(result).Inc()
	m.checkoutDuration.Observe(elapsed.Seconds())
}

func (m *Fulfillment) ItemTransitioned(to string) {
	if m == nil {
		return
	}
	m.itemTransitions.WithLabelValues(to).Inc()
}

// SweepFinished records one sweep run and what it did.
func (m *Fulfillment) SweepFinished(delivered, failed int) {
	if m == nil {
		return
	}
	m.sweepRuns.Inc()
	m.autoDelivered.Add(float64(delivered))
	m.sweepFailures.Add(float64(failed))
}

func (m *Fulfillment) NotificationFinished(result string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(result).Inc()
}
