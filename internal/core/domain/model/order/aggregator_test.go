package order_test

import (
	"math/rand/v2"
	"testing"

	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
)

func TestAggregate_PriorityRules(t *testing.T) {
	tests := []struct {
		name   string
		states []order.ItemStatus
		want   order.Status
	}{
		{"all delivered", []order.ItemStatus{order.ItemDelivered, order.ItemDelivered}, order.StatusDelivered},
		{"all cancelled", []order.ItemStatus{order.ItemCancelled, order.ItemCancelled}, order.StatusCancelled},
		{"all refunded", []order.ItemStatus{order.ItemRefunded}, order.StatusRefunded},
		{"all shipped", []order.ItemStatus{order.ItemShipped, order.ItemShipped}, order.StatusShipped},
		{"refunded beats delivered", []order.ItemStatus{order.ItemRefunded, order.ItemDelivered}, order.StatusPartiallyRefunded},
		{"delivered beats shipped", []order.ItemStatus{order.ItemDelivered, order.ItemShipped}, order.StatusPartiallyDelivered},
		{"shipped beats pending", []order.ItemStatus{order.ItemShipped, order.ItemPending}, order.StatusPartiallyShipped},
		{"shipped beats forPickUp", []order.ItemStatus{order.ItemShipped, order.ItemForPickUp}, order.StatusPartiallyShipped},
		{"forPickUp beats processing", []order.ItemStatus{order.ItemForPickUp, order.ItemProcessing}, order.StatusReadyForPickup},
		{"single forPickUp", []order.ItemStatus{order.ItemForPickUp}, order.StatusReadyForPickup},
		{"processing beats cancelled", []order.ItemStatus{order.ItemProcessing, order.ItemCancelled}, order.StatusPartialProcessing},
		{"single processing", []order.ItemStatus{order.ItemProcessing}, order.StatusPartialProcessing},
		{"cancelled and pending", []order.ItemStatus{order.ItemCancelled, order.ItemPending}, order.StatusPartiallyCancelled},
		{"delivered and cancelled", []order.ItemStatus{order.ItemDelivered, order.ItemCancelled}, order.StatusPartiallyDelivered},
		{"refund requested only", []order.ItemStatus{order.ItemRequestRefund}, order.StatusPending},
		{"rejected and cancelled", []order.ItemStatus{order.ItemRejected, order.ItemCancelled}, order.StatusPartiallyCancelled},
		{"all pending", []order.ItemStatus{order.ItemPending, order.ItemPending}, order.StatusPending},
		{"empty", nil, order.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, order.Aggregate(tt.states))
		})
	}
}

func TestAggregate_IsOrderIndependentAndDeterministic(t *testing.T) {
	all := []order.ItemStatus{
		order.ItemPending, order.ItemProcessing, order.ItemForPickUp, order.ItemShipped,
		order.ItemDelivered, order.ItemCancelled, order.ItemRequestRefund, order.ItemRefunded, order.ItemRejected,
	}
	rng := rand.New(rand.NewPCG(1, 2)) //nolint:gosec // deterministic test data

	for range 500 {
		n := 1 + rng.IntN(6)
		states := make([]order.ItemStatus, n)
		for i := range states {
			states[i] = all[rng.IntN(len(all))]
		}

		want := order.Aggregate(states)
		shuffled := append([]order.ItemStatus(nil), states...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		assert.Equal(t, want, order.Aggregate(shuffled), "states %v", states)
		assert.Equal(t, want, order.Aggregate(states), "second evaluation of %v", states)
	}
}
