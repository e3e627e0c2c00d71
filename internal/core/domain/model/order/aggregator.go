package order

// Aggregate derives the order status from the multiset of item states.
// Rules are checked in this exact order and the first match wins:
//
//  1. all delivered → delivered
//  2. all cancelled → cancelled
//  3. all refunded → refunded
//  4. all shipped → shipped
//  5. any refunded → partially_refunded
//  6. any delivered → partially_delivered
//  7. any shipped → partially_shipped
//  8. any forPickUp → ready_for_pickup
//  9. any processing → partial_processing
//  10. any cancelled → partially_cancelled
//  11. otherwise → pending
//
// The result depends only on how many items are in each state, never on their order.
func Aggregate(states []ItemStatus) Status {
	n := len(states)
	if n == 0 {
		return StatusPending
	}

	counts := make(map[ItemStatus]int, len(itemStatusNames))
	for _, s := range states {
		counts[s]++
	}
	all := func(s ItemStatus) bool { return counts[s] == n }
	some := func(s ItemStatus) bool { return counts[s] > 0 }

	switch {
	case all(ItemDelivered):
		return StatusDelivered
	case all(ItemCancelled):
		return StatusCancelled
	case all(ItemRefunded):
		return StatusRefunded
	case all(ItemShipped):
		return StatusShipped
	case some(ItemRefunded):
		return StatusPartiallyRefunded
	case some(ItemDelivered):
		return StatusPartiallyDelivered
	case some(ItemShipped):
		return StatusPartiallyShipped
	case some(ItemForPickUp):
		return StatusReadyForPickup
	case some(ItemProcessing):
		return StatusPartialProcessing
	case some(ItemCancelled):
		return StatusPartiallyCancelled
	default:
		return StatusPending
	}
}
