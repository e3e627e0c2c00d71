// Package order contains the Order aggregate of the marketplace: one checkout,
// possibly spanning several sellers, with one Item per cart line.
//
// Each Item moves through its own fulfillment lifecycle:
//
//	pending ──> processing ──┬──> shipped ───┬──> delivered ──> requestRefund ──┬──> refunded
//	   │            │        └──> forPickUp ─┘                                  └──> rejected
//	   └────────────┴──> cancelled
//
// Who may take which step is fixed by a single transition table (see transitions.go);
// sellers only touch their own items, buyers only their own orders.
//
// The order-level Status is never assigned. Every mutation ends in one hook that
// re-derives it with Aggregate from the item states and, the first time the order
// becomes fully delivered, stamps the refund deadline.
package order
