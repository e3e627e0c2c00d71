package order

type transition struct {
	actor Role
	from  ItemStatus
	to    ItemStatus
}

// transitions is the complete set of item moves. Anything absent is rejected with
// InvalidTransitionError.
//
// forPickUp → delivered lets the buyer confirm a collected parcel; the system clock
// only auto-delivers items that were handed to a courier.
var transitions = []transition{
	{RoleSeller, ItemPending, ItemProcessing},
	{RoleSeller, ItemProcessing, ItemForPickUp},
	{RoleSeller, ItemProcessing, ItemShipped},

	{RoleBuyer, ItemPending, ItemCancelled},
	{RoleBuyer, ItemProcessing, ItemCancelled},
	{RoleSeller, ItemPending, ItemCancelled},
	{RoleSeller, ItemProcessing, ItemCancelled},

	{RoleBuyer, ItemShipped, ItemDelivered},
	{RoleBuyer, ItemForPickUp, ItemDelivered},
	{RoleSystem, ItemShipped, ItemDelivered},

	{RoleBuyer, ItemDelivered, ItemRequestRefund},
	{RoleSeller, ItemRequestRefund, ItemRefunded},
	{RoleSeller, ItemRequestRefund, ItemRejected},
}

// CanTransition reports whether role may move an item from one state to another.
func CanTransition(role Role, from, to ItemStatus) bool {
	for _, t := range transitions {
		if t.actor == role && t.from == from && t.to == to {
			return true
		}
	}
	return false
}
