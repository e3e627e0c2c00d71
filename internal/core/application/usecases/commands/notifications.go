package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/sirupsen/logrus"
)

// notify sends notes after a commit. Failures are logged and dropped: a committed
// change is never reported as failed because a message could not be delivered.
func notify(ctx context.Context, log *logrus.Entry, notifier ports.Notifier, notes ...ports.Notification) {
	if notifier == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for _, n := range notes {
		if _, err := notifier.Notify(ctx, n); err != nil {
			log.WithError(err).
				WithField("user_id", n.UserID.String()).
				WithField("subject", n.Subject).
				Warn("notification not delivered")
		}
	}
}

func buyerOrderLink(orderID kernel.UUID) string {
	return fmt.Sprintf("/orders/%s", orderID)
}

func sellerOrderLink(orderID kernel.UUID) string {
	return fmt.Sprintf("/seller/orders/%s", orderID)
}

func toSeller(sellerID kernel.UUID, subject, message string, orderID kernel.UUID) ports.Notification {
	return ports.Notification{
		UserID:  sellerID,
		Role:    order.RoleSeller,
		Subject: subject,
		Message: message,
		Link:    sellerOrderLink(orderID),
	}
}

func toBuyer(buyerID kernel.UUID, subject, message string, orderID kernel.UUID) ports.Notification {
	return ports.Notification{
		UserID:  buyerID,
		Role:    order.RoleBuyer,
		Subject: subject,
		Message: message,
		Link:    buyerOrderLink(orderID),
	}
}

func newOrderNotes(o *order.Order) []ports.Notification {
	sellers := o.SellerIDs()
	notes := make([]ports.Notification, 0, len(sellers))
	for _, sellerID := range sellers {
		notes = append(notes, toSeller(sellerID, "New Order",
			fmt.Sprintf("Order #%s contains your products.", o.ID()), o.ID()))
	}
	return notes
}

func cancelledNotes(o *order.Order, it order.Item, by order.Role) []ports.Notification {
	if by == order.RoleBuyer {
		return []ports.Notification{toSeller(it.SellerID, "Order cancelled",
			fmt.Sprintf("The buyer cancelled %s in order #%s.", it.Name, o.ID()), o.ID())}
	}
	return []ports.Notification{toBuyer(o.BuyerID(), "Item cancelled",
		fmt.Sprintf("The seller cancelled %s in order #%s.", it.Name, o.ID()), o.ID())}
}

func shippedNotes(o *order.Order, it order.Item) []ports.Notification {
	if it.Status == order.ItemForPickUp {
		return []ports.Notification{toBuyer(o.BuyerID(), "Ready for pick-up",
			fmt.Sprintf("%s from order #%s is ready for pick-up.", it.Name, o.ID()), o.ID())}
	}
	return []ports.Notification{toBuyer(o.BuyerID(), "Item shipped",
		fmt.Sprintf("%s from order #%s was shipped via %s, tracking number %s.",
			it.Name, o.ID(), it.Courier, it.TrackingNumber), o.ID())}
}

func refundRequestedNotes(o *order.Order, it order.Item) []ports.Notification {
	return []ports.Notification{
		toSeller(it.SellerID, "Refund requested",
			fmt.Sprintf("The buyer requested a refund for %s in order #%s.", it.Name, o.ID()), o.ID()),
		toBuyer(o.BuyerID(), "Refund requested",
			fmt.Sprintf("Your refund request for %s was sent to the seller.", it.Name), o.ID()),
	}
}

func refundResolvedNotes(o *order.Order, it order.Item) []ports.Notification {
	if it.Status == order.ItemRefunded {
		return []ports.Notification{toBuyer(o.BuyerID(), "Refund approved",
			fmt.Sprintf("Your refund of %s for %s was approved.", it.RefundAmount, it.Name), o.ID())}
	}
	return []ports.Notification{toBuyer(o.BuyerID(), "Refund rejected",
		fmt.Sprintf("Your refund request for %s was rejected.", it.Name), o.ID())}
}
