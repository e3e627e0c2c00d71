package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrProcessItemCommandIsNotConstructed     = errors.New("ProcessItemCommand must be created via NewProcessItemCommand constructor")
	ErrShipItemCommandIsNotConstructed        = errors.New("ShipItemCommand must be created via NewShipItemCommand constructor")
	ErrCancelItemCommandIsNotConstructed      = errors.New("CancelItemCommand must be created via NewCancelItemCommand constructor")
	ErrConfirmDeliveryCommandIsNotConstructed = errors.New("ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor")
	ErrRequestRefundCommandIsNotConstructed   = errors.New("RequestRefundCommand must be created via NewRequestRefundCommand constructor")
	ErrResolveRefundCommandIsNotConstructed   = errors.New("ResolveRefundCommand must be created via NewResolveRefundCommand constructor")
)

const maxReasonLength = 500

// itemRef addresses one item of one order on behalf of an actor.
type itemRef struct {
	orderID kernel.UUID
	itemID  kernel.UUID
	actor   order.Actor
}

func newItemRef(orderID, itemID kernel.UUID, actor order.Actor) (itemRef, error) {
	var errList []error
	if err := orderID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("orderId", err))
	}
	if err := itemID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("itemId", err))
	}
	if err := actor.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("actor", err))
	}
	if err := errors.Join(errList...); err != nil {
		return itemRef{}, err
	}
	return itemRef{orderID: orderID, itemID: itemID, actor: actor}, nil
}

func (r itemRef) OrderID() kernel.UUID { return r.orderID }
func (r itemRef) ItemID() kernel.UUID  { return r.itemID }
func (r itemRef) Actor() order.Actor   { return r.actor }

func cleanReason(reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if len(reason) > maxReasonLength {
		return "", errs.NewValueIsOutOfRangeError("reason length", len(reason), 0, maxReasonLength)
	}
	return reason, nil
}

// ProcessItemCommand: the seller starts preparing a pending item.
type ProcessItemCommand struct { //nolint:recvcheck //using for validation
	itemRef
	guard guard.ConstructorGuard
}

func NewProcessItemCommand(orderID, itemID kernel.UUID, actor order.Actor) (ProcessItemCommand, error) {
	ref, err := newItemRef(orderID, itemID, actor)
	if err != nil {
		return ProcessItemCommand{}, err
	}
	return ProcessItemCommand{itemRef: ref, guard: guard.NewConstructorGuard()}, nil
}

func (c ProcessItemCommand) Validate() error {
	return c.guard.Validate(ErrProcessItemCommandIsNotConstructed)
}

// ShipItemCommand hands a processing item to a courier, or marks it ready for pick-up.
type ShipItemCommand struct { //nolint:recvcheck //using for validation
	itemRef
	shipment order.Shipment
	guard    guard.ConstructorGuard
}

func NewShipItemCommand(
	orderID, itemID kernel.UUID,
	actor order.Actor,
	courier, trackingNumber string,
	forPickUp bool,
) (ShipItemCommand, error) {
	ref, refErr := newItemRef(orderID, itemID, actor)
	shipment, shipmentErr := order.NewShipment(courier, trackingNumber, forPickUp)
	if err := errors.Join(refErr, shipmentErr); err != nil {
		return ShipItemCommand{}, err
	}
	return ShipItemCommand{itemRef: ref, shipment: shipment, guard: guard.NewConstructorGuard()}, nil
}

func (c ShipItemCommand) Validate() error {
	return c.guard.Validate(ErrShipItemCommandIsNotConstructed)
}

func (c ShipItemCommand) Shipment() order.Shipment { return c.shipment }

// CancelItemCommand cancels a pending or processing item, by its buyer or its seller.
type CancelItemCommand struct { //nolint:recvcheck //using for validation
	itemRef
	reason string
	guard  guard.ConstructorGuard
}

func NewCancelItemCommand(orderID, itemID kernel.UUID, actor order.Actor, reason string) (CancelItemCommand, error) {
	ref, refErr := newItemRef(orderID, itemID, actor)
	cleaned, reasonErr := cleanReason(reason)
	if err := errors.Join(refErr, reasonErr); err != nil {
		return CancelItemCommand{}, err
	}
	return CancelItemCommand{itemRef: ref, reason: cleaned, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelItemCommand) Validate() error {
	return c.guard.Validate(ErrCancelItemCommandIsNotConstructed)
}

func (c CancelItemCommand) Reason() string { return c.reason }

// ConfirmDeliveryCommand: the buyer confirms receipt of a shipped or picked-up item.
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	itemRef
	guard guard.ConstructorGuard
}

func NewConfirmDeliveryCommand(orderID, itemID kernel.UUID, actor order.Actor) (ConfirmDeliveryCommand, error) {
	ref, err := newItemRef(orderID, itemID, actor)
	if err != nil {
		return ConfirmDeliveryCommand{}, err
	}
	return ConfirmDeliveryCommand{itemRef: ref, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

// RequestRefundCommand: the buyer asks for a refund of a delivered item.
type RequestRefundCommand struct { //nolint:recvcheck //using for validation
	itemRef
	reason string
	guard  guard.ConstructorGuard
}

func NewRequestRefundCommand(orderID, itemID kernel.UUID, actor order.Actor, reason string) (RequestRefundCommand, error) {
	ref, refErr := newItemRef(orderID, itemID, actor)
	cleaned, reasonErr := cleanReason(reason)
	if err := errors.Join(refErr, reasonErr); err != nil {
		return RequestRefundCommand{}, err
	}
	return RequestRefundCommand{itemRef: ref, reason: cleaned, guard: guard.NewConstructorGuard()}, nil
}

func (c RequestRefundCommand) Validate() error {
	return c.guard.Validate(ErrRequestRefundCommandIsNotConstructed)
}

func (c RequestRefundCommand) Reason() string { return c.reason }

// ResolveRefundCommand: the seller approves or rejects a refund request.
type ResolveRefundCommand struct { //nolint:recvcheck //using for validation
	itemRef
	approve bool
	guard   guard.ConstructorGuard
}

func NewResolveRefundCommand(orderID, itemID kernel.UUID, actor order.Actor, approve bool) (ResolveRefundCommand, error) {
	ref, err := newItemRef(orderID, itemID, actor)
	if err != nil {
		return ResolveRefundCommand{}, err
	}
	return ResolveRefundCommand{itemRef: ref, approve: approve, guard: guard.NewConstructorGuard()}, nil
}

func (c ResolveRefundCommand) Validate() error {
	return c.guard.Validate(ErrResolveRefundCommandIsNotConstructed)
}

func (c ResolveRefundCommand) Approve() bool { return c.approve }
