package order

import (
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrShipmentIsNotConstructed = errs.NewValueIsRequiredError("shipment must be created via NewShipment")

// Shipment describes how a processed item leaves the seller: with a courier and
// tracking number, or held for buyer pickup.
type Shipment struct { //nolint:recvcheck //using for validation
	courier        string
	trackingNumber string
	forPickUp      bool
	guard          guard.ConstructorGuard
}

func NewShipment(courier, trackingNumber string, forPickUp bool) (Shipment, error) {
	s := Shipment{
		courier:        strings.TrimSpace(courier),
		trackingNumber: strings.TrimSpace(trackingNumber),
		forPickUp:      forPickUp,
		guard:          guard.NewConstructorGuard(),
	}
	if forPickUp {
		return s, nil
	}

	var missing []string
	if s.courier == "" {
		missing = append(missing, "courier")
	}
	if s.trackingNumber == "" {
		missing = append(missing, "trackingNumber")
	}
	if len(missing) > 0 {
		return Shipment{}, errs.NewValueIsRequiredError(strings.Join(missing, ", "))
	}
	return s, nil
}

func (s Shipment) Validate() error {
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

func (s Shipment) Courier() string        { return s.courier }
func (s Shipment) TrackingNumber() string { return s.trackingNumber }
func (s Shipment) ForPickUp() bool        { return s.forPickUp }

func (s Shipment) target() ItemStatus {
	if s.forPickUp {
		return ItemForPickUp
	}
	return ItemShipped
}
