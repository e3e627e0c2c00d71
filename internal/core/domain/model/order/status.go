package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the aggregate state of an order, derived from its items by Aggregate.
type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusPartialProcessing
	StatusReadyForPickup
	StatusPartiallyShipped
	StatusShipped
	StatusPartiallyDelivered
	StatusDelivered
	StatusPartiallyCancelled
	StatusCancelled
	StatusPartiallyRefunded
	StatusRefunded
)

var statusNames = map[Status]string{
	StatusPending:            "pending",
	StatusPartialProcessing:  "partial_processing",
	StatusReadyForPickup:     "ready_for_pickup",
	StatusPartiallyShipped:   "partially_shipped",
	StatusShipped:            "shipped",
	StatusPartiallyDelivered: "partially_delivered",
	StatusDelivered:          "delivered",
	StatusPartiallyCancelled: "partially_cancelled",
	StatusCancelled:          "cancelled",
	StatusPartiallyRefunded:  "partially_refunded",
	StatusRefunded:           "refunded",
}

func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"order status", fmt.Errorf("%q is not a valid order status", s))
}

// AllStatuses lists every valid status in declaration order.
func AllStatuses() []Status {
	out := make([]Status, 0, len(statusNames))
	for s := StatusPending; s <= StatusRefunded; s++ {
		out = append(out, s)
	}
	return out
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"order status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
