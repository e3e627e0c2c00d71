package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ItemStatus is the fulfillment state of a single order item.
type ItemStatus int

const (
	ItemUnknown ItemStatus = iota
	ItemPending
	ItemProcessing
	ItemForPickUp
	ItemShipped
	ItemDelivered
	ItemCancelled
	ItemRequestRefund
	ItemRefunded
	ItemRejected
)

var itemStatusNames = map[ItemStatus]string{
	ItemPending:       "pending",
	ItemProcessing:    "processing",
	ItemForPickUp:     "forPickUp",
	ItemShipped:       "shipped",
	ItemDelivered:     "delivered",
	ItemCancelled:     "cancelled",
	ItemRequestRefund: "requestRefund",
	ItemRefunded:      "refunded",
	ItemRejected:      "rejected",
}

// ParseItemStatus is the inverse of ItemStatus.String.
func ParseItemStatus(s string) (ItemStatus, error) {
	for status, name := range itemStatusNames {
		if name == s {
			return status, nil
		}
	}
	return ItemUnknown, errs.NewValueIsInvalidErrorWithCause(
		"item status", fmt.Errorf("%q is not a valid item status", s))
}

func (s ItemStatus) Validate() error {
	if _, ok := itemStatusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"item status", fmt.Errorf("%d is not a valid item status", s))
	}
	return nil
}

func (s ItemStatus) String() string {
	if name, ok := itemStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no actor may move the item any further.
// delivered is terminal except for the buyer's refund request.
func (s ItemStatus) IsTerminal() bool {
	switch s {
	case ItemDelivered, ItemCancelled, ItemRefunded, ItemRejected:
		return true
	default:
		return false
	}
}

func (s ItemStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *ItemStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseItemStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
