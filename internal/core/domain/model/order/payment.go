package order

import (
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPaymentIsNotConstructed = errs.NewValueIsRequiredError("payment must be created via NewPayment or RestorePayment")

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentGCash  PaymentMethod = "gcash"
	PaymentPayPal PaymentMethod = "paypal"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case PaymentCOD, PaymentGCash, PaymentPayPal:
		return m, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not supported", s))
	}
}

// Payment records how the buyer pays. Funds are never moved here: a transaction id
// from an upstream gateway only marks the order as paid.
type Payment struct { //nolint:recvcheck //using for validation
	method        PaymentMethod
	paid          bool
	paidAt        *time.Time
	transactionID string
	guard         guard.ConstructorGuard
}

// NewPayment records cash on delivery as unpaid. Other methods are paid when a
// gateway transaction id is supplied.
func NewPayment(method PaymentMethod, transactionID string, now time.Time) (Payment, error) {
	if _, err := ParsePaymentMethod(string(method)); err != nil {
		return Payment{}, err
	}
	if method == PaymentCOD && transactionID != "" {
		return Payment{}, errs.NewValueIsInvalidErrorWithCause("transactionId",
			fmt.Errorf("cash on delivery has no gateway transaction"))
	}

	p := Payment{
		method:        method,
		transactionID: transactionID,
		guard:         guard.NewConstructorGuard(),
	}
	if transactionID != "" {
		paidAt := now
		p.paid = true
		p.paidAt = &paidAt
	}
	return p, nil
}

func RestorePayment(method PaymentMethod, paid bool, paidAt *time.Time, transactionID string) (Payment, error) {
	if _, err := ParsePaymentMethod(string(method)); err != nil {
		return Payment{}, err
	}
	return Payment{
		method:        method,
		paid:          paid,
		paidAt:        cloneTime(paidAt),
		transactionID: transactionID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (p Payment) Validate() error {
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

func (p Payment) Method() PaymentMethod { return p.method }
func (p Payment) IsPaid() bool          { return p.paid }
func (p Payment) PaidAt() *time.Time    { return cloneTime(p.paidAt) }
func (p Payment) TransactionID() string { return p.transactionID }
