package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand turns a buyer's cart into an order.
//
// Example:
//
//	address, _ := kernel.NewAddress("1 Main St", "Manila", "PH", "1000", "+639000000000")
//	cmd, err := NewCheckoutCommand(buyerID, address, order.PaymentCOD, "")
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//	placed, err := handler.Handle(ctx, cmd)
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	buyerID       kernel.UUID
	address       kernel.Address
	paymentMethod order.PaymentMethod
	transactionID string

	guard guard.ConstructorGuard
}

func NewCheckoutCommand(
	buyerID kernel.UUID,
	address kernel.Address,
	paymentMethod order.PaymentMethod,
	transactionID string,
) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBuyerID(buyerID),
		cmd.setAddress(address),
		cmd.setPayment(paymentMethod, transactionID),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

func (c CheckoutCommand) BuyerID() kernel.UUID               { return c.buyerID }
func (c CheckoutCommand) Address() kernel.Address            { return c.address }
func (c CheckoutCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }
func (c CheckoutCommand) TransactionID() string              { return c.transactionID }

func (c *CheckoutCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("buyerId", err)
	}

	c.buyerID = buyerID
	return nil
}

func (c *CheckoutCommand) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shippingAddress", err)
	}

	c.address = address
	return nil
}

func (c *CheckoutCommand) setPayment(method order.PaymentMethod, transactionID string) error {
	parsed, err := order.ParsePaymentMethod(string(method))
	if err != nil {
		return err
	}
	transactionID = strings.TrimSpace(transactionID)
	if parsed == order.PaymentCOD && transactionID != "" {
		return errs.NewValueIsInvalidErrorWithCause("transactionId",
			errors.New("cash on delivery orders carry no transaction id"))
	}

	c.paymentMethod = parsed
	c.transactionID = transactionID
	return nil
}
