package http

import (
	"github.com/go-playground/validator/v10"
)

type checkoutRequest struct {
	ShippingAddress addressRequest `json:"shippingAddress" validate:"required"`
	PaymentMethod   string         `json:"paymentMethod"   validate:"required,oneof=cod gcash paypal"`
	TransactionID   string         `json:"transactionId"   validate:"max=128"`
}

type addressRequest struct {
	Street      string `json:"street"      validate:"required,max=255"`
	City        string `json:"city"        validate:"required,max=128"`
	Country     string `json:"country"     validate:"required,max=128"`
	PostalCode  string `json:"postalCode"  validate:"max=32"`
	PhoneNumber string `json:"phoneNumber" validate:"max=32"`
}

type shipRequest struct {
	Courier        string `json:"courier"        validate:"max=128"`
	TrackingNumber string `json:"trackingNumber" validate:"max=128"`
	ForPickUp      bool   `json:"forPickUp"`
}

type reasonRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type resolveRefundRequest struct {
	Approve *bool `json:"approve" validate:"required"`
}

// requestValidator plugs go-playground/validator into echo's Context.Validate.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	return &requestValidator{validate: validator.New()}
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
