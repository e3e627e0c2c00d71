package kernel

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address is the shipping destination captured on an order at checkout.
type Address struct { //nolint:recvcheck //using for validation
	street      string
	city        string
	country     string
	postalCode  string
	phoneNumber string
	guard       guard.ConstructorGuard
}

// NewAddress requires street, city and country; postal code and phone number are optional.
func NewAddress(street, city, country, postalCode, phoneNumber string) (Address, error) {
	addr := Address{
		postalCode:  strings.TrimSpace(postalCode),
		phoneNumber: strings.TrimSpace(phoneNumber),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		addr.setStreet(street),
		addr.setCity(city),
		addr.setCountry(country),
	); err != nil {
		return Address{}, err
	}

	return addr, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Street() string      { return a.street }
func (a Address) City() string        { return a.city }
func (a Address) Country() string     { return a.country }
func (a Address) PostalCode() string  { return a.postalCode }
func (a Address) PhoneNumber() string { return a.phoneNumber }

func (a Address) String() string {
	parts := []string{a.street, a.city}
	if a.postalCode != "" {
		parts = append(parts, a.postalCode)
	}
	parts = append(parts, a.country)
	return strings.Join(parts, ", ")
}

func (a Address) IsEqual(other Address) bool {
	return a.street == other.street &&
		a.city == other.city &&
		a.country == other.country &&
		a.postalCode == other.postalCode &&
		a.phoneNumber == other.phoneNumber
}

func (a *Address) setStreet(street string) error {
	street = strings.TrimSpace(street)
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *Address) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setCountry(country string) error {
	country = strings.TrimSpace(country)
	if country == "" {
		return errs.NewValueIsRequiredError("country")
	}
	a.country = country
	return nil
}
