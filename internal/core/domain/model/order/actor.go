package order

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Role is the capacity in which an actor touches an order.
type Role int

const (
	RoleUnknown Role = iota
	RoleBuyer
	RoleSeller
	RoleAdmin
	// RoleSystem is used by scheduled sweeps.
	RoleSystem
)

var roleNames = map[Role]string{
	RoleBuyer:  "buyer",
	RoleSeller: "seller",
	RoleAdmin:  "admin",
	RoleSystem: "system",
}

func ParseRole(s string) (Role, error) {
	for role, name := range roleNames {
		if name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Actor is the authenticated caller of an operation. Identity is always passed
// explicitly; the domain never looks it up.
type Actor struct {
	UserID   kernel.UUID
	Role     Role
	SellerID kernel.UUID
}

func NewBuyer(userID kernel.UUID) (Actor, error) {
	if err := userID.Validate(); err != nil {
		return Actor{}, errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	return Actor{UserID: userID, Role: RoleBuyer}, nil
}

func NewSeller(userID, sellerID kernel.UUID) (Actor, error) {
	if err := userID.Validate(); err != nil {
		return Actor{}, errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	if err := sellerID.Validate(); err != nil {
		return Actor{}, errs.NewValueIsRequiredErrorWithCause("sellerId", err)
	}
	return Actor{UserID: userID, Role: RoleSeller, SellerID: sellerID}, nil
}

func NewAdmin(userID kernel.UUID) (Actor, error) {
	if err := userID.Validate(); err != nil {
		return Actor{}, errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	return Actor{UserID: userID, Role: RoleAdmin}, nil
}

// SystemActor is the Fulfillment Clock.
func SystemActor() Actor {
	return Actor{Role: RoleSystem}
}

func (a Actor) Validate() error {
	switch a.Role {
	case RoleBuyer, RoleAdmin:
		return a.UserID.Validate()
	case RoleSeller:
		if err := a.UserID.Validate(); err != nil {
			return err
		}
		return a.SellerID.Validate()
	case RoleSystem:
		return nil
	default:
		return errs.NewValueIsInvalidError("actor role")
	}
}

func (a Actor) String() string {
	switch a.Role {
	case RoleSeller:
		return fmt.Sprintf("seller %s", a.SellerID)
	case RoleSystem:
		return "system"
	default:
		return fmt.Sprintf("%s %s", a.Role, a.UserID)
	}
}
