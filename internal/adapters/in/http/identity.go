package http

import (
	"errors"
	"net/http"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the upstream gateway.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
	HeaderSellerID = "X-Seller-ID"
)

const actorKey = "actor"

var errUnknownCaller = errors.New("system role is not accepted from callers")

// actorFromHeaders turns the gateway headers into the actor every operation takes.
func actorFromHeaders(h http.Header) (order.Actor, error) {
	role, err := order.ParseRole(h.Get(HeaderUserRole))
	if err != nil {
		return order.Actor{}, err
	}
	userID, err := kernel.UUIDFromString(h.Get(HeaderUserID))
	if err != nil {
		return order.Actor{}, err
	}

	switch role {
	case order.RoleBuyer:
		return order.NewBuyer(userID)
	case order.RoleSeller:
		sellerID, sellerErr := kernel.UUIDFromString(h.Get(HeaderSellerID))
		if sellerErr != nil {
			return order.Actor{}, sellerErr
		}
		return order.NewSeller(userID, sellerID)
	case order.RoleAdmin:
		return order.NewAdmin(userID)
	default:
		return order.Actor{}, errUnknownCaller
	}
}

// identify rejects requests without a usable identity with 401.
func identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, err := actorFromHeaders(c.Request().Header)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, Error{
				Code:    http.StatusUnauthorized,
				Message: "missing or invalid identity: " + err.Error(),
			})
		}
		c.Set(actorKey, actor)
		return next(c)
	}
}

// requireRole answers 403 unless the caller has one of roles.
func requireRole(roles ...order.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !slices.Contains(roles, actorOf(c).Role) {
				return c.JSON(http.StatusForbidden, Error{
					Code:    http.StatusForbidden,
					Message: "operation is not available to " + actorOf(c).Role.String() + "s",
				})
			}
			return next(c)
		}
	}
}

func actorOf(c echo.Context) order.Actor {
	actor, _ := c.Get(actorKey).(order.Actor)
	return actor
}
