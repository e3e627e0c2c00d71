package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAutoDeliverCommandIsNotConstructed = errors.New(
	"AutoDeliverCommand must be created via NewAutoDeliverCommand constructor",
)

// AutoDeliverCommand asks for one Fulfillment Clock sweep at a given instant.
type AutoDeliverCommand struct { //nolint:recvcheck //using for validation
	now   time.Time
	guard guard.ConstructorGuard
}

func NewAutoDeliverCommand(now time.Time) (AutoDeliverCommand, error) {
	if now.IsZero() {
		return AutoDeliverCommand{}, errs.NewValueIsRequiredError("now")
	}
	return AutoDeliverCommand{now: now, guard: guard.NewConstructorGuard()}, nil
}

func (c AutoDeliverCommand) Validate() error {
	return c.guard.Validate(ErrAutoDeliverCommandIsNotConstructed)
}

func (c AutoDeliverCommand) Now() time.Time { return c.now }
