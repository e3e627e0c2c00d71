// Package commands contains the business operations that change orders and stock.
// Every handler follows the same shape: validate the command, open a unit of work,
// load and lock what it changes, call the domain, persist, commit, and only then
// send notifications.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	StockRepoFactory interface {
		StockRepository() ports.StockRepository
	}

	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	// OrderUoW manages transactions for commands that only change orders:
	// item transitions and the auto-deliver sweep.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CheckoutUoW spans the cart, the stock ledger and the orders, so a checkout
	// commits all three or none.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   c, _ := uow.CartRepository().Get(ctx, buyerID)
	//   ledger, _ := uow.StockRepository().GetForUpdate(ctx, c.ProductIDs())
	//   // ... allocate, debit, add order, delete cart
	//
	//   err = uow.Commit(ctx)
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		StockRepoFactory
		CartRepoFactory
	}

	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}
)
