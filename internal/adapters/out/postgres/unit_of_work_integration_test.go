//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stock"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs the unit of work against a real PostgreSQL,
// where row locks and serialization behave as in production.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.AutoMigrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE order_items, orders, stock_items, cart_lines").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentDebitsNeverOversell() {
	ctx := context.Background()

	entry, err := stock.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Lamp", kernel.MustMoney("10"), 5)
	suite.Require().NoError(err)
	seed := suite.factory.Create()
	suite.Require().NoError(seed.Begin(ctx))
	suite.Require().NoError(seed.StockRepository().Add(ctx, entry))
	suite.Require().NoError(seed.Commit(ctx))

	const buyers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for range buyers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if suite.reserve(ctx, entry.ProductID(), 2) == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	suite.Equal(2, succeeded)

	ledger, err := suite.factory.Create().StockRepository().GetForUpdate(ctx, []kernel.UUID{entry.ProductID()})
	suite.Require().NoError(err)
	suite.Equal(1, ledger[entry.ProductID()].Available())
}

// reserve locks the row, checks it in memory and debits it, as checkout does.
func (suite *UnitOfWorkIntegrationTestSuite) reserve(ctx context.Context, productID kernel.UUID, qty int) error {
	uow := suite.factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	ledger, err := uow.StockRepository().GetForUpdate(ctx, []kernel.UUID{productID})
	if err != nil {
		return err
	}
	if err = ledger[productID].Debit(qty); err != nil {
		return err
	}
	if err = uow.StockRepository().Debit(ctx, productID, qty); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDebitWithoutLockLosesRaceAsAbort() {
	ctx := context.Background()

	entry, err := stock.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Lamp", kernel.MustMoney("10"), 1)
	suite.Require().NoError(err)
	seed := suite.factory.Create()
	suite.Require().NoError(seed.Begin(ctx))
	suite.Require().NoError(seed.StockRepository().Add(ctx, entry))
	suite.Require().NoError(seed.Commit(ctx))

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(first.StockRepository().Debit(ctx, entry.ProductID(), 1))
	suite.Require().NoError(first.Commit(ctx))

	second := suite.factory.Create()
	suite.Require().NoError(second.Begin(ctx))
	defer func() { _ = second.Rollback(ctx) }()

	err = second.StockRepository().Debit(ctx, entry.ProductID(), 1)
	suite.Require().Error(err)
	suite.True(errs.IsRetryable(err))
}
