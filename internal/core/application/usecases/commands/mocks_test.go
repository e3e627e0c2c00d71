package commands_test

import (
	"context"
	"io"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stock"
	"fulfillment/internal/core/ports"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListIDsWithItemsShippedBefore(ctx context.Context, cutoff time.Time) ([]kernel.UUID, error) {
	args := m.Called(ctx, cutoff)
	ids, _ := args.Get(0).([]kernel.UUID)
	return ids, args.Error(1)
}

type MockStockRepository struct{ mock.Mock }

func (m *MockStockRepository) Add(ctx context.Context, item *stock.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockStockRepository) GetForUpdate(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*stock.Item, error) {
	args := m.Called(ctx, ids)
	ledger, _ := args.Get(0).(map[kernel.UUID]*stock.Item)
	return ledger, args.Error(1)
}

func (m *MockStockRepository) Debit(ctx context.Context, productID kernel.UUID, qty int) error {
	return m.Called(ctx, productID, qty).Error(0)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) Get(ctx context.Context, buyerID kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, buyerID)
	c, _ := args.Get(0).(*cart.Cart)
	return c, args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, buyerID kernel.UUID) error {
	return m.Called(ctx, buyerID).Error(0)
}

// MockUoW satisfies both OrderUoW and CheckoutUoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) StockRepository() ports.StockRepository {
	return m.Called().Get(0).(ports.StockRepository)
}

func (m *MockUoW) CartRepository() ports.CartRepository {
	return m.Called().Get(0).(ports.CartRepository)
}

type MockOrderUoWFactory struct{ uow *MockUoW }

func (f MockOrderUoWFactory) Create() commands.OrderUoW { return f.uow }

type MockCheckoutUoWFactory struct{ uow *MockUoW }

func (f MockCheckoutUoWFactory) Create() commands.CheckoutUoW { return f.uow }

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, n ports.Notification) (kernel.UUID, error) {
	args := m.Called(ctx, n)
	id, _ := args.Get(0).(kernel.UUID)
	return id, args.Error(1)
}

func (m *MockNotifier) subjects() []string {
	var out []string
	for _, call := range m.Calls {
		if call.Method == "Notify" {
			out = append(out, call.Arguments.Get(1).(ports.Notification).Subject)
		}
	}
	return out
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// parties of a placed order.
type parties struct {
	buyer  order.Actor
	seller order.Actor
}

func newParties(t *testing.T) parties {
	t.Helper()
	buyer, err := order.NewBuyer(kernel.NewUUID())
	require.NoError(t, err)
	seller, err := order.NewSeller(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	return parties{buyer: buyer, seller: seller}
}

// placeOrder builds an order of p.seller's products, one item per quantity.
func placeOrder(t *testing.T, p parties, txID string, qtys ...int) *order.Order {
	t.Helper()

	catalog := make(map[kernel.UUID]*stock.Item, len(qtys))
	c, err := cart.NewCart(p.buyer.UserID)
	require.NoError(t, err)
	for _, qty := range qtys {
		entry, itemErr := stock.NewItem(kernel.NewUUID(), p.seller.SellerID, "Desk lamp", kernel.MustMoney("100"), 100)
		require.NoError(t, itemErr)
		catalog[entry.ProductID()] = entry
		l, lineErr := cart.NewLine(entry.ProductID(), qty, nil)
		require.NoError(t, lineErr)
		require.NoError(t, c.Add(l))
	}
	snap, err := cart.Capture(c, catalog, t0)
	require.NoError(t, err)

	address, err := kernel.NewAddress("1 Main St", "Manila", "PH", "1000", "+63900000000")
	require.NoError(t, err)
	method := order.PaymentCOD
	if txID != "" {
		method = order.PaymentPayPal
	}
	payment, err := order.NewPayment(method, txID, t0)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), snap, address, payment, order.Terms{
		ShippingFee:  kernel.MustMoney("50"),
		RefundWindow: 7 * 24 * time.Hour,
	}, t0)
	require.NoError(t, err)
	return o
}
