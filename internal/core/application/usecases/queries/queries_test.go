package queries_test

import (
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/sqlitetest"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stock"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// line is one cart line of a seeded order.
type line struct {
	seller order.Actor
	name   string
	price  string
	qty    int
}

type QueriesTestSuite struct {
	suite.Suite
	db      *gorm.DB
	orders  *orderrepo.GormOrderRepository
	buyer   order.Actor
	sellerA order.Actor
	sellerB order.Actor
}

func TestQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}

func (s *QueriesTestSuite) SetupTest() {
	s.db = sqlitetest.Open(s.T())
	s.orders = orderrepo.NewGormOrderRepository(s.db, noopTracker{})

	var err error
	s.buyer, err = order.NewBuyer(kernel.NewUUID())
	s.Require().NoError(err)
	s.sellerA, err = order.NewSeller(kernel.NewUUID(), kernel.NewUUID())
	s.Require().NoError(err)
	s.sellerB, err = order.NewSeller(kernel.NewUUID(), kernel.NewUUID())
	s.Require().NoError(err)
}

func (s *QueriesTestSuite) seed(buyer order.Actor, createdAt time.Time, lines ...line) *order.Order {
	catalog := make(map[kernel.UUID]*stock.Item, len(lines))
	c, err := cart.NewCart(buyer.UserID)
	s.Require().NoError(err)
	for _, l := range lines {
		entry, itemErr := stock.NewItem(kernel.NewUUID(), l.seller.SellerID, l.name, kernel.MustMoney(l.price), 100)
		s.Require().NoError(itemErr)
		catalog[entry.ProductID()] = entry
		cl, lineErr := cart.NewLine(entry.ProductID(), l.qty, nil)
		s.Require().NoError(lineErr)
		s.Require().NoError(c.Add(cl))
	}
	snap, err := cart.Capture(c, catalog, createdAt)
	s.Require().NoError(err)

	address, err := kernel.NewAddress("1 Main St", "Manila", "PH", "1000", "+63900000000")
	s.Require().NoError(err)
	payment, err := order.NewPayment(order.PaymentCOD, "", createdAt)
	s.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), snap, address, payment, order.Terms{
		ShippingFee:  kernel.MustMoney("50"),
		RefundWindow: 7 * 24 * time.Hour,
	}, createdAt)
	s.Require().NoError(err)
	s.Require().NoError(s.orders.Add(s.T().Context(), o))
	return o
}

func (s *QueriesTestSuite) mixedOrder() *order.Order {
	return s.seed(s.buyer, t0,
		line{seller: s.sellerA, name: "Lamp", price: "100", qty: 2},
		line{seller: s.sellerB, name: "Mug", price: "15.50", qty: 1},
	)
}

func (s *QueriesTestSuite) TestGetOrder_BuyerSeesWholeOrder() {
	o := s.mixedOrder()
	handler := queries.NewGetOrderQueryHandler(s.orders)

	query, err := queries.NewGetOrderQuery(o.ID(), s.buyer)
	s.Require().NoError(err)

	view, err := handler.Handle(s.T().Context(), query)
	s.Require().NoError(err)
	s.Equal(o.ID(), view.ID)
	s.Equal(order.StatusPending, view.Status)
	s.Len(view.Items, 2)
	s.Equal("215.50", view.ItemsTotal.String())
	s.Equal("265.50", view.Total.String())
	s.Equal(order.PaymentCOD, view.PaymentMethod)
	s.False(view.Paid)
	s.Equal("200.00", view.Items[0].Subtotal.String())
}

func (s *QueriesTestSuite) TestGetOrder_SellerSeesOnlyOwnItems() {
	o := s.mixedOrder()
	handler := queries.NewGetOrderQueryHandler(s.orders)

	query, err := queries.NewGetOrderQuery(o.ID(), s.sellerB)
	s.Require().NoError(err)

	view, err := handler.Handle(s.T().Context(), query)
	s.Require().NoError(err)
	s.Require().Len(view.Items, 1)
	s.Equal("Mug", view.Items[0].Name)
	s.Equal(s.sellerB.SellerID, view.Items[0].SellerID)
}

func (s *QueriesTestSuite) TestGetOrder_StrangersAreNotOwners() {
	o := s.mixedOrder()
	handler := queries.NewGetOrderQueryHandler(s.orders)

	otherBuyer, err := order.NewBuyer(kernel.NewUUID())
	s.Require().NoError(err)
	otherSeller, err := order.NewSeller(kernel.NewUUID(), kernel.NewUUID())
	s.Require().NoError(err)

	for _, viewer := range []order.Actor{otherBuyer, otherSeller} {
		query, queryErr := queries.NewGetOrderQuery(o.ID(), viewer)
		s.Require().NoError(queryErr)

		_, err = handler.Handle(s.T().Context(), query)
		s.Require().ErrorIs(err, order.ErrNotOwner, viewer.String())
	}
}

func (s *QueriesTestSuite) TestGetOrder_AdminSeesEverything() {
	o := s.mixedOrder()
	handler := queries.NewGetOrderQueryHandler(s.orders)

	admin, err := order.NewAdmin(kernel.NewUUID())
	s.Require().NoError(err)
	query, err := queries.NewGetOrderQuery(o.ID(), admin)
	s.Require().NoError(err)

	view, err := handler.Handle(s.T().Context(), query)
	s.Require().NoError(err)
	s.Len(view.Items, 2)
}

func (s *QueriesTestSuite) TestGetOrder_Missing() {
	handler := queries.NewGetOrderQueryHandler(s.orders)

	query, err := queries.NewGetOrderQuery(kernel.NewUUID(), s.buyer)
	s.Require().NoError(err)

	_, err = handler.Handle(s.T().Context(), query)
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *QueriesTestSuite) TestGetOrder_ShowsCancellation() {
	o := s.mixedOrder()
	itemID := o.ItemsForSeller(s.sellerA.SellerID)[0].ID
	s.Require().NoError(o.Cancel(s.sellerA, itemID, "out of stock", t0.Add(time.Hour)))
	s.Require().NoError(s.orders.Update(s.T().Context(), o))

	query, err := queries.NewGetOrderQuery(o.ID(), s.buyer)
	s.Require().NoError(err)
	view, err := queries.NewGetOrderQueryHandler(s.orders).Handle(s.T().Context(), query)
	s.Require().NoError(err)

	s.Equal(order.StatusPartiallyCancelled, view.Status)
	for _, it := range view.Items {
		if !it.ID.IsEqual(itemID) {
			continue
		}
		s.Equal(order.ItemCancelled, it.Status)
		s.Equal("seller", it.CancelledBy)
		s.Equal("out of stock", it.CancelReason)
		s.Require().NotNil(it.CancelledAt)
		s.True(it.RefundAmount.IsZero())
	}
}

func (s *QueriesTestSuite) TestListBuyerOrders_NewestFirst() {
	first := s.seed(s.buyer, t0, line{seller: s.sellerA, name: "Lamp", price: "100", qty: 1})
	second := s.seed(s.buyer, t0.Add(time.Hour),
		line{seller: s.sellerA, name: "Lamp", price: "100", qty: 1},
		line{seller: s.sellerB, name: "Mug", price: "10", qty: 3},
	)
	third := s.seed(s.buyer, t0.Add(2*time.Hour), line{seller: s.sellerB, name: "Mug", price: "10", qty: 1})

	stranger, err := order.NewBuyer(kernel.NewUUID())
	s.Require().NoError(err)
	s.seed(stranger, t0.Add(3*time.Hour), line{seller: s.sellerA, name: "Lamp", price: "100", qty: 1})

	handler := queries.NewListBuyerOrdersQueryHandler(s.db)

	query, err := queries.NewListBuyerOrdersQuery(s.buyer.UserID, 0)
	s.Require().NoError(err)
	all, err := handler.Handle(s.T().Context(), query)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal(third.ID(), all[0].ID)
	s.Equal(second.ID(), all[1].ID)
	s.Equal(first.ID(), all[2].ID)
	s.Equal(2, all[1].ItemCount)
	s.Equal("180.00", all[1].Total.String())
	s.Equal(order.StatusPending, all[1].Status)
	s.True(all[1].CreatedAt.Equal(t0.Add(time.Hour)))

	query, err = queries.NewListBuyerOrdersQuery(s.buyer.UserID, 2)
	s.Require().NoError(err)
	page, err := handler.Handle(s.T().Context(), query)
	s.Require().NoError(err)
	s.Len(page, 2)
}

func (s *QueriesTestSuite) TestListBuyerOrders_Empty() {
	query, err := queries.NewListBuyerOrdersQuery(s.buyer.UserID, 5)
	s.Require().NoError(err)

	result, err := queries.NewListBuyerOrdersQueryHandler(s.db).Handle(s.T().Context(), query)
	s.Require().NoError(err)
	s.NotNil(result)
	s.Empty(result)
}

func (s *QueriesTestSuite) TestListSellerOrders_FiltersItems() {
	mixed := s.mixedOrder()
	s.seed(s.buyer, t0.Add(time.Hour), line{seller: s.sellerB, name: "Mug", price: "15.50", qty: 4})

	handler := queries.NewListSellerOrdersQueryHandler(s.db)

	query, err := queries.NewListSellerOrdersQuery(s.sellerA.SellerID, 10)
	s.Require().NoError(err)
	result, err := handler.Handle(s.T().Context(), query)
	s.Require().NoError(err)
	s.Require().Len(result, 1)
	s.Equal(mixed.ID(), result[0].ID)
	s.Require().Len(result[0].Items, 1)
	s.Equal("Lamp", result[0].Items[0].Name)
	s.Equal(2, result[0].Items[0].Quantity)
	s.Equal(order.ItemPending, result[0].Items[0].Status)
	s.Equal("200.00", result[0].Subtotal.String())

	query, err = queries.NewListSellerOrdersQuery(s.sellerB.SellerID, 10)
	s.Require().NoError(err)
	result, err = handler.Handle(s.T().Context(), query)
	s.Require().NoError(err)
	s.Require().Len(result, 2)
	s.Equal("62.00", result[0].Subtotal.String())
	s.Equal("15.50", result[1].Subtotal.String())
}

func (s *QueriesTestSuite) TestCountOrdersByStatus() {
	s.mixedOrder()
	processing := s.mixedOrder()
	itemID := processing.ItemsForSeller(s.sellerA.SellerID)[0].ID
	s.Require().NoError(processing.StartProcessing(s.sellerA, itemID, t0.Add(time.Hour)))
	s.Require().NoError(s.orders.Update(s.T().Context(), processing))

	counts, err := queries.NewCountOrdersByStatusQueryHandler(s.db).
		Handle(s.T().Context(), queries.NewCountOrdersByStatusQuery())
	s.Require().NoError(err)

	s.Len(counts, len(order.AllStatuses()))
	s.Equal(1, counts[order.StatusPending])
	s.Equal(1, counts[order.StatusPartialProcessing])
	s.Equal(0, counts[order.StatusDelivered])
	s.Equal(2, counts.Total())
}

func (s *QueriesTestSuite) TestHandlers_RejectUnconstructedQueries() {
	ctx := s.T().Context()

	_, err := queries.NewGetOrderQueryHandler(s.orders).Handle(ctx, queries.GetOrderQuery{})
	s.ErrorIs(err, queries.ErrGetOrderQueryIsNotConstructed)

	_, err = queries.NewListBuyerOrdersQueryHandler(s.db).Handle(ctx, queries.ListBuyerOrdersQuery{})
	s.ErrorIs(err, queries.ErrListBuyerOrdersQueryIsNotConstructed)

	_, err = queries.NewListSellerOrdersQueryHandler(s.db).Handle(ctx, queries.ListSellerOrdersQuery{})
	s.ErrorIs(err, queries.ErrListSellerOrdersQueryIsNotConstructed)

	_, err = queries.NewCountOrdersByStatusQueryHandler(s.db).Handle(ctx, queries.CountOrdersByStatusQuery{})
	s.ErrorIs(err, queries.ErrCountOrdersByStatusQueryIsNotConstructed)
}
