// Package http exposes the fulfillment use cases as a JSON API on echo.
//
// The caller's identity comes from gateway headers (see identify) and is passed
// explicitly to every command and query. Request bodies and parameters are checked
// against the embedded OpenAPI document before a handler runs.
package http

import (
	"context"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Handlers are the use cases the server routes to.
type Handlers struct {
	Checkout        commands.CheckoutCommandHandler
	ProcessItem     commands.ProcessItemCommandHandler
	ShipItem        commands.ShipItemCommandHandler
	CancelItem      commands.CancelItemCommandHandler
	ConfirmDelivery commands.ConfirmDeliveryCommandHandler
	RequestRefund   commands.RequestRefundCommandHandler
	ResolveRefund   commands.ResolveRefundCommandHandler

	GetOrder            queries.GetOrderQueryHandler
	ListBuyerOrders     queries.ListBuyerOrdersQueryHandler
	ListSellerOrders    queries.ListSellerOrdersQueryHandler
	CountOrdersByStatus queries.CountOrdersByStatusQueryHandler
}

// Server handles HTTP requests by calling the application use cases.
type Server struct {
	h        Handlers
	gatherer prometheus.Gatherer
	log      *logrus.Entry
}

// NewServer creates a server. Metrics are served from gatherer, or from the default
// registry when it is nil.
func NewServer(h Handlers, gatherer prometheus.Gatherer, logger *logrus.Entry) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Server{
		h:        h,
		gatherer: gatherer,
		log:      logger.WithField("component", "http"),
	}
}

// Register installs middleware and every route on e.
func (s *Server) Register(ctx context.Context, e *echo.Echo) error {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return err
	}

	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			entry := s.log.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.Round(time.Microsecond).String(),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Warn("request")
				return nil
			}
			entry.Debug("request")
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	e.GET("/openapi.yaml", serveOpenAPI)

	api := e.Group("/api/v1", identify, validateRequests(doc))

	buyer := requireRole(order.RoleBuyer)
	seller := requireRole(order.RoleSeller)

	api.POST("/checkout", s.Checkout, buyer)
	api.GET("/orders", s.ListBuyerOrders, buyer)
	api.GET("/orders/:orderId", s.GetOrder)

	item := api.Group("/orders/:orderId/items/:itemId")
	item.POST("/process", s.ProcessItem, seller)
	item.POST("/ship", s.ShipItem, seller)
	item.POST("/cancel", s.CancelItem, requireRole(order.RoleBuyer, order.RoleSeller))
	item.POST("/deliver", s.ConfirmDelivery, buyer)
	item.POST("/refund", s.RequestRefund, buyer)
	item.POST("/refund/resolve", s.ResolveRefund, seller)

	api.GET("/seller/orders", s.ListSellerOrders, seller)
	api.GET("/admin/orders/stats", s.CountOrdersByStatus, requireRole(order.RoleAdmin))
	return nil
}

// Checkout handles POST /api/v1/checkout - turns the caller's cart into an order.
func (s *Server) Checkout(c echo.Context) error {
	var req checkoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return s.fail(c, err)
	}

	actor := actorOf(c)
	address, err := kernel.NewAddress(
		req.ShippingAddress.Street,
		req.ShippingAddress.City,
		req.ShippingAddress.Country,
		req.ShippingAddress.PostalCode,
		req.ShippingAddress.PhoneNumber,
	)
	if err != nil {
		return s.fail(c, err)
	}
	method, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCheckoutCommand(actor.UserID, address, method, req.TransactionID)
	if err != nil {
		return s.fail(c, err)
	}
	placed, err := s.h.Checkout.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondWithOrder(c, http.StatusCreated, placed)
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetOrderQuery(orderID, actorOf(c))
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newOrder(view))
}

// ListBuyerOrders handles GET /api/v1/orders - the caller's orders, newest first.
func (s *Server) ListBuyerOrders(c echo.Context) error {
	limit, err := queryLimit(c)
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewListBuyerOrdersQuery(actorOf(c).UserID, limit)
	if err != nil {
		return s.fail(c, err)
	}
	summaries, err := s.h.ListBuyerOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newOrderSummaries(summaries))
}

// ListSellerOrders handles GET /api/v1/seller/orders.
func (s *Server) ListSellerOrders(c echo.Context) error {
	limit, err := queryLimit(c)
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewListSellerOrdersQuery(actorOf(c).SellerID, limit)
	if err != nil {
		return s.fail(c, err)
	}
	summaries, err := s.h.ListSellerOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newSellerOrders(summaries))
}

// CountOrdersByStatus handles GET /api/v1/admin/orders/stats.
func (s *Server) CountOrdersByStatus(c echo.Context) error {
	counts, err := s.h.CountOrdersByStatus.Handle(c.Request().Context(), queries.NewCountOrdersByStatusQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newStatusCounts(counts))
}

func (s *Server) ProcessItem(c echo.Context) error {
	orderID, itemID, err := itemPath(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewProcessItemCommand(orderID, itemID, actorOf(c))
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.h.ProcessItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondWithOrder(c, http.StatusOK, o)
}

func (s *Server) ShipItem(c echo.Context) error {
	orderID, itemID, err := itemPath(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req shipRequest
	if err = bindAndValidate(c, &req); err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewShipItemCommand(orderID, itemID, actorOf(c), req.Courier, req.TrackingNumber, req.ForPickUp)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.h.ShipItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondWithOrder(c, http.StatusOK, o)
}

func (s *Server) CancelItem(c echo.Context) error {
	orderID, itemID, err := itemPath(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req reasonRequest
	if err = bindAndValidate(c, &req); err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewCancelItemCommand(orderID, itemID, actorOf(c), req.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.h.CancelItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondWithOrder(c, http.StatusOK, o)
}

func (s *Server) ConfirmDelivery(c echo.Context) error {
	orderID, itemID, err := itemPath(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewConfirmDeliveryCommand(orderID, itemID, actorOf(c))
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.h.ConfirmDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondWithOrder(c, http.StatusOK, o)
}

func (s *Server) RequestRefund(c echo.Context) error {
	orderID, itemID, err := itemPath(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req reasonRequest
	if err = bindAndValidate(c, &req); err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewRequestRefundCommand(orderID, itemID, actorOf(c), req.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.h.RequestRefund.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondWithOrder(c, http.StatusOK, o)
}

func (s *Server) ResolveRefund(c echo.Context) error {
	orderID, itemID, err := itemPath(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req resolveRefundRequest
	if err = bindAndValidate(c, &req); err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewResolveRefundCommand(orderID, itemID, actorOf(c), *req.Approve)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.h.ResolveRefund.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondWithOrder(c, http.StatusOK, o)
}

// respondWithOrder renders o as the caller is allowed to see it.
func (s *Server) respondWithOrder(c echo.Context, status int, o *order.Order) error {
	view, err := queries.ViewFor(o, actorOf(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(status, newOrder(view))
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}
