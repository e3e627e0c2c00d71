package cmd

import (
	"errors"
	"fmt"
	"io"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/notify"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/metrics"
	"fulfillment/internal/pkg/clock"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	terms      order.Terms
	clock      ports.Clock
	registry   *prometheus.Registry
	metrics    *metrics.Fulfillment
	notifier   ports.Notifier
	closers    []io.Closer
	logger     *logrus.Entry
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *logrus.Entry) (*CompositionRoot, error) {
	fee, err := kernel.MoneyFromString(cfg.ShippingFee)
	if err != nil {
		return nil, fmt.Errorf("SHIPPING_FEE: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		terms:      order.Terms{ShippingFee: fee, RefundWindow: cfg.RefundWindow},
		clock:      clock.System{},
		registry:   registry,
		metrics:    metrics.New(registry),
		logger:     logger,
	}

	transport, err := c.createTransport()
	if err != nil {
		return nil, err
	}
	c.notifier = notify.NewDispatcher(transport, cfg.NotifyTimeout, c.clock, c.metrics, logger)
	return c, nil
}

func (c *CompositionRoot) createTransport() (ports.Notifier, error) {
	switch c.cfg.NotifyTransport {
	case TransportAMQP:
		n, err := notify.NewAMQPNotifier(c.cfg.RabbitMQURL, c.cfg.RabbitMQQueue)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, n)
		return n, nil
	case TransportKafka:
		n, err := notify.NewKafkaNotifier(c.cfg.KafkaBrokers, c.cfg.KafkaTopic)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, n)
		return n, nil
	default:
		return notify.NewLogNotifier(c.logger), nil
	}
}

// Close releases the notification transport.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i].Close())
	}
	return errors.Join(errs...)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCommandHandler(f, c.terms, c.notifier, c.clock, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateProcessItemCommandHandler() commands.ProcessItemCommandHandler {
	return commands.NewProcessItemCommandHandler(c.orderUoWFactory(), c.notifier, c.clock, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateShipItemCommandHandler() commands.ShipItemCommandHandler {
	return commands.NewShipItemCommandHandler(c.orderUoWFactory(), c.notifier, c.clock, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateCancelItemCommandHandler() commands.CancelItemCommandHandler {
	return commands.NewCancelItemCommandHandler(c.orderUoWFactory(), c.notifier, c.clock, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.orderUoWFactory(), c.notifier, c.clock, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateRequestRefundCommandHandler() commands.RequestRefundCommandHandler {
	return commands.NewRequestRefundCommandHandler(c.orderUoWFactory(), c.notifier, c.clock, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateResolveRefundCommandHandler() commands.ResolveRefundCommandHandler {
	return commands.NewResolveRefundCommandHandler(c.orderUoWFactory(), c.notifier, c.clock, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateAutoDeliverCommandHandler() commands.AutoDeliverCommandHandler {
	return commands.NewAutoDeliverCommandHandler(
		c.orderUoWFactory(), c.cfg.AutoDeliverAfter, c.cfg.SweepConcurrency, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateListBuyerOrdersQueryHandler() queries.ListBuyerOrdersQueryHandler {
	return queries.NewListBuyerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListSellerOrdersQueryHandler() queries.ListSellerOrdersQueryHandler {
	return queries.NewListSellerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCountOrdersByStatusQueryHandler() queries.CountOrdersByStatusQueryHandler {
	return queries.NewCountOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		Checkout:            c.CreateCheckoutCommandHandler(),
		ProcessItem:         c.CreateProcessItemCommandHandler(),
		ShipItem:            c.CreateShipItemCommandHandler(),
		CancelItem:          c.CreateCancelItemCommandHandler(),
		ConfirmDelivery:     c.CreateConfirmDeliveryCommandHandler(),
		RequestRefund:       c.CreateRequestRefundCommandHandler(),
		ResolveRefund:       c.CreateResolveRefundCommandHandler(),
		GetOrder:            c.CreateGetOrderQueryHandler(),
		ListBuyerOrders:     c.CreateListBuyerOrdersQueryHandler(),
		ListSellerOrders:    c.CreateListSellerOrdersQueryHandler(),
		CountOrdersByStatus: c.CreateCountOrdersByStatusQueryHandler(),
	}, c.registry, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	handler := c.CreateAutoDeliverCommandHandler()
	clockJob := jobs.NewFulfillmentClockJob(&handler, c.clock, c.cfg.SweepSchedule, c.logger)
	return jobs.NewJobManager(clockJob, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}
