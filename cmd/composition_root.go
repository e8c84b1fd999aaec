package cmd

import (
	"log/slog"

	"orderdesk/internal/adapters/out/postgres"
	"orderdesk/internal/core/application/access"
	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	audit      ports.AuditTrail
	relay      ports.NotificationRelay
	payments   ports.PaymentGateway
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	audit ports.AuditTrail,
	relay ports.NotificationRelay,
	payments ports.PaymentGateway,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		audit:      audit,
		relay:      relay,
		payments:   payments,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) guard() access.Guard {
	return access.NewGuard(c.uowFactory.Create().RestaurantRepository())
}

func (c *CompositionRoot) sideEffects() commands.SideEffects {
	return commands.NewSideEffects(c.audit, c.relay, c.logger, c.config.SideEffectTimeout)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.guard(), c.sideEffects())
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	return commands.NewRejectOrderCommandHandler(
		c.orderUoWFactory(), c.guard(), c.payments, c.sideEffects(), c.logger,
	)
}

func (c *CompositionRoot) CreateSetCookingTimeCommandHandler() commands.SetCookingTimeCommandHandler {
	return commands.NewSetCookingTimeCommandHandler(c.orderUoWFactory(), c.guard(), c.sideEffects())
}

func (c *CompositionRoot) CreateBulkOrderActionCommandHandler() commands.BulkOrderActionCommandHandler {
	return commands.NewBulkOrderActionCommandHandler(
		c.uowFactory.Create().OrderRepository(),
		c.guard(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateRejectOrderCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB, c.guard())
}

func (c *CompositionRoot) CreateGetOrderDetailQueryHandler() queries.GetOrderDetailQueryHandler {
	return queries.NewGetOrderDetailQueryHandler(
		c.uowFactory.Create().OrderRepository(), c.audit, c.guard(),
	)
}

func (c *CompositionRoot) CreateGetPendingOrdersQueryHandler() queries.GetPendingOrdersQueryHandler {
	return queries.NewGetPendingOrdersQueryHandler(c.gormDB, c.guard())
}

func (c *CompositionRoot) CreateGetOrderStatsQueryHandler() queries.GetOrderStatsQueryHandler {
	return queries.NewGetOrderStatsQueryHandler(c.gormDB, c.guard())
}

func (c *CompositionRoot) CreateGetUrgentOrdersQueryHandler() queries.GetUrgentOrdersQueryHandler {
	return queries.NewGetUrgentOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetUrgentOrdersQueryHandler(), c.relay, c.config.UrgentAfter, c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
