package cmd

import (
	"log/slog"

	"resto/internal/adapters/out/postgres"
	"resto/internal/core/application/usecases/commands"
	"resto/internal/core/application/usecases/queries"
	"resto/internal/core/domain/services"
	"resto/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	imageStore ports.ImageStore
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, imageStore ports.ImageStore, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		imageStore: imageStore,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateAdvanceStatusCommandHandler() commands.AdvanceStatusCommandHandler {
	return commands.NewAdvanceStatusCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateStartAutoAssignCommandHandler() commands.StartAutoAssignCommandHandler {
	return commands.NewStartAutoAssignCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateCancelAutoAssignCommandHandler() commands.CancelAutoAssignCommandHandler {
	return commands.NewCancelAutoAssignCommandHandler(c.createOrderUoWFactory())
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	return commands.NewAssignRiderCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateApproveRefundCommandHandler() commands.ApproveRefundCommandHandler {
	return commands.NewApproveRefundCommandHandler(c.createOrderUoWFactory(), c.imageStore, c.logger)
}

func (c *CompositionRoot) CreateRejectRefundCommandHandler() commands.RejectRefundCommandHandler {
	return commands.NewRejectRefundCommandHandler(c.createOrderUoWFactory(), c.imageStore, c.logger)
}

func (c *CompositionRoot) CreateRequestExchangeCommandHandler() commands.RequestExchangeCommandHandler {
	return commands.NewRequestExchangeCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateDispatchRidersCommandHandler() commands.DispatchRidersCommandHandler {
	return commands.NewDispatchRidersCommandHandler(c.createUoWFactory(), services.NewRiderPicker())
}

func (c *CompositionRoot) CreateReconcileDriversCommandHandler() commands.ReconcileDriversCommandHandler {
	return commands.NewReconcileDriversCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriversQueryHandler() queries.GetDriversQueryHandler {
	return queries.NewGetDriversQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetNeedsAssignmentCountQueryHandler() queries.GetNeedsAssignmentCountQueryHandler {
	return queries.NewGetNeedsAssignmentCountQueryHandler(c.gormDB)
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) createOrderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
