package queries_test

import (
	"context"
	"testing"
	"time"

	"resto/internal/adapters/out/postgres/orderrepo"
	"resto/internal/core/application/usecases/queries"
	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/kernel"
	"resto/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetNeedsAssignmentCountQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetNeedsAssignmentCountQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetNeedsAssignmentCountQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetNeedsAssignmentCountQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetNeedsAssignmentCountQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetNeedsAssignmentCountQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetNeedsAssignmentCountQueryHandlerTestSuite) TestHandle_CountsOnlyWaitingOrders() {
	suite.seedWaitingOrder("riyadh-1")
	suite.seedWaitingOrder("riyadh-1")
	suite.seedPreparingOrder("riyadh-1")

	query, err := queries.NewGetNeedsAssignmentCountQuery(access.SuperAdminScope())
	suite.Require().NoError(err)

	count, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(int64(2), count)
}

func (suite *GetNeedsAssignmentCountQueryHandlerTestSuite) TestHandle_BranchAdmin_CountsOwnBranchesOnly() {
	suite.seedWaitingOrder("riyadh-1")
	suite.seedWaitingOrder("jeddah-1")
	suite.seedWaitingOrder("jeddah-1")

	query, err := queries.NewGetNeedsAssignmentCountQuery(branchAdminScope(suite.T(), "jeddah-1"))
	suite.Require().NoError(err)

	count, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(int64(2), count)
}

func (suite *GetNeedsAssignmentCountQueryHandlerTestSuite) TestHandle_EmptyScope_CountsZero() {
	suite.seedWaitingOrder("riyadh-1")

	query, err := queries.NewGetNeedsAssignmentCountQuery(branchAdminScope(suite.T()))
	suite.Require().NoError(err)

	count, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Zero(count)
}

func (suite *GetNeedsAssignmentCountQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetNeedsAssignmentCountQuery{}

	count, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Zero(count)
	suite.Contains(err.Error(), "must be created via NewGetNeedsAssignmentCountQuery constructor")
}

func (suite *GetNeedsAssignmentCountQueryHandlerTestSuite) seedWaitingOrder(branchIDs ...string) {
	ord, err := order.NewOrder(
		kernel.NewUUID(), order.Delivery, order.PaymentOnline, kernel.NewBranchSet(branchIDs...), 3000,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(ord.Accept())
	ord.CancelAutoAssign()
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), ord))
}

func (suite *GetNeedsAssignmentCountQueryHandlerTestSuite) seedPreparingOrder(branchIDs ...string) {
	ord, err := order.NewOrder(
		kernel.NewUUID(), order.Delivery, order.PaymentOnline, kernel.NewBranchSet(branchIDs...), 3000,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(ord.Accept())
	suite.Require().NoError(ord.StartAutoAssign())
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), ord))
}

func TestGetNeedsAssignmentCountQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetNeedsAssignmentCountQueryHandlerTestSuite))
}
