package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"orderdesk/internal/adapters/out/postgres/orderrepo"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type GormOrderRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
}

func (suite *GormOrderRepositoryTestSuite) SetupSuite() {
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

	suite.repo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GormOrderRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GormOrderRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GormOrderRepositoryTestSuite) newOrder(orderNumber string) *order.Order {
	o, err := order.NewOrder(
		kernel.NewUUID(),
		orderNumber,
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]order.Item{
			{Name: "Tteokbokki", Quantity: 2, UnitPrice: 6500},
			{Name: "Fish Cake Skewer", Quantity: 4, UnitPrice: 1000},
		},
		order.Pricing{Subtotal: 17000, DeliveryFee: 3000, Discount: 1000, Total: 19000},
		"12 Mapo-daero",
		"extra spicy",
		time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)
	return o
}

func (suite *GormOrderRepositoryTestSuite) TestAddAndGet_RoundTripsAggregate() {
	ctx := context.Background()
	o := suite.newOrder("ORD-20260901-1001")

	err := suite.repo.Add(ctx, o)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.True(loaded.IsEqual(o))
	suite.Equal(o.OrderNumber(), loaded.OrderNumber())
	suite.Equal(order.New, loaded.Status())
	suite.Equal(order.PaymentPending, loaded.PaymentStatus())
	suite.Equal(o.Items(), loaded.Items())
	suite.Equal(o.Pricing(), loaded.Pricing())
	suite.Equal("extra spicy", loaded.SpecialRequests())
	suite.Nil(loaded.ConfirmedAt())
	suite.Nil(loaded.Rejection())
}

func (suite *GormOrderRepositoryTestSuite) TestGet_UnknownID_ReturnsNotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GormOrderRepositoryTestSuite) TestUpdateStatusGuarded_PersistsTransition() {
	ctx := context.Background()
	o := suite.newOrder("ORD-20260901-1002")
	err := suite.repo.Add(ctx, o)
	suite.Require().NoError(err)

	expected := o.Status()
	err = o.ChangeStatus(order.Confirmed, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)

	err = suite.repo.UpdateStatusGuarded(ctx, o, expected)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, loaded.Status())
	suite.NotNil(loaded.ConfirmedAt())
}

func (suite *GormOrderRepositoryTestSuite) TestUpdateStatusGuarded_StaleStatus_ReturnsConflict() {
	ctx := context.Background()
	o := suite.newOrder("ORD-20260901-1003")
	err := suite.repo.Add(ctx, o)
	suite.Require().NoError(err)

	// First caller wins the transition.
	winner, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	err = winner.ChangeStatus(order.Confirmed, time.Now())
	suite.Require().NoError(err)
	err = suite.repo.UpdateStatusGuarded(ctx, winner, order.New)
	suite.Require().NoError(err)

	// Second caller still holds the NEW snapshot; its guard misses.
	err = o.ChangeStatus(order.Confirmed, time.Now())
	suite.Require().NoError(err)
	err = suite.repo.UpdateStatusGuarded(ctx, o, order.New)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrConflict)

	loaded, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, loaded.Status())
}

func (suite *GormOrderRepositoryTestSuite) TestUpdateStatusGuarded_PersistsRejection() {
	ctx := context.Background()
	o := suite.newOrder("ORD-20260901-1004")
	err := suite.repo.Add(ctx, o)
	suite.Require().NoError(err)

	err = o.Reject(order.ReasonOutOfStock, "no more tteok", time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)

	err = suite.repo.UpdateStatusGuarded(ctx, o, order.New)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Rejected, loaded.Status())
	suite.Require().NotNil(loaded.Rejection())
	suite.Equal(order.ReasonOutOfStock, loaded.Rejection().Reason())
	suite.Equal("no more tteok", loaded.Rejection().Detail())
	suite.NotNil(loaded.RejectedAt())
}

func (suite *GormOrderRepositoryTestSuite) TestUpdateCookingTime_InsideWindow_Persists() {
	ctx := context.Background()
	o := suite.newOrder("ORD-20260901-1005")
	err := suite.repo.Add(ctx, o)
	suite.Require().NoError(err)

	err = o.SetCookingTime(40)
	suite.Require().NoError(err)

	err = suite.repo.UpdateCookingTime(ctx, o, []order.Status{order.New, order.Confirmed, order.Preparing})
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(40, loaded.EstimatedCookingTime())
}

func (suite *GormOrderRepositoryTestSuite) TestUpdateCookingTime_OutsideWindow_ReturnsConflict() {
	ctx := context.Background()
	o := suite.newOrder("ORD-20260901-1006")
	err := suite.repo.Add(ctx, o)
	suite.Require().NoError(err)

	// Another caller walks the order past the window.
	walker, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	for _, next := range []order.Status{order.Confirmed, order.Preparing, order.Ready} {
		prev := walker.Status()
		err = walker.ChangeStatus(next, time.Now())
		suite.Require().NoError(err)
		err = suite.repo.UpdateStatusGuarded(ctx, walker, prev)
		suite.Require().NoError(err)
	}

	err = o.SetCookingTime(25)
	suite.Require().NoError(err)
	err = suite.repo.UpdateCookingTime(ctx, o, []order.Status{order.New, order.Confirmed, order.Preparing})

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrConflict)
}

func TestGormOrderRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(GormOrderRepositoryTestSuite))
}
