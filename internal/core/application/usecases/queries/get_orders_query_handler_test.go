package queries_test

import (
	"context"
	"testing"
	"time"

	"orderdesk/internal/adapters/out/postgres/orderrepo"
	"orderdesk/internal/adapters/out/postgres/restaurantrepo"
	"orderdesk/internal/core/application/access"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/model/restaurant"
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

type OrderQueriesTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB

	orderRepo      *orderrepo.GormOrderRepository
	restaurantRepo *restaurantrepo.GormRestaurantRepository
	guard          access.Guard

	ownerID    kernel.UUID
	restaurant *restaurant.Restaurant
}

func (suite *OrderQueriesTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &restaurantrepo.RestaurantDTO{})
	suite.Require().NoError(err)

	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
	suite.restaurantRepo = restaurantrepo.NewGormRestaurantRepository(db)
	suite.guard = access.NewGuard(suite.restaurantRepo)
}

func (suite *OrderQueriesTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderQueriesTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, restaurants CASCADE").Error
	suite.Require().NoError(err)

	suite.ownerID = kernel.NewUUID()
	r, err := restaurant.NewRestaurant(kernel.NewUUID(), suite.ownerID, "Seongsu Diner")
	suite.Require().NoError(err)
	err = suite.restaurantRepo.Add(context.Background(), r)
	suite.Require().NoError(err)
	suite.restaurant = r
}

// addOrder persists an order for the suite restaurant at the given status
// and age.
func (suite *OrderQueriesTestSuite) addOrder(orderNumber string, status order.Status, age time.Duration) *order.Order {
	o, err := order.NewOrder(
		kernel.NewUUID(),
		orderNumber,
		suite.restaurant.ID(),
		kernel.NewUUID(),
		[]order.Item{{Name: "Pork Cutlet", Quantity: 1, UnitPrice: 12000}},
		order.Pricing{Subtotal: 12000, DeliveryFee: 2000, Total: 14000},
		"5 Seongsu-ro",
		"",
		time.Now().UTC().Add(-age),
	)
	suite.Require().NoError(err)

	path := map[order.Status][]order.Status{
		order.Confirmed: {order.Confirmed},
		order.Preparing: {order.Confirmed, order.Preparing},
		order.Ready:     {order.Confirmed, order.Preparing, order.Ready},
		order.Completed: {order.Confirmed, order.Preparing, order.Ready, order.Completed},
	}
	for _, next := range path[status] {
		err = o.ChangeStatus(next, time.Now())
		suite.Require().NoError(err)
	}

	err = suite.orderRepo.Add(context.Background(), o)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderQueriesTestSuite) TestGetOrders_ReturnsNewestFirst() {
	old := suite.addOrder("ORD-20260901-2001", order.New, 2*time.Hour)
	recent := suite.addOrder("ORD-20260901-2002", order.Confirmed, 5*time.Minute)

	handler := queries.NewGetOrdersQueryHandler(suite.db, suite.guard)
	query, err := queries.NewGetOrdersQuery(suite.ownerID, suite.restaurant.ID(), order.Unknown, 0, 0)
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].ID.IsEqual(recent.ID()))
	suite.True(result[1].ID.IsEqual(old.ID()))
	suite.Equal(1, result[0].ItemCount)
	suite.Equal(int64(14000), result[0].Total)
}

func (suite *OrderQueriesTestSuite) TestGetOrders_FiltersByStatus() {
	suite.addOrder("ORD-20260901-2003", order.New, time.Minute)
	confirmed := suite.addOrder("ORD-20260901-2004", order.Confirmed, time.Minute)

	handler := queries.NewGetOrdersQueryHandler(suite.db, suite.guard)
	query, err := queries.NewGetOrdersQuery(suite.ownerID, suite.restaurant.ID(), order.Confirmed, 0, 0)
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID.IsEqual(confirmed.ID()))
	suite.Equal(order.Confirmed, result[0].Status)
}

func (suite *OrderQueriesTestSuite) TestGetOrders_StrangerIsForbidden() {
	suite.addOrder("ORD-20260901-2005", order.New, time.Minute)

	handler := queries.NewGetOrdersQueryHandler(suite.db, suite.guard)
	query, err := queries.NewGetOrdersQuery(kernel.NewUUID(), suite.restaurant.ID(), order.Unknown, 0, 0)
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrForbidden)
}

func (suite *OrderQueriesTestSuite) TestGetPendingOrders_OldestFirstWithUrgencyFlag() {
	overdue := suite.addOrder("ORD-20260901-2006", order.New, time.Hour)
	fresh := suite.addOrder("ORD-20260901-2007", order.Confirmed, time.Minute)
	suite.addOrder("ORD-20260901-2008", order.Completed, 3*time.Hour)

	handler := queries.NewGetPendingOrdersQueryHandler(suite.db, suite.guard)
	query, err := queries.NewGetPendingOrdersQuery(suite.ownerID, suite.restaurant.ID(), 30*time.Minute)
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].ID.IsEqual(overdue.ID()))
	suite.True(result[0].IsUrgent)
	suite.True(result[1].ID.IsEqual(fresh.ID()))
	suite.False(result[1].IsUrgent)
}

func (suite *OrderQueriesTestSuite) TestGetOrderStats_CountsAndRevenue() {
	suite.addOrder("ORD-20260901-2009", order.New, time.Minute)
	suite.addOrder("ORD-20260901-2010", order.Completed, 2*time.Hour)
	suite.addOrder("ORD-20260901-2011", order.Completed, 3*time.Hour)

	rejected := suite.addOrder("ORD-20260901-2012", order.New, time.Hour)
	err := rejected.Reject(order.ReasonTooBusy, "", time.Now())
	suite.Require().NoError(err)
	err = suite.orderRepo.UpdateStatusGuarded(context.Background(), rejected, order.New)
	suite.Require().NoError(err)

	handler := queries.NewGetOrderStatsQueryHandler(suite.db, suite.guard)
	query, err := queries.NewGetOrderStatsQuery(suite.ownerID, suite.restaurant.ID(), queries.PeriodWeek)
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(4, result.TotalOrders)
	suite.Equal(1, result.CountsByStatus[order.New])
	suite.Equal(2, result.CountsByStatus[order.Completed])
	suite.Equal(1, result.CountsByStatus[order.Rejected])
	suite.Equal(int64(28000), result.CompletedRevenue)
	suite.Greater(result.MaxPendingWait, result.AvgPendingWait-time.Second)
}

func (suite *OrderQueriesTestSuite) TestGetOrderStats_WaitCoversAllInFlightOrders() {
	suite.addOrder("ORD-20260901-2015", order.New, 5*time.Minute)
	suite.addOrder("ORD-20260901-2016", order.Preparing, 4*time.Hour)
	suite.addOrder("ORD-20260901-2017", order.Completed, 6*time.Hour)

	handler := queries.NewGetOrderStatsQueryHandler(suite.db, suite.guard)
	query, err := queries.NewGetOrderStatsQuery(suite.ownerID, suite.restaurant.ID(), queries.PeriodWeek)
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	// The Preparing order drives the maximum; the Completed one is terminal
	// and must not contribute at all.
	suite.Greater(result.MaxPendingWait, 3*time.Hour)
	suite.Less(result.MaxPendingWait, 5*time.Hour)
	suite.Greater(result.AvgPendingWait, 5*time.Minute)
	suite.Less(result.AvgPendingWait, result.MaxPendingWait)
}

func (suite *OrderQueriesTestSuite) TestGetUrgentOrders_JoinsOwnerAcrossRestaurants() {
	overdue := suite.addOrder("ORD-20260901-2013", order.New, time.Hour)
	suite.addOrder("ORD-20260901-2014", order.New, time.Minute)

	handler := queries.NewGetUrgentOrdersQueryHandler(suite.db)
	query, err := queries.NewGetUrgentOrdersQuery(30 * time.Minute)
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID.IsEqual(overdue.ID()))
	suite.True(result[0].OwnerID.IsEqual(suite.ownerID))
	suite.True(result[0].RestaurantID.IsEqual(suite.restaurant.ID()))
}

func TestOrderQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueriesTestSuite))
}
