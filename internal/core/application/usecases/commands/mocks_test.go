package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"orderdesk/internal/core/application/access"
	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/model/restaurant"
	"orderdesk/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatusGuarded(
	ctx context.Context, o *order.Order, expected order.Status,
) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateCookingTime(
	ctx context.Context, o *order.Order, allowed []order.Status,
) error {
	args := m.Called(ctx, o, allowed)
	return args.Error(0)
}

type MockRestaurantRepository struct{ mock.Mock }

func (m *MockRestaurantRepository) Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restaurant.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) Add(ctx context.Context, r *restaurant.Restaurant) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockAuditTrail struct{ mock.Mock }

func (m *MockAuditTrail) Append(ctx context.Context, entry order.StatusChange) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditTrail) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.StatusChange, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.StatusChange), args.Error(1)
}

type MockNotificationRelay struct{ mock.Mock }

func (m *MockNotificationRelay) NotifyOwner(
	ctx context.Context, ownerID, restaurantID kernel.UUID, n ports.Notification,
) error {
	args := m.Called(ctx, ownerID, restaurantID, n)
	return args.Error(0)
}

func (m *MockNotificationRelay) NotifyCustomer(
	ctx context.Context, customerID kernel.UUID, n ports.Notification,
) error {
	args := m.Called(ctx, customerID, n)
	return args.Error(0)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) GetPaymentByOrderID(ctx context.Context, orderID kernel.UUID) (ports.Payment, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(ports.Payment), args.Error(1)
}

func (m *MockPaymentGateway) CancelPayment(
	ctx context.Context, paymentKey, reason string, amount int64,
) error {
	args := m.Called(ctx, paymentKey, reason, amount)
	return args.Error(0)
}

// testLogger discards output; the handlers only log best-effort failures.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixture wires a full handler environment around one order and one
// restaurant owned by fixture.ownerID.
type fixture struct {
	ownerID      kernel.UUID
	restaurantID kernel.UUID
	rest         *restaurant.Restaurant

	orders      *MockOrderRepository
	restaurants *MockRestaurantRepository
	uow         *MockOrderUoW
	uowFactory  *MockOrderUoWFactory
	audit       *MockAuditTrail
	relay       *MockNotificationRelay
	payments    *MockPaymentGateway
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ownerID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()
	rest, err := restaurant.NewRestaurant(restaurantID, ownerID, "Han River Kitchen")
	require.NoError(t, err)

	return &fixture{
		ownerID:      ownerID,
		restaurantID: restaurantID,
		rest:         rest,
		orders:       new(MockOrderRepository),
		restaurants:  new(MockRestaurantRepository),
		uow:          new(MockOrderUoW),
		uowFactory:   new(MockOrderUoWFactory),
		audit:        new(MockAuditTrail),
		relay:        new(MockNotificationRelay),
		payments:     new(MockPaymentGateway),
	}
}

func (f *fixture) guard() access.Guard {
	return access.NewGuard(f.restaurants)
}

func (f *fixture) effects() commands.SideEffects {
	return commands.NewSideEffects(f.audit, f.relay, testLogger(), time.Second)
}

// newOrder creates an order belonging to the fixture's restaurant and walks
// it to the requested status.
func (f *fixture) newOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(),
		"ORD-20260901-0001",
		f.restaurantID,
		kernel.NewUUID(),
		[]order.Item{{Name: "Kimchi Fried Rice", Quantity: 1, UnitPrice: 11000}},
		order.Pricing{Subtotal: 11000, DeliveryFee: 2500, Total: 13500},
		"77 Itaewon-ro",
		"",
		time.Now(),
	)
	require.NoError(t, err)

	path := map[order.Status][]order.Status{
		order.New:       {},
		order.Confirmed: {order.Confirmed},
		order.Preparing: {order.Confirmed, order.Preparing},
		order.Ready:     {order.Confirmed, order.Preparing, order.Ready},
		order.Completed: {order.Confirmed, order.Preparing, order.Ready, order.Completed},
	}
	for _, next := range path[status] {
		require.NoError(t, o.ChangeStatus(next, time.Now()))
	}
	return o
}

// paidOrder restores an order whose payment was captured.
func (f *fixture) paidOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	base := f.newOrder(t, status)
	o, err := order.RestoreOrder(order.RestoreParams{
		ID:              base.ID(),
		OrderNumber:     base.OrderNumber(),
		RestaurantID:    base.RestaurantID(),
		CustomerID:      base.CustomerID(),
		Status:          base.Status(),
		PaymentStatus:   order.PaymentCompleted,
		Items:           base.Items(),
		Pricing:         base.Pricing(),
		DeliveryAddress: base.DeliveryAddress(),
		CreatedAt:       base.CreatedAt(),
		ConfirmedAt:     base.ConfirmedAt(),
	})
	require.NoError(t, err)
	return o
}

// expectTx sets up the usual Begin/Get/Commit/Rollback sequence.
func (f *fixture) expectTx(ctx context.Context, o *order.Order) {
	f.uowFactory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.orders).Once()
	f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
}

// expectOwnedRestaurant lets the guard resolve the fixture restaurant.
func (f *fixture) expectOwnedRestaurant(ctx context.Context) {
	f.restaurants.On("Get", ctx, f.restaurantID).Return(f.rest, nil).Once()
}
