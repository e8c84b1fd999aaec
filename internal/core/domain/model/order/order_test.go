package order_test

import (
	"testing"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(),
		"ORD-20260901-0001",
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]order.Item{{Name: "Bulgogi Pizza", Quantity: 2, UnitPrice: 15900}},
		order.Pricing{Subtotal: 31800, DeliveryFee: 3000, Discount: 1000, Total: 33800},
		"12 Teheran-ro, Gangnam-gu",
		"no onions",
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("starts_new_with_pending_payment", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, order.New, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Nil(t, o.ConfirmedAt())
		assert.Nil(t, o.Rejection())
		assert.Zero(t, o.EstimatedCookingTime())
	})

	t.Run("requires_order_number", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "", kernel.NewUUID(), kernel.NewUUID(),
			[]order.Item{{Name: "x", Quantity: 1, UnitPrice: 100}},
			order.Pricing{Total: 100}, "addr", "", time.Now(),
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires_items", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "ORD-1", kernel.NewUUID(), kernel.NewUUID(),
			nil, order.Pricing{Total: 100}, "addr", "", time.Now(),
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_non_positive_quantity", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "ORD-1", kernel.NewUUID(), kernel.NewUUID(),
			[]order.Item{{Name: "x", Quantity: 0, UnitPrice: 100}},
			order.Pricing{Total: 100}, "addr", "", time.Now(),
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	var notConstructed order.Order

	require.ErrorIs(t, notConstructed.Validate(), order.ErrOrderIsNotConstructed)
	require.NoError(t, newTestOrder(t).Validate())
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("new_to_confirmed_stamps_confirmed_at", func(t *testing.T) {
		o := newTestOrder(t)
		now := time.Now()

		require.NoError(t, o.ChangeStatus(order.Confirmed, now))

		assert.Equal(t, order.Confirmed, o.Status())
		require.NotNil(t, o.ConfirmedAt())
		assert.Equal(t, now, *o.ConfirmedAt())
	})

	t.Run("full_happy_path_stamps_each_timestamp_once", func(t *testing.T) {
		o := newTestOrder(t)
		now := time.Now()

		require.NoError(t, o.ChangeStatus(order.Confirmed, now))
		require.NoError(t, o.ChangeStatus(order.Preparing, now.Add(time.Minute)))
		require.NoError(t, o.ChangeStatus(order.Ready, now.Add(2*time.Minute)))
		require.NoError(t, o.ChangeStatus(order.Completed, now.Add(3*time.Minute)))

		assert.Equal(t, order.Completed, o.Status())
		assert.Equal(t, now, *o.ConfirmedAt())
		assert.Equal(t, now.Add(time.Minute), *o.CookingStartedAt())
		assert.Equal(t, now.Add(2*time.Minute), *o.CookingCompletedAt())
		assert.Equal(t, now.Add(3*time.Minute), *o.DeliveredAt())
	})

	t.Run("illegal_edge_leaves_order_unchanged", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ChangeStatus(order.Ready, time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.New, o.Status())
		assert.Nil(t, o.CookingCompletedAt())
	})

	t.Run("rejected_target_requires_reject_method", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ChangeStatus(order.Rejected, time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.New, o.Status())
	})
}

func TestOrder_Reject(t *testing.T) {
	t.Run("rejects_new_order_with_record", func(t *testing.T) {
		o := newTestOrder(t)
		now := time.Now()

		require.NoError(t, o.Reject(order.ReasonOutOfStock, "no dough left", now))

		assert.Equal(t, order.Rejected, o.Status())
		require.NotNil(t, o.RejectedAt())
		assert.Equal(t, now, *o.RejectedAt())
		require.NotNil(t, o.Rejection())
		assert.Equal(t, order.ReasonOutOfStock, o.Rejection().Reason())
		assert.Equal(t, "no dough left", o.Rejection().Detail())
	})

	t.Run("rejects_confirmed_order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ChangeStatus(order.Confirmed, time.Now()))

		require.NoError(t, o.Reject(order.ReasonTooBusy, "", time.Now()))
		assert.Equal(t, order.Rejected, o.Status())
	})

	t.Run("preparing_order_cannot_be_rejected", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ChangeStatus(order.Confirmed, time.Now()))
		require.NoError(t, o.ChangeStatus(order.Preparing, time.Now()))

		err := o.Reject(order.ReasonOther, "", time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Preparing, o.Status())
		assert.Nil(t, o.Rejection())
	})

	t.Run("invalid_reason_rejected", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.Reject(order.RejectionReason("NO_SUCH_REASON"), "", time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.New, o.Status())
	})
}

func TestOrder_SetCookingTime(t *testing.T) {
	t.Run("allowed_while_new_confirmed_preparing", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.SetCookingTime(20))
		assert.Equal(t, 20, o.EstimatedCookingTime())

		require.NoError(t, o.ChangeStatus(order.Confirmed, time.Now()))
		require.NoError(t, o.SetCookingTime(25))

		require.NoError(t, o.ChangeStatus(order.Preparing, time.Now()))
		require.NoError(t, o.SetCookingTime(30))
		assert.Equal(t, 30, o.EstimatedCookingTime())
	})

	t.Run("window_closed_once_ready", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ChangeStatus(order.Confirmed, time.Now()))
		require.NoError(t, o.ChangeStatus(order.Preparing, time.Now()))
		require.NoError(t, o.ChangeStatus(order.Ready, time.Now()))

		err := o.SetCookingTime(10)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("minutes_out_of_range", func(t *testing.T) {
		o := newTestOrder(t)

		require.ErrorIs(t, o.SetCookingTime(0), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, o.SetCookingTime(500), errs.ErrValueIsOutOfRange)
	})
}

func TestOrder_IsUrgent(t *testing.T) {
	threshold := 30 * time.Minute

	t.Run("fresh_new_order_is_not_urgent", func(t *testing.T) {
		o := newTestOrder(t)
		assert.False(t, o.IsUrgent(time.Now(), threshold))
	})

	t.Run("old_new_order_is_urgent", func(t *testing.T) {
		o := newTestOrder(t)
		assert.True(t, o.IsUrgent(time.Now().Add(31*time.Minute), threshold))
	})

	t.Run("old_preparing_order_is_not_urgent", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ChangeStatus(order.Confirmed, time.Now()))
		require.NoError(t, o.ChangeStatus(order.Preparing, time.Now()))

		assert.False(t, o.IsUrgent(time.Now().Add(time.Hour), threshold))
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores_rejected_order", func(t *testing.T) {
		now := time.Now()
		rejection, err := order.NewRejection(order.ReasonOutOfStock, "detail", now)
		require.NoError(t, err)

		o, err := order.RestoreOrder(order.RestoreParams{
			ID:              kernel.NewUUID(),
			OrderNumber:     "ORD-1",
			RestaurantID:    kernel.NewUUID(),
			CustomerID:      kernel.NewUUID(),
			Status:          order.Rejected,
			PaymentStatus:   order.PaymentCompleted,
			Items:           []order.Item{{Name: "x", Quantity: 1, UnitPrice: 100}},
			Pricing:         order.Pricing{Total: 100},
			DeliveryAddress: "addr",
			CreatedAt:       now,
			RejectedAt:      &now,
			Rejection:       &rejection,
		})

		require.NoError(t, err)
		assert.Equal(t, order.Rejected, o.Status())
		assert.Equal(t, order.ReasonOutOfStock, o.Rejection().Reason())
	})

	t.Run("rejection_record_without_rejected_status_fails", func(t *testing.T) {
		now := time.Now()
		rejection, err := order.NewRejection(order.ReasonOther, "", now)
		require.NoError(t, err)

		_, err = order.RestoreOrder(order.RestoreParams{
			ID:            kernel.NewUUID(),
			OrderNumber:   "ORD-1",
			RestaurantID:  kernel.NewUUID(),
			CustomerID:    kernel.NewUUID(),
			Status:        order.New,
			PaymentStatus: order.PaymentPending,
			CreatedAt:     now,
			Rejection:     &rejection,
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("invalid_status_fails", func(t *testing.T) {
		_, err := order.RestoreOrder(order.RestoreParams{
			ID:            kernel.NewUUID(),
			OrderNumber:   "ORD-1",
			RestaurantID:  kernel.NewUUID(),
			CustomerID:    kernel.NewUUID(),
			Status:        order.Unknown,
			PaymentStatus: order.PaymentPending,
			CreatedAt:     time.Now(),
		})
		require.Error(t, err)
	})
}

func TestRejectionReason_CustomerMessage(t *testing.T) {
	assert.Contains(t, order.ReasonOutOfStock.CustomerMessage(), "out of stock")
	assert.NotEmpty(t, order.ReasonOther.CustomerMessage())
}

func TestNewCookingTimeEvent(t *testing.T) {
	orderID := kernel.NewUUID()
	ownerID := kernel.NewUUID()
	now := time.Now()

	entry := order.NewCookingTimeEvent(orderID, order.Confirmed, ownerID, 25, "busy evening", now)

	assert.Equal(t, order.KindCookingTimeSet, entry.Kind)
	assert.Equal(t, entry.FromStatus, entry.ToStatus)
	assert.Contains(t, entry.Reason, "25 minutes")
	assert.Contains(t, entry.Reason, "busy evening")
}
