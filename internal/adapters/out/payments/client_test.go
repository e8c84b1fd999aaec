package payments_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"orderdesk/internal/adapters/out/payments"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Client_GetPaymentByOrderID_DecodesPayment(t *testing.T) {
	orderID := kernel.NewUUID()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/payments", r.URL.Path)
		assert.Equal(t, orderID.String(), r.URL.Query().Get("orderId"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"paymentKey": "pay_777",
			"orderId":    orderID.String(),
			"amount":     21500,
			"status":     "COMPLETED",
		})
	}))
	defer srv.Close()

	client := payments.NewClient(srv.URL, "test-key")

	payment, err := client.GetPaymentByOrderID(context.Background(), orderID)

	require.NoError(t, err)
	assert.Equal(t, "pay_777", payment.PaymentKey)
	assert.True(t, payment.OrderID.IsEqual(orderID))
	assert.Equal(t, int64(21500), payment.Amount)
	assert.Equal(t, "COMPLETED", payment.Status)
}

func Test_Client_GetPaymentByOrderID_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := payments.NewClient(srv.URL, "")

	_, err := client.GetPaymentByOrderID(context.Background(), kernel.NewUUID())

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func Test_Client_CancelPayment_PostsRefund(t *testing.T) {
	var got struct {
		Reason string `json:"reason"`
		Amount int64  `json:"amount"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payments/pay_777/cancel", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := payments.NewClient(srv.URL, "")

	err := client.CancelPayment(context.Background(), "pay_777", "OUT_OF_STOCK", 21500)

	require.NoError(t, err)
	assert.Equal(t, "OUT_OF_STOCK", got.Reason)
	assert.Equal(t, int64(21500), got.Amount)
}

func Test_Client_CancelPayment_ServerErrorIsExternalServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := payments.NewClient(srv.URL, "")

	err := client.CancelPayment(context.Background(), "pay_777", "TOO_BUSY", 100)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrExternalService)
}
