// Package payments implements the PaymentGateway port against the payment
// collaborator's REST API.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// DefaultTimeout bounds one payment API call when the caller's context
// carries no tighter deadline.
const DefaultTimeout = 10 * time.Second

// Client calls the payment collaborator over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a payment API client. baseURL is the collaborator's
// root, e.g. "https://payments.internal".
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
}

// paymentResponse is the collaborator's payment representation.
type paymentResponse struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
	Status     string `json:"status"`
}

// cancelRequest is the refund payload. The collaborator treats a repeated
// cancel of the same payment key as a no-op, so retries are safe.
type cancelRequest struct {
	Reason string `json:"reason"`
	Amount int64  `json:"amount"`
}

// GetPaymentByOrderID resolves the payment captured for an order.
func (c *Client) GetPaymentByOrderID(ctx context.Context, orderID kernel.UUID) (ports.Payment, error) {
	endpoint := fmt.Sprintf("%s/payments?orderId=%s", c.baseURL, url.QueryEscape(orderID.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.Payment{}, errs.NewExternalServiceError("payments", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return ports.Payment{}, errs.NewExternalServiceError("payments", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ports.Payment{}, errs.NewObjectNotFoundError("payment", orderID.String())
	default:
		return ports.Payment{}, errs.NewExternalServiceError("payments",
			fmt.Errorf("payment lookup returned status %d", resp.StatusCode))
	}

	var body paymentResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.Payment{}, errs.NewExternalServiceError("payments", err)
	}

	id, err := kernel.UUIDFromString(body.OrderID)
	if err != nil {
		return ports.Payment{}, errs.NewExternalServiceError("payments", err)
	}

	return ports.Payment{
		PaymentKey: body.PaymentKey,
		OrderID:    id,
		Amount:     body.Amount,
		Status:     body.Status,
	}, nil
}

// CancelPayment refunds the given amount against a payment key.
func (c *Client) CancelPayment(ctx context.Context, paymentKey, reason string, amount int64) error {
	endpoint := fmt.Sprintf("%s/payments/%s/cancel", c.baseURL, url.PathEscape(paymentKey))

	payload, err := json.Marshal(cancelRequest{Reason: reason, Amount: amount})
	if err != nil {
		return errs.NewExternalServiceError("payments", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return errs.NewExternalServiceError("payments", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.NewExternalServiceError("payments", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return errs.NewExternalServiceError("payments",
			fmt.Errorf("payment cancel returned status %d", resp.StatusCode))
	}

	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
