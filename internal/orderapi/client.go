// Package orderapi submits checkout orders to the order management API.
package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/nikolayk812/tarzi-cart/internal/domain"
	"github.com/nikolayk812/tarzi-cart/internal/port"
)

const maxResponseBytes = 1 << 20

// APIError is a rejection reported by the order API. Message is safe to show to the user.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("order api: status %d: %s", e.StatusCode, e.Message)
}

// DecodeError means the response did not match the order API contract.
type DecodeError struct {
	StatusCode int
	Reason     string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("order api: status %d: undecodable response: %s", e.StatusCode, e.Reason)
}

var _ port.OrderClient = (*Client)(nil)

// Retry bounds resubmission of an order after a transport failure or a 502, 503 or 504.
type Retry struct {
	MaxRetries      uint64
	InitialInterval time.Duration
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      Retry
	newKey     func() string
}

func New(baseURL string, timeout time.Duration, retry Retry) *Client {
	c := NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
	c.retry = retry
	return c
}

func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		newKey:     uuid.NewString,
	}
}

// CreateOrder posts req to {baseURL}/orders with token as bearer credentials.
// All attempts of one call share an Idempotency-Key.
func (c *Client) CreateOrder(ctx context.Context, token string, req domain.OrderRequest) (domain.OrderConfirmation, error) {
	body, err := json.Marshal(mapOrderRequestToDTO(req))
	if err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("json.Marshal: %w", err)
	}

	key := c.newKey()

	var confirmation domain.OrderConfirmation
	op := func() error {
		got, err := c.send(ctx, token, key, body)
		if err != nil {
			if retryable(ctx, err) {
				return err
			}
			return backoff.Permanent(err)
		}
		confirmation = got
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(c.newBackOff(), ctx)); err != nil {
		return domain.OrderConfirmation{}, err
	}

	return confirmation, nil
}

func (c *Client) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if c.retry.InitialInterval > 0 {
		b.InitialInterval = c.retry.InitialInterval
	}
	b.MaxElapsedTime = 0

	return backoff.WithMaxRetries(b, c.retry.MaxRetries)
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}

	var decodeErr *DecodeError
	return !errors.As(err, &decodeErr)
}

func (c *Client) send(ctx context.Context, token, key string, body []byte) (domain.OrderConfirmation, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Idempotency-Key", key)
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("io.ReadAll: %w", err)
	}

	return decodeResponse(resp.StatusCode, data)
}

// decodeResponse maps the response envelope onto exactly one of: a confirmation,
// an *APIError or a *DecodeError.
func decodeResponse(status int, data []byte) (domain.OrderConfirmation, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		if status >= 300 {
			return domain.OrderConfirmation{}, &APIError{StatusCode: status, Message: http.StatusText(status)}
		}
		return domain.OrderConfirmation{}, &DecodeError{StatusCode: status, Reason: err.Error()}
	}

	if env.Success == nil {
		if status >= 300 {
			return domain.OrderConfirmation{}, &APIError{StatusCode: status, Message: env.message(status)}
		}
		return domain.OrderConfirmation{}, &DecodeError{StatusCode: status, Reason: "missing success flag"}
	}

	if !*env.Success || status >= 300 {
		return domain.OrderConfirmation{}, &APIError{StatusCode: status, Message: env.message(status)}
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return domain.OrderConfirmation{}, &DecodeError{StatusCode: status, Reason: "missing data"}
	}

	var order orderDTO
	if err := json.Unmarshal(env.Data, &order); err != nil {
		return domain.OrderConfirmation{}, &DecodeError{StatusCode: status, Reason: fmt.Sprintf("data: %v", err)}
	}

	if order.ID == "" {
		return domain.OrderConfirmation{}, &DecodeError{StatusCode: status, Reason: "data.id is empty"}
	}

	return domain.OrderConfirmation{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
	}, nil
}

// UserMessage returns the message the order API meant for the user, if err carries one.
func UserMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message, true
	}
	return "", false
}
