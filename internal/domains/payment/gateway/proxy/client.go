package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront-backend/internal/domains/payment/model"
	"storefront-backend/pkg/logger"

	"github.com/sony/gobreaker/v2"
)

// =====================================================
// PAYMENT PROXY CLIENT
// =====================================================

type Config struct {
	BaseURL         string
	Timeout         time.Duration
	BreakerFailures int
	BreakerTimeout  time.Duration
}

type httpResult struct {
	status int
	body   []byte
}

// errServerStatus marks a 5xx answer, which counts against the breaker
type errServerStatus struct {
	status int
	body   string
}

func (e *errServerStatus) Error() string {
	return fmt.Sprintf("payment proxy returned %d: %s", e.status, e.body)
}

type Client struct {
	config     Config
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*httpResult]
}

func NewClient(config Config) *Client {
	failures := uint32(config.BreakerFailures)
	if failures == 0 {
		failures = 5
	}

	breaker := gobreaker.NewCircuitBreaker[*httpResult](gobreaker.Settings{
		Name:        "payment-proxy",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		breaker:    breaker,
	}
}

// =====================================================
// CREATE PAYMENT
// =====================================================

func (c *Client) CreatePayment(ctx context.Context, req model.GatewayRequest) (*model.GatewayResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment request: %w", err)
	}

	result, err := c.do(ctx, http.MethodPost, c.endpoint("/create-payment"), body)
	if err != nil {
		return nil, err
	}

	var resp model.GatewayResponse
	if err := json.Unmarshal(result.body, &resp); err != nil {
		return nil, fmt.Errorf("%w: invalid create-payment response: %v", model.ErrGatewayUnavailable, err)
	}

	// 4xx without an explicit verdict is still a refusal
	if result.status >= http.StatusBadRequest {
		resp.Success = false
	}
	return &resp, nil
}

// =====================================================
// CHECK PAYMENT STATUS
// =====================================================

func (c *Client) CheckPaymentStatus(ctx context.Context, saleID string) (*model.StatusResponse, error) {
	endpoint := c.endpoint("/check-payment-status") + "?saleId=" + url.QueryEscape(saleID)

	result, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if result.status == http.StatusNotFound {
		return nil, model.ErrSaleNotFound
	}
	if result.status >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: status check returned %d", model.ErrGatewayUnavailable, result.status)
	}

	var status model.StatusResponse
	if err := json.Unmarshal(result.body, &status); err != nil {
		return nil, fmt.Errorf("%w: invalid status response: %v", model.ErrGatewayUnavailable, err)
	}
	return &status, nil
}

func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.config.BaseURL, "/") + path
}

// do runs one HTTP call through the breaker. Transport errors and 5xx trip it,
// 4xx answers are returned to the caller.
func (c *Client) do(ctx context.Context, method, endpoint string, body []byte) (*httpResult, error) {
	result, err := c.breaker.Execute(func() (*httpResult, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP request: %w", err)
		}
		httpReq.Header.Set("Accept", "application/json")
		if body != nil {
			httpReq.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return nil, fmt.Errorf("failed to call payment proxy: %w", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, &errServerStatus{status: resp.StatusCode, body: string(data)}
		}
		return &httpResult{status: resp.StatusCode, body: data}, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit open", model.ErrGatewayUnavailable)
		}
		return nil, fmt.Errorf("%w: %v", model.ErrGatewayUnavailable, err)
	}
	return result, nil
}
