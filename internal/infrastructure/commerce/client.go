package commerce

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
)

var (
	ErrNotConfigured = errors.New("commerce platform is not configured")
	ErrGraphQL       = errors.New("commerce platform returned errors")
	ErrMirrorFailed  = errors.New("order mirroring rejected")
)

const storefrontTokenHeader = "X-Shopify-Storefront-Access-Token"

type Config struct {
	StorefrontURL   string
	StorefrontToken string
	OrderProxyURL   string
	Timeout         time.Duration
}

// Client talks to the commerce platform storefront GraphQL API and to the
// order-mirroring proxy that creates draft orders there.
type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(config Config) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SearchProducts lists products; an empty Search returns the whole catalogue page by page
func (c *Client) SearchProducts(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	first := q.First
	if first <= 0 || first > 100 {
		first = 24
	}

	vars := map[string]interface{}{"first": first}
	if q.After != "" {
		vars["after"] = q.After
	}
	if q.Search != "" {
		vars["query"] = q.Search
	}

	var data productsData
	if err := c.graphql(ctx, productsQuery, vars, &data); err != nil {
		return nil, err
	}

	page := &ProductPage{
		Products:    make([]Product, 0, len(data.Products.Edges)),
		HasNextPage: data.Products.PageInfo.HasNextPage,
		EndCursor:   data.Products.PageInfo.EndCursor,
	}
	for _, edge := range data.Products.Edges {
		page.Products = append(page.Products, edge.Node.toProduct())
	}
	return page, nil
}

// CreateCart runs the cartCreate mutation used by the hosted checkout fallback
func (c *Client) CreateCart(ctx context.Context, lines []CartLineInput) (*HostedCart, error) {
	vars := map[string]interface{}{
		"input": map[string]interface{}{"lines": lines},
	}

	var data cartCreateData
	if err := c.graphql(ctx, cartCreateMutation, vars, &data); err != nil {
		return nil, err
	}

	if len(data.CartCreate.UserErrors) > 0 {
		msgs := make([]string, 0, len(data.CartCreate.UserErrors))
		for _, ue := range data.CartCreate.UserErrors {
			msgs = append(msgs, ue.Message)
		}
		return nil, fmt.Errorf("%w: %s", ErrGraphQL, strings.Join(msgs, "; "))
	}
	if data.CartCreate.Cart == nil {
		return nil, fmt.Errorf("%w: cartCreate returned no cart", ErrGraphQL)
	}
	return data.CartCreate.Cart, nil
}

// MirrorOrder posts the order to the mirroring proxy
func (c *Client) MirrorOrder(ctx context.Context, req MirrorOrderRequest) (*MirrorOrderResponse, error) {
	if c.config.OrderProxyURL == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal mirror request: %w", err)
	}

	url := strings.TrimRight(c.config.OrderProxyURL, "/") + "/create-order"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call order proxy: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var out MirrorOrderResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= 300 || !out.Success {
		return &out, fmt.Errorf("%w: status %d: %s", ErrMirrorFailed, resp.StatusCode, out.Error)
	}
	return &out, nil
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) graphql(ctx context.Context, query string, vars map[string]interface{}, dest interface{}) error {
	if c.config.StorefrontURL == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(graphqlRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("failed to marshal query: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.StorefrontURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.config.StorefrontToken != "" {
		httpReq.Header.Set(storefrontTokenHeader, c.config.StorefrontToken)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call storefront API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("storefront API status %d", resp.StatusCode)
	}

	var gqlResp graphqlResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(gqlResp.Errors) > 0 {
		return fmt.Errorf("%w: %s", ErrGraphQL, gqlResp.Errors[0].Message)
	}

	if err := json.Unmarshal(gqlResp.Data, dest); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}
