package commerce

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsResponse = `{
  "data": {
    "products": {
      "pageInfo": {"hasNextPage": true, "endCursor": "c1"},
      "edges": [{
        "node": {
          "id": "gid://shop/Product/1",
          "title": "Camiseta Oversized",
          "handle": "camiseta-oversized",
          "tags": ["verao"],
          "priceRange": {
            "minVariantPrice": {"amount": "89.9", "currencyCode": "BRL"},
            "maxVariantPrice": {"amount": "99.9", "currencyCode": "BRL"}
          },
          "images": {"edges": [{"node": {"url": "https://cdn/1.jpg", "altText": "front"}}]},
          "options": [{"name": "Tamanho", "values": ["P", "M"]}],
          "variants": {"edges": [{"node": {
            "id": "gid://shop/ProductVariant/11",
            "title": "P",
            "availableForSale": true,
            "price": {"amount": "89.9", "currencyCode": "BRL"},
            "selectedOptions": [{"name": "Tamanho", "value": "P"}]
          }}]}
        }
      }]
    }
  }
}`

func TestClient_SearchProducts(t *testing.T) {
	var gotReq graphqlRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token-1", r.Header.Get(storefrontTokenHeader))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotReq))
		_, _ = w.Write([]byte(productsResponse))
	}))
	defer srv.Close()

	client := NewClient(Config{StorefrontURL: srv.URL, StorefrontToken: "token-1"})

	page, err := client.SearchProducts(context.Background(), ProductQuery{Search: "camiseta", First: 10})
	require.NoError(t, err)

	assert.Equal(t, "camiseta", gotReq.Variables["query"])
	assert.EqualValues(t, 10, gotReq.Variables["first"])

	require.Len(t, page.Products, 1)
	p := page.Products[0]
	assert.Equal(t, "Camiseta Oversized", p.Title)
	assert.True(t, page.HasNextPage)
	assert.Equal(t, "c1", page.EndCursor)
	require.Len(t, p.Variants, 1)
	assert.True(t, p.Variants[0].Price.Amount.Equal(decimal.RequireFromString("89.90")))
	assert.Equal(t, "https://cdn/1.jpg", p.Images[0].URL)
}

func TestClient_GraphQLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"throttled"}]}`))
	}))
	defer srv.Close()

	_, err := NewClient(Config{StorefrontURL: srv.URL}).SearchProducts(context.Background(), ProductQuery{})
	assert.ErrorIs(t, err, ErrGraphQL)
}

func TestClient_NotConfigured(t *testing.T) {
	client := NewClient(Config{})

	_, err := client.SearchProducts(context.Background(), ProductQuery{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = client.MirrorOrder(context.Background(), MirrorOrderRequest{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClient_CreateCart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"cartCreate":{"cart":{"id":"c1","checkoutUrl":"https://shop/checkout"},"userErrors":[]}}}`))
	}))
	defer srv.Close()

	cart, err := NewClient(Config{StorefrontURL: srv.URL}).CreateCart(context.Background(), []CartLineInput{{MerchandiseID: "v1", Quantity: 1}})
	require.NoError(t, err)
	assert.Equal(t, "https://shop/checkout", cart.CheckoutURL)
}

func TestClient_CreateCartUserErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"cartCreate":{"cart":null,"userErrors":[{"field":["lines"],"message":"variant unavailable"}]}}}`))
	}))
	defer srv.Close()

	_, err := NewClient(Config{StorefrontURL: srv.URL}).CreateCart(context.Background(), []CartLineInput{{MerchandiseID: "v1", Quantity: 1}})
	assert.ErrorIs(t, err, ErrGraphQL)
	assert.Contains(t, err.Error(), "variant unavailable")
}

func TestClient_MirrorOrder(t *testing.T) {
	var got MirrorOrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/create-order", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success":true,"draftOrderId":"D1"}`))
	}))
	defer srv.Close()

	client := NewClient(Config{OrderProxyURL: srv.URL + "/api/"})
	resp, err := client.MirrorOrder(context.Background(), MirrorOrderRequest{OrderID: "PED-1", PaymentMethod: "pix"})
	require.NoError(t, err)
	assert.Equal(t, "D1", resp.DraftOrderID)
	assert.Equal(t, "PED-1", got.OrderID)
}

func TestClient_MirrorOrderRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"success":false,"error":"upstream down"}`))
	}))
	defer srv.Close()

	_, err := NewClient(Config{OrderProxyURL: srv.URL}).MirrorOrder(context.Background(), MirrorOrderRequest{OrderID: "PED-1"})
	assert.ErrorIs(t, err, ErrMirrorFailed)
}
