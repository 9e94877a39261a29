package proxy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"storefront-backend/internal/domains/payment/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string, failures int) *Client {
	return NewClient(Config{
		BaseURL:         url,
		Timeout:         2 * time.Second,
		BreakerFailures: failures,
		BreakerTimeout:  time.Minute,
	})
}

func TestCreatePayment_Pix(t *testing.T) {
	var got model.GatewayRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/create-payment", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"sale-1","paymentData":{"qrCodeBase64":"iVBOR","copyPaste":"000201..."}}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL+"/api/", 5)
	resp, err := client.CreatePayment(context.Background(), model.GatewayRequest{
		Amount:        27000,
		PaymentMethod: model.MethodPix,
		Items:         []model.GatewayItem{{Title: "Camiseta", UnitPrice: 13500, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(27000), got.Amount)
	assert.Equal(t, model.MethodPix, got.PaymentMethod)

	pix := resp.PixData()
	require.NotNil(t, pix)
	assert.Equal(t, "sale-1", pix.ID)
	assert.Equal(t, "000201...", pix.CopyPaste)
}

func TestCreatePayment_CardRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"success":false,"error":{"message":"Saldo insuficiente"}}`))
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL, 5).CreatePayment(context.Background(), model.GatewayRequest{PaymentMethod: model.MethodCreditCard})
	require.NoError(t, err)

	rejected, msg := resp.Rejected()
	assert.True(t, rejected)
	assert.Equal(t, "Saldo insuficiente", msg)
}

func TestCheckPaymentStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/check-payment-status", r.URL.Path)
		switch r.URL.Query().Get("saleId") {
		case "sale-1":
			_, _ = w.Write([]byte(`{"status":"APPROVED"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5)

	status, err := client.CheckPaymentStatus(context.Background(), "sale-1")
	require.NoError(t, err)
	assert.True(t, status.IsPaid())

	_, err = client.CheckPaymentStatus(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrSaleNotFound)
}

func TestCircuitBreakerOpensOnServerErrors(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := client.CheckPaymentStatus(ctx, "sale-1")
		assert.ErrorIs(t, err, model.ErrGatewayUnavailable)
	}

	_, err := client.CheckPaymentStatus(ctx, "sale-1")
	assert.ErrorIs(t, err, model.ErrGatewayUnavailable)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}
