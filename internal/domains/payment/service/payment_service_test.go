package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	addressModel "storefront-backend/internal/domains/address/model"
	cartModel "storefront-backend/internal/domains/cart/model"
	checkoutModel "storefront-backend/internal/domains/checkout/model"
	orderModel "storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/payment/gateway/mock"
	"storefront-backend/internal/domains/payment/model"
	pricingModel "storefront-backend/internal/domains/pricing/model"
	shippingModel "storefront-backend/internal/domains/shipping/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========================================
// FAKES
// ========================================

type fakeCheckout struct {
	snap *checkoutModel.Snapshot
	err  error
}

func (f *fakeCheckout) PaymentSnapshot(ctx context.Context, sessionID string) (*checkoutModel.Snapshot, error) {
	return f.snap, f.err
}

type fakeFinalizer struct {
	mu     sync.Mutex
	inputs []orderModel.FinalizeInput
	err    error

	// failures calls fail with failErr before err applies
	failures int
	failErr  error
}

func (f *fakeFinalizer) Finalize(ctx context.Context, in orderModel.FinalizeInput) (*orderModel.OrderRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, in)
	if f.failures > 0 {
		f.failures--
		return nil, f.failErr
	}
	if f.err != nil {
		return nil, f.err
	}
	return &orderModel.OrderRecord{OrderID: "PED-0000000A"}, nil
}

func (f *fakeFinalizer) FailNext(n int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = n
	f.failErr = err
}

func (f *fakeFinalizer) Calls() []orderModel.FinalizeInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]orderModel.FinalizeInput, len(f.inputs))
	copy(out, f.inputs)
	return out
}

// rejectingGateway answers create-payment with a fixed response
type rejectingGateway struct {
	*mock.MockGateway
	resp *model.GatewayResponse
}

func (g *rejectingGateway) CreatePayment(ctx context.Context, req model.GatewayRequest) (*model.GatewayResponse, error) {
	return g.resp, nil
}

// ========================================
// HELPERS
// ========================================

type fixture struct {
	svc       *PaymentService
	gateway   *mock.MockGateway
	checkout  *fakeCheckout
	finalizer *fakeFinalizer
	registry  *Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		gateway:   mock.NewMockGateway(),
		checkout:  &fakeCheckout{snap: testSnapshot()},
		finalizer: &fakeFinalizer{},
		registry:  NewRegistry(context.Background(), time.Minute),
	}
	t.Cleanup(f.registry.Shutdown)

	f.svc = NewPaymentService(f.gateway, f.checkout, f.finalizer, f.registry, Config{
		PollInterval: 10 * time.Millisecond,
		PixExpiry:    time.Minute,
	})
	return f
}

func testSnapshot() *checkoutModel.Snapshot {
	return &checkoutModel.Snapshot{
		Session: &checkoutModel.Session{
			SessionID:      "s1",
			AttemptID:      "attempt-1",
			Step:           checkoutModel.StepPayment,
			ShippingOption: shippingModel.OptionStandard,
			Customer: checkoutModel.CustomerData{
				Name:  "Ana Souza",
				Email: "ana@example.com",
				Phone: "(11) 98765-4321",
				CPF:   "529.982.247-25",
				Address: addressModel.Address{
					PostalCode:   "01310100",
					Street:       "Avenida Paulista",
					Number:       "1000",
					Neighborhood: "Bela Vista",
					City:         "São Paulo",
					State:        "SP",
				},
			},
		},
		Cart: &cartModel.Cart{
			SessionID: "s1",
			Items: []cartModel.CartItem{
				{
					ProductID:    "p1",
					ProductTitle: "Camiseta",
					VariantID:    "v1",
					UnitPrice:    cartModel.Money{Amount: decimal.RequireFromString("100.00"), CurrencyCode: "BRL"},
					Quantity:     2,
				},
			},
		},
		Quote: pricingModel.Quote{
			Subtotal:     decimal.RequireFromString("200.00"),
			Discount:     decimal.RequireFromString("20.00"),
			ShippingCost: decimal.RequireFromString("15.00"),
			Total:        decimal.RequireFromString("195.00"),
			TotalItems:   2,
			Currency:     "BRL",
		},
	}
}

func validCard() *model.CardData {
	return &model.CardData{
		Number:       "4111 1111 1111 1111",
		HolderName:   "Ana Souza",
		Expiry:       "12/30",
		CVV:          "123",
		HolderCPF:    "52998224725",
		Installments: 3,
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond)
}

// ========================================
// GATEWAY REQUEST
// ========================================

func TestBuildGatewayRequest(t *testing.T) {
	req := BuildGatewayRequest(testSnapshot(), model.PaymentRequest{Method: model.MethodCreditCard, Card: validCard()})

	assert.Equal(t, int64(19500), req.Amount)
	assert.Equal(t, int64(1500), req.Shipping.Fee)
	assert.Equal(t, req.Amount-req.Shipping.Fee, SumItems(req.Items))
	assert.Equal(t, "attempt-1", req.Reference)
	assert.Equal(t, "52998224725", req.Customer.Document)
	assert.Equal(t, "11987654321", req.Customer.Phone)
	assert.Equal(t, "01310100", req.Shipping.PostalCode)
	require.NotNil(t, req.Card)
	assert.Equal(t, "4111111111111111", req.Card.Number)
	assert.Equal(t, 2030, req.Card.ExpYear)

	pix := BuildGatewayRequest(testSnapshot(), model.PaymentRequest{Method: model.MethodPix, Card: validCard()})
	assert.Nil(t, pix.Card)
}

// ========================================
// CARD
// ========================================

func TestSubmit_CardApproved(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.Submit(context.Background(), "s1", model.PaymentRequest{Method: model.MethodCreditCard, Card: validCard()})
	require.NoError(t, err)

	assert.Equal(t, model.WatchPaid, result.State)
	assert.Equal(t, "PED-0000000A", result.OrderID)
	assert.Nil(t, result.Pix)

	calls := f.finalizer.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "s1", calls[0].SessionID)
	assert.Equal(t, "credit_card", calls[0].Payment.Method)
	assert.Equal(t, 3, calls[0].Payment.Installments)
	assert.NotEmpty(t, calls[0].Payment.SaleID)
}

func TestSubmit_CardRejected(t *testing.T) {
	f := newFixture(t)
	f.gateway.SetRejectCards(true)

	_, err := f.svc.Submit(context.Background(), "s1", model.PaymentRequest{Method: model.MethodCreditCard, Card: validCard()})
	require.ErrorIs(t, err, model.ErrCardRejected)

	var rejection *model.RejectionError
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, "Cartão recusado (mock)", rejection.Message)
	assert.Empty(t, f.finalizer.Calls())
}

func TestSubmit_CardRejectionVariants(t *testing.T) {
	cases := []struct {
		name string
		resp *model.GatewayResponse
		msg  string
	}{
		{"error field", &model.GatewayResponse{Success: true, Error: "saldo insuficiente"}, "saldo insuficiente"},
		{"failed status", &model.GatewayResponse{Success: true, Status: "FAILED", Message: "recusado"}, "recusado"},
		{"success false", &model.GatewayResponse{Success: false}, "Pagamento recusado pela operadora"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			gw := &rejectingGateway{MockGateway: f.gateway, resp: tc.resp}
			svc := NewPaymentService(gw, f.checkout, f.finalizer, f.registry, Config{})

			_, err := svc.Submit(context.Background(), "s1", model.PaymentRequest{Method: model.MethodCreditCard, Card: validCard()})
			var rejection *model.RejectionError
			require.True(t, errors.As(err, &rejection))
			assert.Equal(t, tc.msg, rejection.Message)
			assert.Empty(t, f.finalizer.Calls())
		})
	}
}

func TestSubmit_FinalizeFailure(t *testing.T) {
	f := newFixture(t)
	f.finalizer.err = orderModel.ErrStaleAttempt

	_, err := f.svc.Submit(context.Background(), "s1", model.PaymentRequest{Method: model.MethodCreditCard, Card: validCard()})
	assert.ErrorIs(t, err, orderModel.ErrStaleAttempt)
}

// ========================================
// FAILURES BEFORE THE GATEWAY
// ========================================

func TestSubmit_ValidationFails(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(context.Background(), "s1", model.PaymentRequest{Method: model.MethodCreditCard})
	assert.Error(t, err)
	assert.Empty(t, f.gateway.Requests())
}

func TestSubmit_StepNotReached(t *testing.T) {
	f := newFixture(t)
	f.checkout.err = checkoutModel.ErrStepNotReached

	_, err := f.svc.Submit(context.Background(), "s1", model.PaymentRequest{Method: model.MethodPix})
	assert.ErrorIs(t, err, checkoutModel.ErrStepNotReached)
	assert.Empty(t, f.gateway.Requests())
}

func TestSubmit_GatewayUnavailable(t *testing.T) {
	f := newFixture(t)
	f.gateway.SetFailPayment(true)

	_, err := f.svc.Submit(context.Background(), "s1", model.PaymentRequest{Method: model.MethodPix})
	assert.ErrorIs(t, err, model.ErrGatewayUnavailable)
}

// ========================================
// PIX
// ========================================

func TestSubmit_PixDataMissing(t *testing.T) {
	f := newFixture(t)
	f.gateway.SetOmitPixData(true)

	_, err := f.svc.Submit(context.Background(), "s1", model.PaymentRequest{Method: model.MethodPix})
	assert.ErrorIs(t, err, model.ErrPixDataMissing)
	assert.Equal(t, 0, f.registry.Active())
}

func TestSubmit_PixPaidFinalizesOnce(t *testing.T) {
	f := newFixture(t)
	f.gateway.SetPaidAfterChecks(3)
	ctx := context.Background()

	result, err := f.svc.Submit(ctx, "s1", model.PaymentRequest{Method: model.MethodPix})
	require.NoError(t, err)
	require.NotNil(t, result.Pix)
	assert.Equal(t, model.WatchAwaitingPayment, result.State)
	assert.NotEmpty(t, result.Pix.CopyPaste)
	assert.NotEmpty(t, result.Pix.QRCodeBase64)

	saleID := result.Pix.SaleID
	waitFor(t, func() bool {
		status, err := f.svc.Status(ctx, "s1", saleID)
		return err == nil && status.State == model.WatchPaid
	})

	status, err := f.svc.Status(ctx, "s1", saleID)
	require.NoError(t, err)
	assert.Equal(t, "PED-0000000A", status.OrderID)

	// further checks never finalize again
	_, err = f.svc.Check(ctx, "s1", saleID)
	require.NoError(t, err)

	calls := f.finalizer.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "pix", calls[0].Payment.Method)
	assert.Equal(t, saleID, calls[0].Payment.SaleID)
}

func TestSubmit_PixManualCheck(t *testing.T) {
	f := newFixture(t)
	f.gateway.SetPaidAfterChecks(1)
	f.svc.cfg.PollInterval = time.Hour
	ctx := context.Background()

	result, err := f.svc.Submit(ctx, "s1", model.PaymentRequest{Method: model.MethodPix})
	require.NoError(t, err)

	status, err := f.svc.Check(ctx, "s1", result.Pix.SaleID)
	require.NoError(t, err)
	assert.Equal(t, model.WatchPaid, status.State)
	assert.Equal(t, "paid", status.GatewayStatus)
}

func TestSubmit_ResubmitCancelsEarlierWatcher(t *testing.T) {
	f := newFixture(t)
	f.gateway.SetPaidAfterChecks(1000)
	ctx := context.Background()

	first, err := f.svc.Submit(ctx, "s1", model.PaymentRequest{Method: model.MethodPix})
	require.NoError(t, err)
	second, err := f.svc.Submit(ctx, "s1", model.PaymentRequest{Method: model.MethodPix})
	require.NoError(t, err)

	status, err := f.svc.Status(ctx, "s1", first.Pix.SaleID)
	require.NoError(t, err)
	assert.Equal(t, model.WatchCancelled, status.State)

	status, err = f.svc.Status(ctx, "s1", second.Pix.SaleID)
	require.NoError(t, err)
	assert.Equal(t, model.WatchAwaitingPayment, status.State)
	assert.Equal(t, 1, f.registry.Active())
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	f.gateway.SetPaidAfterChecks(1000)
	ctx := context.Background()

	result, err := f.svc.Submit(ctx, "s1", model.PaymentRequest{Method: model.MethodPix})
	require.NoError(t, err)

	require.NoError(t, f.svc.Cancel(ctx, "s1", result.Pix.SaleID))

	status, err := f.svc.Status(ctx, "s1", result.Pix.SaleID)
	require.NoError(t, err)
	assert.Equal(t, model.WatchCancelled, status.State)
	assert.Empty(t, f.finalizer.Calls())
}

func TestWatcherOwnership(t *testing.T) {
	f := newFixture(t)
	f.gateway.SetPaidAfterChecks(1000)
	ctx := context.Background()

	result, err := f.svc.Submit(ctx, "s1", model.PaymentRequest{Method: model.MethodPix})
	require.NoError(t, err)

	_, err = f.svc.Status(ctx, "other", result.Pix.SaleID)
	assert.ErrorIs(t, err, model.ErrSaleNotFound)
	_, err = f.svc.Check(ctx, "other", result.Pix.SaleID)
	assert.ErrorIs(t, err, model.ErrSaleNotFound)
	assert.ErrorIs(t, f.svc.Cancel(ctx, "other", result.Pix.SaleID), model.ErrSaleNotFound)
	_, err = f.svc.Status(ctx, "s1", "unknown")
	assert.ErrorIs(t, err, model.ErrSaleNotFound)
}

// ========================================
// ORDER NOT STORED AFTER PAYMENT
// ========================================

func TestSubmit_CardFinalizeRetried(t *testing.T) {
	f := newFixture(t)
	f.finalizer.FailNext(1, errors.New("redis: connection reset"))
	ctx := context.Background()

	result, err := f.svc.Submit(ctx, "s1", model.PaymentRequest{Method: model.MethodCreditCard, Card: validCard()})
	require.NoError(t, err)
	assert.Equal(t, model.WatchConfirming, result.State)
	require.NotEmpty(t, result.SaleID)
	assert.Empty(t, result.OrderID)

	waitFor(t, func() bool {
		status, err := f.svc.Status(ctx, "s1", result.SaleID)
		return err == nil && status.State == model.WatchPaid
	})

	status, err := f.svc.Status(ctx, "s1", result.SaleID)
	require.NoError(t, err)
	assert.Equal(t, "PED-0000000A", status.OrderID)
	assert.Empty(t, status.LastError)

	calls := f.finalizer.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, calls[0], calls[1])
	assert.Len(t, f.gateway.Requests(), 1, "the card is charged once")
}

func TestSubmit_PixFinalizeRetried(t *testing.T) {
	f := newFixture(t)
	f.gateway.SetPaidAfterChecks(1)
	f.finalizer.FailNext(1, errors.New("redis: connection reset"))
	ctx := context.Background()

	result, err := f.svc.Submit(ctx, "s1", model.PaymentRequest{Method: model.MethodPix})
	require.NoError(t, err)

	waitFor(t, func() bool {
		status, err := f.svc.Status(ctx, "s1", result.Pix.SaleID)
		return err == nil && status.State == model.WatchPaid
	})

	status, err := f.svc.Status(ctx, "s1", result.Pix.SaleID)
	require.NoError(t, err)
	assert.Equal(t, "PED-0000000A", status.OrderID)
	assert.Len(t, f.finalizer.Calls(), 2)
}

func TestSubmit_BlockedWhileConfirming(t *testing.T) {
	f := newFixture(t)
	f.svc.cfg.PollInterval = time.Hour
	f.finalizer.FailNext(100, errors.New("redis: connection reset"))
	ctx := context.Background()

	result, err := f.svc.Submit(ctx, "s1", model.PaymentRequest{Method: model.MethodCreditCard, Card: validCard()})
	require.NoError(t, err)
	require.Equal(t, model.WatchConfirming, result.State)

	_, err = f.svc.Submit(ctx, "s1", model.PaymentRequest{Method: model.MethodCreditCard, Card: validCard()})
	assert.ErrorIs(t, err, model.ErrPaymentConfirming)
	assert.Len(t, f.gateway.Requests(), 1)

	assert.ErrorIs(t, f.svc.Cancel(ctx, "s1", result.SaleID), model.ErrPaymentConfirming)

	// a manual check retries the order
	f.finalizer.FailNext(0, nil)
	status, err := f.svc.Check(ctx, "s1", result.SaleID)
	require.NoError(t, err)
	assert.Equal(t, model.WatchPaid, status.State)
	assert.Equal(t, "PED-0000000A", status.OrderID)
}
