package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	checkoutModel "storefront-backend/internal/domains/checkout/model"
	orderModel "storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/payment/gateway"
	"storefront-backend/internal/domains/payment/model"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

// CheckoutReader hands out the snapshot to charge
type CheckoutReader interface {
	PaymentSnapshot(ctx context.Context, sessionID string) (*checkoutModel.Snapshot, error)
}

// Finalizer turns a confirmed payment into an order
type Finalizer interface {
	Finalize(ctx context.Context, in orderModel.FinalizeInput) (*orderModel.OrderRecord, error)
}

type Config struct {
	PollInterval time.Duration
	PixExpiry    time.Duration
}

type PaymentService struct {
	gateway   gateway.Gateway
	checkout  CheckoutReader
	finalizer Finalizer
	watchers  *Registry
	cfg       Config
	now       func() time.Time
}

func NewPaymentService(
	gw gateway.Gateway,
	checkout CheckoutReader,
	finalizer Finalizer,
	watchers *Registry,
	cfg Config,
) *PaymentService {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.PixExpiry <= 0 {
		cfg.PixExpiry = 30 * time.Minute
	}
	return &PaymentService{
		gateway:   gw,
		checkout:  checkout,
		finalizer: finalizer,
		watchers:  watchers,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Submit
//
// Step 1: validate and load the checkout snapshot
// Step 2: refuse while a paid sale is being confirmed, stop earlier watchers
// Step 3: build the gateway request and create the payment
// Step 4: branch on method
func (s *PaymentService) Submit(ctx context.Context, sessionID string, req model.PaymentRequest) (*model.SubmitResult, error) {
	// Step 1
	if err := req.Validate(); err != nil {
		return nil, err
	}
	snap, err := s.checkout.PaymentSnapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Step 2
	if w, ok := s.watchers.Confirming(sessionID); ok {
		logger.Warn("Payment submitted while a paid sale is being confirmed", map[string]interface{}{
			"session_id": sessionID,
			"sale_id":    w.SaleID(),
		})
		return nil, model.ErrPaymentConfirming
	}
	if n := s.watchers.CancelSession(sessionID); n > 0 {
		logger.Info("Cancelled earlier PIX watchers", map[string]interface{}{
			"session_id": sessionID,
			"count":      n,
		})
	}

	// Step 3
	gwReq := BuildGatewayRequest(snap, req)
	resp, err := s.gateway.CreatePayment(ctx, gwReq)
	if err != nil {
		logger.ErrorWithFields("Create payment failed", err, map[string]interface{}{
			"session_id": sessionID,
			"method":     req.Method,
		})
		if errors.Is(err, model.ErrGatewayUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", model.ErrGatewayUnavailable, err)
	}

	// Step 4
	if req.Method == model.MethodPix {
		return s.startPix(sessionID, snap, resp)
	}
	return s.completeCard(ctx, sessionID, snap, req, resp)
}

func (s *PaymentService) startPix(sessionID string, snap *checkoutModel.Snapshot, resp *model.GatewayResponse) (*model.SubmitResult, error) {
	pix := resp.PixData()
	if pix == nil {
		logger.Warn("Gateway returned no PIX data", map[string]interface{}{
			"session_id": sessionID,
			"success":    resp.Success,
			"message":    resp.Message,
		})
		return nil, model.ErrPixDataMissing
	}

	expiresAt := s.now().Add(s.cfg.PixExpiry)
	saleID := pix.ID

	s.watchers.Watch(WatcherConfig{
		SaleID:    saleID,
		SessionID: sessionID,
		Interval:  s.cfg.PollInterval,
		ExpiresAt: expiresAt,
	}, s.gateway, s.finalizeFunc(orderModel.FinalizeInput{
		SessionID: sessionID,
		Snapshot:  snap,
		Payment: orderModel.PaymentInfo{
			Method: string(model.MethodPix),
			SaleID: saleID,
			Status: string(model.WatchPaid),
		},
	}))

	logger.Info("PIX payment created", map[string]interface{}{
		"session_id": sessionID,
		"sale_id":    saleID,
		"amount":     snap.Quote.Total.String(),
	})

	return &model.SubmitResult{
		Method: model.MethodPix,
		State:  model.WatchAwaitingPayment,
		Pix: &model.PixView{
			SaleID:       saleID,
			QRCodeBase64: pix.QRCodeBase64,
			CopyPaste:    pix.CopyPaste,
			ExpiresAt:    expiresAt,
		},
	}, nil
}

func (s *PaymentService) completeCard(
	ctx context.Context,
	sessionID string,
	snap *checkoutModel.Snapshot,
	req model.PaymentRequest,
	resp *model.GatewayResponse,
) (*model.SubmitResult, error) {
	if rejected, msg := resp.Rejected(); rejected {
		logger.Info("Card payment rejected", map[string]interface{}{
			"session_id": sessionID,
			"message":    msg,
		})
		return nil, &model.RejectionError{Message: msg}
	}

	saleID, status := "", "approved"
	if resp.Data != nil {
		saleID = resp.Data.ID
		if resp.Data.Status != "" {
			status = strings.ToLower(resp.Data.Status)
		}
	}

	in := orderModel.FinalizeInput{
		SessionID: sessionID,
		Snapshot:  snap,
		Payment: orderModel.PaymentInfo{
			Method:       string(model.MethodCreditCard),
			SaleID:       saleID,
			Status:       status,
			Installments: req.Card.ToGateway().Installments,
		},
	}

	record, err := s.finalizer.Finalize(ctx, in)
	switch {
	case err == nil:
		return &model.SubmitResult{
			Method:  model.MethodCreditCard,
			State:   model.WatchPaid,
			SaleID:  saleID,
			OrderID: record.OrderID,
		}, nil

	case errors.Is(err, orderModel.ErrStaleAttempt):
		logger.ErrorWithFields("Card charged for an abandoned checkout", err, map[string]interface{}{
			"session_id": sessionID,
			"sale_id":    saleID,
		})
		return nil, fmt.Errorf("failed to finalize order: %w", err)
	}

	// The card is charged: keep retrying the order in the background and
	// let the shopper follow it like a PIX sale.
	watchID := saleID
	if watchID == "" {
		watchID = snap.Session.AttemptID
	}
	logger.ErrorWithFields("Failed to finalize card payment, retrying", err, map[string]interface{}{
		"session_id": sessionID,
		"sale_id":    watchID,
	})
	s.watchers.Watch(WatcherConfig{
		SaleID:    watchID,
		SessionID: sessionID,
		Interval:  s.cfg.PollInterval,
		ExpiresAt: s.now().Add(s.cfg.PixExpiry),
		Confirmed: true,
	}, s.gateway, s.finalizeFunc(in))

	return &model.SubmitResult{
		Method: model.MethodCreditCard,
		State:  model.WatchConfirming,
		SaleID: watchID,
	}, nil
}

func (s *PaymentService) finalizeFunc(in orderModel.FinalizeInput) PaidFunc {
	return func(ctx context.Context) (string, error) {
		record, err := s.finalizer.Finalize(ctx, in)
		if err != nil {
			return "", err
		}
		return record.OrderID, nil
	}
}

// BuildGatewayRequest converts a checkout snapshot into the proxy payload.
// Line items are redistributed so they sum to the discounted items total.
func BuildGatewayRequest(snap *checkoutModel.Snapshot, req model.PaymentRequest) model.GatewayRequest {
	customer := snap.Session.Customer
	addr := customer.Address

	out := model.GatewayRequest{
		Amount:        ToCents(snap.Quote.Total),
		PaymentMethod: req.Method,
		Reference:     snap.Session.AttemptID,
		Items:         Redistribute(snap.Cart.Items, snap.Quote.ItemsTotal()),
		Customer: model.GatewayCustomer{
			Name:     customer.Name,
			Email:    customer.Email,
			Phone:    utils.OnlyDigits(customer.Phone),
			Document: utils.OnlyDigits(customer.CPF),
		},
		Shipping: model.GatewayShipping{
			Fee:          ToCents(snap.Quote.ShippingCost),
			PostalCode:   addr.PostalCode,
			Street:       addr.Street,
			Number:       addr.Number,
			Complement:   addr.Complement,
			Neighborhood: addr.Neighborhood,
			City:         addr.City,
			State:        addr.State,
		},
	}
	if req.Method == model.MethodCreditCard && req.Card != nil {
		out.Card = req.Card.ToGateway()
	}
	return out
}

// =====================================================
// PIX WATCHERS
// =====================================================

func (s *PaymentService) watcher(sessionID, saleID string) (*Watcher, error) {
	w, ok := s.watchers.Get(saleID)
	if !ok || w.SessionID() != sessionID {
		return nil, model.ErrSaleNotFound
	}
	return w, nil
}

func (s *PaymentService) Status(ctx context.Context, sessionID, saleID string) (*model.WatchStatus, error) {
	w, err := s.watcher(sessionID, saleID)
	if err != nil {
		return nil, err
	}
	status := w.Status()
	return &status, nil
}

// Check queries the gateway now instead of waiting for the next tick
func (s *PaymentService) Check(ctx context.Context, sessionID, saleID string) (*model.WatchStatus, error) {
	w, err := s.watcher(sessionID, saleID)
	if err != nil {
		return nil, err
	}
	status := w.Check(ctx)
	return &status, nil
}

func (s *PaymentService) Cancel(ctx context.Context, sessionID, saleID string) error {
	w, err := s.watcher(sessionID, saleID)
	if err != nil {
		return err
	}
	if !w.Cancel() && w.Status().State == model.WatchConfirming {
		return model.ErrPaymentConfirming
	}

	logger.Info("PIX watcher cancelled", map[string]interface{}{
		"session_id": sessionID,
		"sale_id":    saleID,
	})
	return nil
}
