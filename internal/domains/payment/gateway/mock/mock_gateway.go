package mock

import (
	"context"
	"fmt"
	"sync"

	"storefront-backend/internal/domains/payment/model"

	"github.com/google/uuid"
)

// =====================================================
// MOCK PAYMENT GATEWAY FOR DEVELOPMENT AND TESTS
// =====================================================

// MockGateway approves cards and confirms PIX sales after a number of status checks
type MockGateway struct {
	mu sync.Mutex

	shouldFailPayment bool
	rejectCards       bool
	omitPixData       bool
	paidAfterChecks   int

	checks   map[string]int
	requests []model.GatewayRequest
}

func NewMockGateway() *MockGateway {
	return &MockGateway{
		paidAfterChecks: 3,
		checks:          make(map[string]int),
	}
}

func (m *MockGateway) CreatePayment(ctx context.Context, req model.GatewayRequest) (*model.GatewayResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if m.shouldFailPayment {
		return nil, fmt.Errorf("%w: mock payment creation failed", model.ErrGatewayUnavailable)
	}

	saleID := "mock-" + uuid.NewString()

	if req.PaymentMethod == model.MethodCreditCard {
		if m.rejectCards {
			return &model.GatewayResponse{Success: false, Status: model.CardStatusFailed, Message: "Cartão recusado (mock)"}, nil
		}
		return &model.GatewayResponse{
			Success: true,
			Status:  "approved",
			Data:    &model.GatewayResponseData{ID: saleID, Status: "approved"},
		}, nil
	}

	resp := &model.GatewayResponse{
		Success: true,
		Data:    &model.GatewayResponseData{ID: saleID, Status: "waiting_payment"},
	}
	if !m.omitPixData {
		resp.Data.PaymentData = &model.PixData{
			ID:           saleID,
			QRCodeBase64: "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==",
			CopyPaste:    fmt.Sprintf("00020126580014BR.GOV.BCB.PIX0136%s5204000053039865802BR", saleID),
		}
	}
	return resp, nil
}

func (m *MockGateway) CheckPaymentStatus(ctx context.Context, saleID string) (*model.StatusResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.checks[saleID]++
	if m.checks[saleID] >= m.paidAfterChecks {
		return &model.StatusResponse{Status: "paid"}, nil
	}
	return &model.StatusResponse{Status: "pending"}, nil
}

// SetFailPayment makes CreatePayment return a transport error
func (m *MockGateway) SetFailPayment(shouldFail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFailPayment = shouldFail
}

// SetRejectCards makes card payments come back refused
func (m *MockGateway) SetRejectCards(reject bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejectCards = reject
}

// SetOmitPixData drops the PIX payload from successful responses
func (m *MockGateway) SetOmitPixData(omit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.omitPixData = omit
}

// SetPaidAfterChecks sets how many status checks a PIX sale stays pending
func (m *MockGateway) SetPaidAfterChecks(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paidAfterChecks = n
}

// Requests returns the payment requests received so far
func (m *MockGateway) Requests() []model.GatewayRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.GatewayRequest, len(m.requests))
	copy(out, m.requests)
	return out
}
