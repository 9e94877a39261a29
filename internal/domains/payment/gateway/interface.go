package gateway

import (
	"context"

	"storefront-backend/internal/domains/payment/model"
)

// Gateway is the payment proxy in front of the PIX/card acquirer
type Gateway interface {
	// CreatePayment returns the decoded response for accepted and rejected
	// payments alike. An error means the proxy could not be reached or answered garbage.
	CreatePayment(ctx context.Context, req model.GatewayRequest) (*model.GatewayResponse, error)

	CheckPaymentStatus(ctx context.Context, saleID string) (*model.StatusResponse, error)
}
