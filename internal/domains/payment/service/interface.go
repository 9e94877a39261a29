package service

import (
	"context"

	"storefront-backend/internal/domains/payment/model"
)

type ServiceInterface interface {
	// Submit charges the current checkout. Cards finalize immediately, PIX
	// returns the QR code and starts watching the sale.
	Submit(ctx context.Context, sessionID string, req model.PaymentRequest) (*model.SubmitResult, error)

	Status(ctx context.Context, sessionID, saleID string) (*model.WatchStatus, error)
	Check(ctx context.Context, sessionID, saleID string) (*model.WatchStatus, error)
	Cancel(ctx context.Context, sessionID, saleID string) error
}
