package service

import (
	"context"

	"storefront-backend/internal/domains/order/model"
)

type ServiceInterface interface {
	// Finalize turns a confirmed payment into an order. It runs at most once
	// per payment; results for an abandoned checkout attempt return ErrStaleAttempt.
	Finalize(ctx context.Context, in model.FinalizeInput) (*model.OrderRecord, error)

	// GetConfirmation returns the last order of the session and forgets it
	GetConfirmation(ctx context.Context, sessionID string) (*model.OrderRecord, error)

	// Admin dashboard
	ListOrders(ctx context.Context, req model.ListOrdersRequest) ([]model.OrderListItem, int, error)
	GetSummary(ctx context.Context, req model.ListOrdersRequest) (*model.SalesSummary, error)
	ExportOrders(ctx context.Context, req model.ListOrdersRequest) ([]byte, error)
}
