package repository

import (
	"context"

	"storefront-backend/internal/domains/order/model"
)

// SnapshotRepositoryInterface holds the read-once confirmation record
type SnapshotRepositoryInterface interface {
	Save(ctx context.Context, record *model.OrderRecord) error

	// Take returns and deletes the record in one step
	Take(ctx context.Context, sessionID string) (*model.OrderRecord, bool, error)
}

// OrderRepositoryInterface is the durable store behind the admin dashboard
type OrderRepositoryInterface interface {
	EnsureSchema(ctx context.Context) error
	Create(ctx context.Context, record *model.OrderRecord) error
	List(ctx context.Context, filter model.OrderFilter) ([]model.OrderListItem, int, error)
	Summary(ctx context.Context, filter model.OrderFilter) (*model.SalesSummary, error)
}
