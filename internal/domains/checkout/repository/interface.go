package repository

import (
	"context"

	"storefront-backend/internal/domains/checkout/model"
)

type RepositoryInterface interface {
	// Get returns the stored session, found=false when none exists
	Get(ctx context.Context, sessionID string) (*model.Session, bool, error)
	Save(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, sessionID string) error

	// Coupon suppression flag, set when the shopper removes a coupon by hand
	MarkCouponRemoved(ctx context.Context, sessionID string) error
	ClearCouponRemoved(ctx context.Context, sessionID string) error
	IsCouponRemoved(ctx context.Context, sessionID string) (bool, error)
}
