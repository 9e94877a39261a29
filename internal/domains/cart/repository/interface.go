package repository

import (
	"context"

	"storefront-backend/internal/domains/cart/model"
)

type RepositoryInterface interface {
	// Get returns the session cart, an empty cart when none is stored
	Get(ctx context.Context, sessionID string) (*model.Cart, error)
	Save(ctx context.Context, cart *model.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
