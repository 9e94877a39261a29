package service

import (
	"context"

	"storefront-backend/internal/domains/cart/model"
)

type ServiceInterface interface {
	GetCart(ctx context.Context, sessionID string) (*model.Cart, error)

	// AddItem merges quantities for an existing variant
	AddItem(ctx context.Context, sessionID string, req model.AddItemRequest) (*model.Cart, error)

	// UpdateQuantity removes the line when quantity <= 0
	UpdateQuantity(ctx context.Context, sessionID, variantID string, quantity int) (*model.Cart, error)

	RemoveItem(ctx context.Context, sessionID, variantID string) (*model.Cart, error)

	// ClearCart is idempotent
	ClearCart(ctx context.Context, sessionID string) error

	// CreateHostedCheckout hands the cart to the commerce platform and returns its checkout URL
	CreateHostedCheckout(ctx context.Context, sessionID string) (string, error)
}
