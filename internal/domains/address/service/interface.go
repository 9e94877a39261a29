package service

import (
	"context"

	"storefront-backend/internal/domains/address/model"
)

type ServiceInterface interface {
	// Lookup resolves a CEP, returns the delivery estimate and remembers the
	// delivery location for the session
	Lookup(ctx context.Context, sessionID, postalCode string) (*model.LookupResult, error)

	// GetDeliveryLocation returns nil when no lookup happened yet
	GetDeliveryLocation(ctx context.Context, sessionID string) (*model.DeliveryLocation, error)
}
