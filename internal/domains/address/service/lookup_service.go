package service

import (
	"context"
	"fmt"
	"time"

	"storefront-backend/internal/domains/address/gateway"
	"storefront-backend/internal/domains/address/model"
	shippingModel "storefront-backend/internal/domains/shipping/model"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/cache"
	"storefront-backend/pkg/logger"
)

const (
	postalCacheKeyPrefix   = "postal:"
	deliveryLocationPrefix = "delivery:location:"
)

type LookupService struct {
	lookup      gateway.PostalLookup
	cache       cache.Cache
	cacheTTL    time.Duration
	locationTTL time.Duration
	now         func() time.Time
}

func NewLookupService(lookup gateway.PostalLookup, c cache.Cache, cacheTTL, locationTTL time.Duration) *LookupService {
	return &LookupService{
		lookup:      lookup,
		cache:       c,
		cacheTTL:    cacheTTL,
		locationTTL: locationTTL,
		now:         time.Now,
	}
}

// NormalizePostalCode strips punctuation and checks the 8 digits
func NormalizePostalCode(raw string) (string, error) {
	digits := utils.OnlyDigits(raw)
	if len(digits) != 8 {
		return "", model.ErrInvalidPostalCode
	}
	return digits, nil
}

func (s *LookupService) Lookup(ctx context.Context, sessionID, postalCode string) (*model.LookupResult, error) {
	cep, err := NormalizePostalCode(postalCode)
	if err != nil {
		return nil, err
	}

	// Step 1: cached address
	addr := &model.Address{}
	found, err := s.cache.Get(ctx, postalCacheKeyPrefix+cep, addr)
	if err != nil {
		logger.Error("Postal cache read failed", err)
		found = false
	}

	// Step 2: remote lookup
	if !found {
		addr, err = s.lookup.Lookup(ctx, cep)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, postalCacheKeyPrefix+cep, addr, s.cacheTTL); err != nil {
			logger.Error("Postal cache write failed", err)
		}
	}

	// Step 3: remember where the shopper ships to
	location := model.DeliveryLocation{PostalCode: cep, City: addr.City, State: addr.State}
	if err := s.cache.Set(ctx, deliveryLocationPrefix+sessionID, location, s.locationTTL); err != nil {
		return nil, fmt.Errorf("failed to save delivery location: %w", err)
	}

	estimate := shippingModel.EstimateDelivery(s.now())
	return &model.LookupResult{
		Address:          *addr,
		DeliveryEstimate: estimate,
		DeliveryLabel:    estimate.Label(),
	}, nil
}

func (s *LookupService) GetDeliveryLocation(ctx context.Context, sessionID string) (*model.DeliveryLocation, error) {
	var location model.DeliveryLocation
	found, err := s.cache.Get(ctx, deliveryLocationPrefix+sessionID, &location)
	if err != nil {
		return nil, fmt.Errorf("failed to load delivery location: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &location, nil
}
