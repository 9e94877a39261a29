package repository

import (
	"context"
	"fmt"
	"time"

	"storefront-backend/internal/domains/cart/model"
	"storefront-backend/pkg/cache"
)

const cartKeyPrefix = "cart:session:"

func cartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}

// RedisRepository stores one JSON cart per session
type RedisRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewRedisRepository(c cache.Cache, ttl time.Duration) *RedisRepository {
	return &RedisRepository{cache: c, ttl: ttl}
}

func (r *RedisRepository) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	cart := &model.Cart{}
	found, err := r.cache.Get(ctx, cartKey(sessionID), cart)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if !found {
		return &model.Cart{SessionID: sessionID, Items: []model.CartItem{}}, nil
	}
	cart.SessionID = sessionID
	return cart, nil
}

func (r *RedisRepository) Save(ctx context.Context, cart *model.Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	if err := r.cache.Set(ctx, cartKey(cart.SessionID), cart, r.ttl); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.cache.Delete(ctx, cartKey(sessionID)); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
