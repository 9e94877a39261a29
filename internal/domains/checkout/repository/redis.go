package repository

import (
	"context"
	"fmt"
	"time"

	"storefront-backend/internal/domains/checkout/model"
	"storefront-backend/pkg/cache"
)

const (
	sessionKeyPrefix       = "checkout:session:"
	couponRemovedKeyPrefix = "coupon:removed:"
)

type RedisRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewRedisRepository(c cache.Cache, ttl time.Duration) *RedisRepository {
	return &RedisRepository{cache: c, ttl: ttl}
}

func (r *RedisRepository) Get(ctx context.Context, sessionID string) (*model.Session, bool, error) {
	session := &model.Session{}
	found, err := r.cache.Get(ctx, sessionKeyPrefix+sessionID, session)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load checkout session: %w", err)
	}
	if !found {
		return nil, false, nil
	}
	return session, true, nil
}

func (r *RedisRepository) Save(ctx context.Context, session *model.Session) error {
	if err := r.cache.Set(ctx, sessionKeyPrefix+session.SessionID, session, r.ttl); err != nil {
		return fmt.Errorf("failed to save checkout session: %w", err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.cache.Delete(ctx, sessionKeyPrefix+sessionID); err != nil {
		return fmt.Errorf("failed to delete checkout session: %w", err)
	}
	return nil
}

func (r *RedisRepository) MarkCouponRemoved(ctx context.Context, sessionID string) error {
	if err := r.cache.Set(ctx, couponRemovedKeyPrefix+sessionID, true, r.ttl); err != nil {
		return fmt.Errorf("failed to set coupon removal flag: %w", err)
	}
	return nil
}

func (r *RedisRepository) ClearCouponRemoved(ctx context.Context, sessionID string) error {
	if err := r.cache.Delete(ctx, couponRemovedKeyPrefix+sessionID); err != nil {
		return fmt.Errorf("failed to clear coupon removal flag: %w", err)
	}
	return nil
}

func (r *RedisRepository) IsCouponRemoved(ctx context.Context, sessionID string) (bool, error) {
	removed, err := r.cache.Exists(ctx, couponRemovedKeyPrefix+sessionID)
	if err != nil {
		return false, fmt.Errorf("failed to read coupon removal flag: %w", err)
	}
	return removed, nil
}
