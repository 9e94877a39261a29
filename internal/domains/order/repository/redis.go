package repository

import (
	"context"
	"fmt"
	"time"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/pkg/cache"
)

const lastOrderKeyPrefix = "order:last:"

type RedisSnapshotRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewRedisSnapshotRepository(c cache.Cache, ttl time.Duration) *RedisSnapshotRepository {
	return &RedisSnapshotRepository{cache: c, ttl: ttl}
}

// Save overwrites any previous unread record of the session
func (r *RedisSnapshotRepository) Save(ctx context.Context, record *model.OrderRecord) error {
	if err := r.cache.Set(ctx, lastOrderKeyPrefix+record.SessionID, record, r.ttl); err != nil {
		return fmt.Errorf("failed to save order snapshot: %w", err)
	}
	return nil
}

func (r *RedisSnapshotRepository) Take(ctx context.Context, sessionID string) (*model.OrderRecord, bool, error) {
	record := &model.OrderRecord{}
	found, err := r.cache.GetDelete(ctx, lastOrderKeyPrefix+sessionID, record)
	if err != nil {
		return nil, false, fmt.Errorf("failed to take order snapshot: %w", err)
	}
	if !found {
		return nil, false, nil
	}
	record.SessionID = sessionID
	return record, true, nil
}
