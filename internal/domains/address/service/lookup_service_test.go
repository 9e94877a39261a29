package service

import (
	"context"
	"testing"
	"time"

	"storefront-backend/internal/domains/address/model"
	infraCache "storefront-backend/internal/infrastructure/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLookup struct {
	calls int
	addr  *model.Address
	err   error
}

func (m *mockLookup) Lookup(ctx context.Context, postalCode string) (*model.Address, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	a := *m.addr
	a.PostalCode = postalCode
	return &a, nil
}

func setupLookupService(t *testing.T, lookup *mockLookup) *LookupService {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	svc := NewLookupService(lookup, infraCache.NewRedisCache(client), time.Hour, time.Hour)
	svc.now = func() time.Time { return time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestLookupService_Lookup(t *testing.T) {
	lookup := &mockLookup{addr: &model.Address{Street: "Rua Augusta", Neighborhood: "Consolação", City: "São Paulo", State: "SP"}}
	svc := setupLookupService(t, lookup)
	ctx := context.Background()

	result, err := svc.Lookup(ctx, "s1", "01305-000")
	require.NoError(t, err)

	assert.Equal(t, "01305000", result.Address.PostalCode)
	assert.Equal(t, "Rua Augusta", result.Address.Street)
	assert.Equal(t, time.Date(2026, time.January, 14, 0, 0, 0, 0, time.UTC), result.DeliveryEstimate.From)
	assert.Equal(t, time.Date(2026, time.January, 17, 0, 0, 0, 0, time.UTC), result.DeliveryEstimate.To)
	assert.Equal(t, "14/01 a 17/01", result.DeliveryLabel)

	location, err := svc.GetDeliveryLocation(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, location)
	assert.Equal(t, model.DeliveryLocation{PostalCode: "01305000", City: "São Paulo", State: "SP"}, *location)
}

func TestLookupService_CachesAddresses(t *testing.T) {
	lookup := &mockLookup{addr: &model.Address{City: "Recife", State: "PE"}}
	svc := setupLookupService(t, lookup)
	ctx := context.Background()

	_, err := svc.Lookup(ctx, "s1", "50030230")
	require.NoError(t, err)
	_, err = svc.Lookup(ctx, "s2", "50030-230")
	require.NoError(t, err)

	assert.Equal(t, 1, lookup.calls)
}

func TestLookupService_InvalidPostalCode(t *testing.T) {
	lookup := &mockLookup{}
	svc := setupLookupService(t, lookup)

	_, err := svc.Lookup(context.Background(), "s1", "1234")
	assert.ErrorIs(t, err, model.ErrInvalidPostalCode)
	assert.Zero(t, lookup.calls)
}

func TestLookupService_NotFoundLeavesNoLocation(t *testing.T) {
	lookup := &mockLookup{err: model.ErrPostalCodeNotFound}
	svc := setupLookupService(t, lookup)
	ctx := context.Background()

	_, err := svc.Lookup(ctx, "s1", "99999999")
	assert.ErrorIs(t, err, model.ErrPostalCodeNotFound)

	location, err := svc.GetDeliveryLocation(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, location)
}
