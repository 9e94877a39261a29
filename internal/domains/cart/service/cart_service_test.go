package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/cart/repository"
	infraCache "storefront-backend/internal/infrastructure/cache"
	"storefront-backend/internal/infrastructure/commerce"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCommerce struct {
	lines []commerce.CartLineInput
	url   string
	err   error
}

func (m *mockCommerce) CreateCart(ctx context.Context, lines []commerce.CartLineInput) (*commerce.HostedCart, error) {
	m.lines = lines
	if m.err != nil {
		return nil, m.err
	}
	return &commerce.HostedCart{ID: "cart-1", CheckoutURL: m.url}, nil
}

func setupService(t *testing.T) (*CartService, *mockCommerce, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := repository.NewRedisRepository(infraCache.NewRedisCache(client), 24*time.Hour)
	mc := &mockCommerce{url: "https://shop.example/checkout/abc"}
	return NewCartService(repo, mc), mc, mr
}

func addReq(variantID string, qty int) model.AddItemRequest {
	return model.AddItemRequest{
		ProductID:    "p-" + variantID,
		ProductTitle: "Moletom",
		VariantID:    variantID,
		UnitPrice:    decimal.RequireFromString("100.00"),
		Quantity:     qty,
	}
}

func TestCartService_AddAndPersist(t *testing.T) {
	svc, _, mr := setupService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", addReq("v1", 1))
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "s1", addReq("v1", 1))
	require.NoError(t, err)

	cart, err := svc.GetCart(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.TotalItems())
	assert.True(t, mr.Exists("cart:session:s1"))

	other, err := svc.GetCart(ctx, "s2")
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())
}

func TestCartService_UpdateQuantityToZeroRemoves(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", addReq("v1", 3))
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, "s1", "v1", 0)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	_, err = svc.UpdateQuantity(ctx, "s1", "v1", 2)
	assert.ErrorIs(t, err, model.ErrCartItemNotFound)
}

func TestCartService_ClearCartIsIdempotent(t *testing.T) {
	svc, _, mr := setupService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", addReq("v1", 1))
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(ctx, "s1"))
	require.NoError(t, svc.ClearCart(ctx, "s1"))

	assert.False(t, mr.Exists("cart:session:s1"))
	cart, err := svc.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, cart.TotalItems())
}

func TestCartService_CreateHostedCheckout(t *testing.T) {
	svc, mc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateHostedCheckout(ctx, "s1")
	assert.ErrorIs(t, err, model.ErrCartEmpty)

	_, err = svc.AddItem(ctx, "s1", addReq("v1", 2))
	require.NoError(t, err)

	url, err := svc.CreateHostedCheckout(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example/checkout/abc", url)
	require.Len(t, mc.lines, 1)
	assert.Equal(t, commerce.CartLineInput{MerchandiseID: "v1", Quantity: 2}, mc.lines[0])

	mc.err = errors.New("platform down")
	_, err = svc.CreateHostedCheckout(ctx, "s1")
	assert.Error(t, err)
}

func TestCartService_RedisFailure(t *testing.T) {
	svc, _, mr := setupService(t)
	mr.SetError("READONLY")

	_, err := svc.AddItem(context.Background(), "s1", addReq("v1", 1))
	assert.Error(t, err)
}
