package service

import (
	"context"
	"fmt"

	"storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/cart/repository"
	"storefront-backend/internal/infrastructure/commerce"
	"storefront-backend/pkg/logger"
)

// HostedCheckoutCreator is the commerce platform cart mutation
type HostedCheckoutCreator interface {
	CreateCart(ctx context.Context, lines []commerce.CartLineInput) (*commerce.HostedCart, error)
}

type CartService struct {
	repo     repository.RepositoryInterface
	commerce HostedCheckoutCreator
}

func NewCartService(repo repository.RepositoryInterface, commerceClient HostedCheckoutCreator) *CartService {
	return &CartService{
		repo:     repo,
		commerce: commerceClient,
	}
}

func (s *CartService) GetCart(ctx context.Context, sessionID string) (*model.Cart, error) {
	return s.repo.Get(ctx, sessionID)
}

func (s *CartService) AddItem(ctx context.Context, sessionID string, req model.AddItemRequest) (*model.Cart, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.Add(req.ToItem())

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}

	logger.Debug("Cart item added", map[string]interface{}{
		"session_id": sessionID,
		"variant_id": req.VariantID,
		"quantity":   req.Quantity,
	})
	return cart, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, variantID string, quantity int) (*model.Cart, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := cart.UpdateQuantity(variantID, quantity); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID, variantID string) (*model.Cart, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.Remove(variantID)

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	return s.repo.Delete(ctx, sessionID)
}

func (s *CartService) CreateHostedCheckout(ctx context.Context, sessionID string) (string, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if cart.IsEmpty() {
		return "", model.ErrCartEmpty
	}

	lines := make([]commerce.CartLineInput, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, commerce.CartLineInput{
			MerchandiseID: item.VariantID,
			Quantity:      item.Quantity,
		})
	}

	hosted, err := s.commerce.CreateCart(ctx, lines)
	if err != nil {
		return "", fmt.Errorf("failed to create hosted checkout: %w", err)
	}
	return hosted.CheckoutURL, nil
}
