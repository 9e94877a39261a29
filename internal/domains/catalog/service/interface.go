package service

import (
	"context"

	"storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/infrastructure/commerce"
)

type ServiceInterface interface {
	ListProducts(ctx context.Context, req model.ListProductsRequest) (*commerce.ProductPage, error)
}
