package service

import (
	"context"
	"fmt"
	"time"

	"storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/infrastructure/commerce"
	"storefront-backend/pkg/cache"
	"storefront-backend/pkg/logger"
)

// ProductSource is the product query of the commerce platform
type ProductSource interface {
	SearchProducts(ctx context.Context, q commerce.ProductQuery) (*commerce.ProductPage, error)
}

type CatalogService struct {
	source   ProductSource
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewCatalogService(source ProductSource, c cache.Cache, cacheTTL time.Duration) *CatalogService {
	return &CatalogService{source: source, cache: c, cacheTTL: cacheTTL}
}

// ListProducts serves a page from cache, falling back to the commerce platform.
// Cache failures are logged and never fail the request.
func (s *CatalogService) ListProducts(ctx context.Context, req model.ListProductsRequest) (*commerce.ProductPage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req = req.Normalize()
	key := req.CacheKey()

	page := &commerce.ProductPage{}
	found, err := s.cache.Get(ctx, key, page)
	if err != nil {
		logger.Error("Catalog cache read failed", err)
	}
	if found {
		return page, nil
	}

	page, err = s.source.SearchProducts(ctx, commerce.ProductQuery{
		Search: req.Query,
		First:  req.First,
		After:  req.After,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCatalogUnavailable, err)
	}

	if err := s.cache.Set(ctx, key, page, s.cacheTTL); err != nil {
		logger.Error("Catalog cache write failed", err)
	}
	return page, nil
}
