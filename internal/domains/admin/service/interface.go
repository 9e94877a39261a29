package service

import (
	"context"

	"storefront-backend/internal/domains/admin/model"
)

type ServiceInterface interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
}
