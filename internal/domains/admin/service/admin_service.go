package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront-backend/internal/domains/admin/model"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

const adminUserID = "admin"

// TokenIssuer is satisfied by *jwt.Manager
type TokenIssuer interface {
	GenerateAccessToken(userID, email, role string) (string, time.Time, error)
}

// Credentials is the single dashboard account
type Credentials struct {
	Email        string
	PasswordHash string
}

type AdminService struct {
	creds  Credentials
	tokens TokenIssuer
}

func NewAdminService(creds Credentials, tokens TokenIssuer) *AdminService {
	return &AdminService{creds: creds, tokens: tokens}
}

func (s *AdminService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.creds.PasswordHash == "" {
		return nil, model.ErrLoginDisabled
	}

	// 2. VERIFY CREDENTIALS
	// compare the hash even when the email is wrong
	emailOK := strings.EqualFold(strings.TrimSpace(req.Email), s.creds.Email)
	passErr := bcrypt.CompareHashAndPassword([]byte(s.creds.PasswordHash), []byte(req.Password))
	if !emailOK || passErr != nil {
		logger.Warn("Admin login failed", map[string]interface{}{
			"email": req.Email,
		})
		return nil, model.ErrInvalidCredentials
	}

	// 3. ISSUE ACCESS TOKEN
	token, expiresAt, err := s.tokens.GenerateAccessToken(adminUserID, s.creds.Email, middleware.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	logger.Info("Admin logged in", map[string]interface{}{
		"email": s.creds.Email,
	})
	return &model.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Email:       s.creds.Email,
	}, nil
}
