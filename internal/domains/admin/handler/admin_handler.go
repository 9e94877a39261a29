package handler

import (
	"errors"
	"net/http"

	"storefront-backend/internal/domains/admin/model"
	"storefront-backend/internal/domains/admin/service"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// POST /admin/login
func (h *Handler) Login(c *gin.Context) {
	// STEP 1: PARSE REQUEST
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// STEP 2: AUTHENTICATE
	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			response.ValidationFailed(c, "Validation failed", verrs)
		case errors.Is(err, model.ErrInvalidCredentials):
			response.ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		case errors.Is(err, model.ErrLoginDisabled):
			response.ErrorResponse(c, http.StatusServiceUnavailable, "ADMIN_LOGIN_DISABLED", "Admin login is not configured")
		default:
			logger.Error("Admin login failed", err)
			response.InternalServerError(c, "Login failed")
		}
		return
	}

	c.Header("Cache-Control", "no-store")
	response.Success(c, http.StatusOK, res)
}
