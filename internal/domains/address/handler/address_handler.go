package handler

import (
	"errors"
	"net/http"

	"storefront-backend/internal/domains/address/model"
	"storefront-backend/internal/domains/address/service"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// GET /address/lookup/:postal_code
func (h *Handler) Lookup(c *gin.Context) {
	result, err := h.service.Lookup(c.Request.Context(), middleware.GetSessionID(c), c.Param("postal_code"))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidPostalCode):
			response.ValidationFailed(c, "CEP inválido", map[string]string{"postal_code": err.Error()})
		case errors.Is(err, model.ErrPostalCodeNotFound):
			response.ErrorResponse(c, http.StatusNotFound, "POSTAL_CODE_NOT_FOUND", "CEP não encontrado")
		default:
			logger.Error("Postal code lookup failed", err)
			response.BadGateway(c, "POSTAL_LOOKUP_FAILED", "Não foi possível consultar o CEP")
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GET /address/delivery-location
func (h *Handler) GetDeliveryLocation(c *gin.Context) {
	location, err := h.service.GetDeliveryLocation(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		logger.Error("Failed to load delivery location", err)
		response.InternalServerError(c, "Failed to load delivery location")
		return
	}
	if location == nil {
		response.NotFound(c, "No delivery location yet")
		return
	}

	response.Success(c, http.StatusOK, location)
}
