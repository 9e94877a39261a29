package handler

import (
	"errors"
	"net/http"

	"storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/catalog/service"
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

// GET /products?query=&after=&first=
func (h *Handler) ListProducts(c *gin.Context) {
	var req model.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	page, err := h.service.ListProducts(c.Request.Context(), req)
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			response.ValidationFailed(c, "Invalid query parameters", verrs)
		case errors.Is(err, model.ErrCatalogUnavailable):
			logger.Error("Catalog query failed", err)
			response.BadGateway(c, "CATALOG_UNAVAILABLE", "Catalog is unavailable, try again later")
		default:
			logger.Error("Failed to list products", err)
			response.InternalServerError(c, "Failed to list products")
		}
		return
	}

	c.Header("Cache-Control", "public, max-age=60")
	response.Success(c, http.StatusOK, page)
}
