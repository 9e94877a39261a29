package handler

import (
	"errors"
	"net/http"

	"storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/cart/service"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for cart
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ===================================
// GET /cart
// ===================================
func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.service.GetCart(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		logger.Error("Failed to get cart", err)
		response.InternalServerError(c, "Failed to get cart")
		return
	}

	response.Success(c, http.StatusOK, model.NewCartResponse(cart))
}

// ===================================
// POST /cart/items
// ===================================
func (h *Handler) AddItem(c *gin.Context) {
	var req model.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, "Invalid cart item", err)
		return
	}

	cart, err := h.service.AddItem(c.Request.Context(), middleware.GetSessionID(c), req)
	if err != nil {
		logger.Error("Failed to add cart item", err)
		response.InternalServerError(c, "Failed to add item")
		return
	}

	response.Success(c, http.StatusCreated, model.NewCartResponse(cart))
}

// ===================================
// PUT /cart/items/:variant_id
// ===================================
func (h *Handler) UpdateQuantity(c *gin.Context) {
	var req model.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, "Invalid quantity", err)
		return
	}

	cart, err := h.service.UpdateQuantity(c.Request.Context(), middleware.GetSessionID(c), c.Param("variant_id"), req.Quantity)
	if err != nil {
		if errors.Is(err, model.ErrCartItemNotFound) {
			response.NotFound(c, "Item is not in the cart")
			return
		}
		logger.Error("Failed to update cart item", err)
		response.InternalServerError(c, "Failed to update item")
		return
	}

	response.Success(c, http.StatusOK, model.NewCartResponse(cart))
}

// ===================================
// DELETE /cart/items/:variant_id
// ===================================
func (h *Handler) RemoveItem(c *gin.Context) {
	cart, err := h.service.RemoveItem(c.Request.Context(), middleware.GetSessionID(c), c.Param("variant_id"))
	if err != nil {
		logger.Error("Failed to remove cart item", err)
		response.InternalServerError(c, "Failed to remove item")
		return
	}

	response.Success(c, http.StatusOK, model.NewCartResponse(cart))
}

// ===================================
// DELETE /cart
// ===================================
func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.service.ClearCart(c.Request.Context(), middleware.GetSessionID(c)); err != nil {
		logger.Error("Failed to clear cart", err)
		response.InternalServerError(c, "Failed to clear cart")
		return
	}

	c.Status(http.StatusNoContent)
}

// ===================================
// POST /cart/checkout-url
// ===================================
func (h *Handler) CreateHostedCheckout(c *gin.Context) {
	url, err := h.service.CreateHostedCheckout(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		if errors.Is(err, model.ErrCartEmpty) {
			response.BadRequest(c, "Cart is empty")
			return
		}
		logger.Error("Failed to create hosted checkout", err)
		response.BadGateway(c, "COMMERCE_UNAVAILABLE", "Could not reach the store platform")
		return
	}

	response.Success(c, http.StatusOK, model.CheckoutURLResponse{CheckoutURL: url})
}
