package handler

import (
	"errors"
	"net/http"

	"storefront-backend/internal/domains/checkout/model"
	"storefront-backend/internal/domains/checkout/service"
	promotionModel "storefront-backend/internal/domains/promotion/model"
	shippingModel "storefront-backend/internal/domains/shipping/model"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Handler handles HTTP requests for the checkout steps
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ===================================
// GET /checkout
// ===================================
func (h *Handler) GetCheckout(c *gin.Context) {
	view, err := h.service.GetCheckout(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.handleError(c, err, "Failed to load checkout")
		return
	}
	response.Success(c, http.StatusOK, view)
}

// ===================================
// POST /checkout/identification
// ===================================
func (h *Handler) SubmitIdentification(c *gin.Context) {
	var req model.IdentificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.service.SubmitIdentification(c.Request.Context(), middleware.GetSessionID(c), req)
	if err != nil {
		h.handleError(c, err, "Failed to save identification")
		return
	}
	response.Success(c, http.StatusOK, view)
}

// ===================================
// POST /checkout/shipping
// ===================================
func (h *Handler) SubmitShipping(c *gin.Context) {
	var req model.ShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.service.SubmitShipping(c.Request.Context(), middleware.GetSessionID(c), req)
	if err != nil {
		h.handleError(c, err, "Failed to save shipping address")
		return
	}
	response.Success(c, http.StatusOK, view)
}

// ===================================
// POST /checkout/back
// ===================================
func (h *Handler) GoBack(c *gin.Context) {
	view, err := h.service.GoBack(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.handleError(c, err, "Failed to go back")
		return
	}
	response.Success(c, http.StatusOK, view)
}

// ===================================
// POST /checkout/coupon
// ===================================
func (h *Handler) ApplyCoupon(c *gin.Context) {
	var req model.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.service.ApplyCoupon(c.Request.Context(), middleware.GetSessionID(c), req)
	if err != nil {
		h.handleError(c, err, "Failed to apply coupon")
		return
	}
	response.Success(c, http.StatusOK, view)
}

// ===================================
// DELETE /checkout/coupon
// ===================================
func (h *Handler) RemoveCoupon(c *gin.Context) {
	view, err := h.service.RemoveCoupon(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.handleError(c, err, "Failed to remove coupon")
		return
	}
	response.Success(c, http.StatusOK, view)
}

// ===================================
// PUT /checkout/shipping-option
// ===================================
func (h *Handler) SelectShipping(c *gin.Context) {
	var req model.SelectShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.service.SelectShipping(c.Request.Context(), middleware.GetSessionID(c), req)
	if err != nil {
		h.handleError(c, err, "Failed to select shipping option")
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) handleError(c *gin.Context, err error, fallback string) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ValidationFailed(c, "Verifique os campos destacados", verrs)
	case errors.Is(err, model.ErrStepNotReached):
		response.ErrorResponse(c, http.StatusConflict, "STEP_NOT_REACHED", "Complete the previous checkout step first")
	case errors.Is(err, model.ErrCartEmpty):
		response.ErrorResponse(c, http.StatusConflict, "CART_EMPTY", "Cart is empty")
	case errors.Is(err, promotionModel.ErrCouponNotFound):
		response.ErrorResponse(c, http.StatusNotFound, string(promotionModel.ErrCodeCouponNotFound), "Coupon not found")
	case errors.Is(err, promotionModel.ErrCouponNotEligible):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, string(promotionModel.ErrCodeCouponNotEligible), "Cart does not meet the coupon requirements")
	case errors.Is(err, shippingModel.ErrFreeShippingNotEligible):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, "FREE_SHIPPING_NOT_ELIGIBLE", "Free shipping needs more items in the cart")
	case errors.Is(err, shippingModel.ErrUnknownOption):
		response.BadRequest(c, "Unknown shipping option")
	default:
		logger.ErrorWithFields(fallback, err, map[string]interface{}{
			"session_id": middleware.GetSessionID(c),
		})
		response.InternalServerError(c, fallback)
	}
}
