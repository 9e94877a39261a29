package handler

import (
	"errors"
	"net/http"

	checkoutModel "storefront-backend/internal/domains/checkout/model"
	orderModel "storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/payment/model"
	"storefront-backend/internal/domains/payment/service"
	"storefront-backend/internal/shared/middleware"
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

// ===================================
// POST /checkout/payment
// ===================================
func (h *Handler) Submit(c *gin.Context) {
	var req model.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.Submit(c.Request.Context(), middleware.GetSessionID(c), req)
	if err != nil {
		h.handleError(c, err, "Failed to process payment")
		return
	}

	status := http.StatusOK
	if !result.State.IsTerminal() {
		status = http.StatusAccepted
	}
	response.Success(c, status, result)
}

// ===================================
// GET /checkout/payment/:sale_id
// ===================================
func (h *Handler) Status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context(), middleware.GetSessionID(c), c.Param("sale_id"))
	if err != nil {
		h.handleError(c, err, "Failed to read payment status")
		return
	}
	response.Success(c, http.StatusOK, status)
}

// ===================================
// POST /checkout/payment/:sale_id/check
// ===================================
func (h *Handler) Check(c *gin.Context) {
	status, err := h.service.Check(c.Request.Context(), middleware.GetSessionID(c), c.Param("sale_id"))
	if err != nil {
		h.handleError(c, err, "Failed to check payment status")
		return
	}
	response.Success(c, http.StatusOK, status)
}

// ===================================
// DELETE /checkout/payment/:sale_id
// ===================================
func (h *Handler) Cancel(c *gin.Context) {
	if err := h.service.Cancel(c.Request.Context(), middleware.GetSessionID(c), c.Param("sale_id")); err != nil {
		h.handleError(c, err, "Failed to cancel payment")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sale_id": c.Param("sale_id"), "state": model.WatchCancelled})
}

func (h *Handler) handleError(c *gin.Context, err error, fallback string) {
	var verrs validation.Errors
	var rejection *model.RejectionError
	switch {
	case errors.As(err, &verrs):
		response.ValidationFailed(c, "Verifique os dados de pagamento", verrs)
	case errors.As(err, &rejection):
		response.ErrorResponse(c, http.StatusPaymentRequired, "PAYMENT_REJECTED", rejection.Message)
	case errors.Is(err, checkoutModel.ErrStepNotReached):
		response.ErrorResponse(c, http.StatusConflict, "STEP_NOT_REACHED", "Complete the previous checkout step first")
	case errors.Is(err, checkoutModel.ErrCartEmpty):
		response.ErrorResponse(c, http.StatusConflict, "CART_EMPTY", "Cart is empty")
	case errors.Is(err, orderModel.ErrStaleAttempt):
		response.ErrorResponse(c, http.StatusConflict, "CHECKOUT_CHANGED", "Checkout changed while the payment was processed")
	case errors.Is(err, model.ErrPaymentConfirming):
		response.ErrorResponse(c, http.StatusConflict, "PAYMENT_CONFIRMING", "Pagamento aprovado, seu pedido está sendo confirmado")
	case errors.Is(err, model.ErrSaleNotFound):
		response.NotFound(c, "Payment not found")
	case errors.Is(err, model.ErrPixDataMissing):
		response.BadGateway(c, "PIX_DATA_MISSING", "Não foi possível gerar o código PIX, tente novamente")
	case errors.Is(err, model.ErrGatewayUnavailable):
		response.BadGateway(c, "PAYMENT_GATEWAY_UNAVAILABLE", "Payment service is unavailable, try again later")
	default:
		logger.ErrorWithFields(fallback, err, map[string]interface{}{
			"session_id": middleware.GetSessionID(c),
		})
		response.InternalServerError(c, fallback)
	}
}
