package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/order/service"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ===================================
// GET /orders/confirmation
// ===================================

// GetConfirmation returns the order once; a reload gets 404
func (h *Handler) GetConfirmation(c *gin.Context) {
	record, err := h.service.GetConfirmation(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeOrderNotFound, "No recent order for this session")
			return
		}
		logger.Error("Failed to read order confirmation", err)
		response.InternalServerError(c, "Failed to read order confirmation")
		return
	}

	c.Header("Cache-Control", "no-store")
	response.Success(c, http.StatusOK, record)
}

// ===================================
// GET /admin/orders
// ===================================
func (h *Handler) ListOrders(c *gin.Context) {
	var req model.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	orders, total, err := h.service.ListOrders(c.Request.Context(), req)
	if err != nil {
		h.handleAdminError(c, err, "Failed to list orders")
		return
	}

	page, limit := req.Page, req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	response.SuccessWithMeta(c, http.StatusOK, orders, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// ===================================
// GET /admin/orders/summary
// ===================================
func (h *Handler) GetSummary(c *gin.Context) {
	var req model.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	summary, err := h.service.GetSummary(c.Request.Context(), req)
	if err != nil {
		h.handleAdminError(c, err, "Failed to summarize orders")
		return
	}
	response.Success(c, http.StatusOK, summary)
}

// ===================================
// GET /admin/orders/export
// ===================================
func (h *Handler) ExportOrders(c *gin.Context) {
	var req model.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	data, err := h.service.ExportOrders(c.Request.Context(), req)
	if err != nil {
		h.handleAdminError(c, err, "Failed to export orders")
		return
	}

	filename := fmt.Sprintf("pedidos_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *Handler) handleAdminError(c *gin.Context, err error, fallback string) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ValidationFailed(c, "Invalid filter", verrs)
	case errors.Is(err, model.ErrInvalidReportingRange):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidReportingFilter, "Invalid date range")
	case errors.Is(err, model.ErrReportingUnavailable):
		response.ErrorResponse(c, http.StatusServiceUnavailable, model.ErrCodeReportingUnavailable, "Order reporting is not available")
	default:
		logger.Error(fallback, err)
		response.InternalServerError(c, fallback)
	}
}
