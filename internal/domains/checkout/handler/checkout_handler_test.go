package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-backend/internal/domains/checkout/model"
	"storefront-backend/internal/domains/checkout/service"
	promotionModel "storefront-backend/internal/domains/promotion/model"
	"storefront-backend/internal/shared/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService overrides only what a test needs
type stubService struct {
	service.ServiceInterface
	submitIdentification func(req model.IdentificationRequest) (*model.CheckoutView, error)
	applyCoupon          func(req model.ApplyCouponRequest) (*model.CheckoutView, error)
	submitShipping       func(req model.ShippingRequest) (*model.CheckoutView, error)
}

func (s *stubService) SubmitIdentification(ctx context.Context, sessionID string, req model.IdentificationRequest) (*model.CheckoutView, error) {
	return s.submitIdentification(req)
}

func (s *stubService) ApplyCoupon(ctx context.Context, sessionID string, req model.ApplyCouponRequest) (*model.CheckoutView, error) {
	return s.applyCoupon(req)
}

func (s *stubService) SubmitShipping(ctx context.Context, sessionID string, req model.ShippingRequest) (*model.CheckoutView, error) {
	return s.submitShipping(req)
}

func setupRouter(svc service.ServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.SessionMiddleware(middleware.DefaultSessionMiddlewareConfig()))

	h := NewHandler(svc)
	router.POST("/checkout/identification", h.SubmitIdentification)
	router.POST("/checkout/shipping", h.SubmitShipping)
	router.POST("/checkout/coupon", h.ApplyCoupon)
	return router
}

func do(router *gin.Engine, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

func TestSubmitIdentification_ValidationFailed(t *testing.T) {
	svc := &stubService{
		submitIdentification: func(req model.IdentificationRequest) (*model.CheckoutView, error) {
			return nil, req.Validate()
		},
	}
	router := setupRouter(svc)

	w, body := do(router, "/checkout/identification", `{"name":"Ana","email":"ana@example.com","phone":"11987654321","cpf":"111.111.111-11"}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errBody, ok := body["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_FAILED", errBody["code"])

	details, ok := errBody["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "cpf")
	assert.Contains(t, details, "name")
	assert.NotContains(t, details, "email")
}

func TestSubmitIdentification_Success(t *testing.T) {
	svc := &stubService{
		submitIdentification: func(req model.IdentificationRequest) (*model.CheckoutView, error) {
			return &model.CheckoutView{Step: model.StepShipping}, nil
		},
	}
	router := setupRouter(svc)

	w, body := do(router, "/checkout/identification", `{"name":"Ana Souza","email":"ana@example.com","phone":"11987654321","cpf":"529.982.247-25"}`)

	require.Equal(t, http.StatusOK, w.Code)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "shipping", data["step"])
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		err      error
		wantCode int
	}{
		{"step not reached", "/checkout/shipping", model.ErrStepNotReached, http.StatusConflict},
		{"coupon not found", "/checkout/coupon", promotionModel.ErrCouponNotFound, http.StatusNotFound},
		{"coupon not eligible", "/checkout/coupon", promotionModel.ErrCouponNotEligible, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{
				applyCoupon: func(model.ApplyCouponRequest) (*model.CheckoutView, error) {
					return nil, tt.err
				},
				submitShipping: func(model.ShippingRequest) (*model.CheckoutView, error) {
					return nil, tt.err
				},
			}
			router := setupRouter(svc)

			w, _ := do(router, tt.path, `{"code":"X"}`)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
