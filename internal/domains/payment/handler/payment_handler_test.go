package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	checkoutModel "storefront-backend/internal/domains/checkout/model"
	"storefront-backend/internal/domains/payment/model"
	"storefront-backend/internal/domains/payment/service"
	"storefront-backend/internal/shared/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	service.ServiceInterface
	submit func(req model.PaymentRequest) (*model.SubmitResult, error)
	status func(saleID string) (*model.WatchStatus, error)
}

func (s *stubService) Submit(ctx context.Context, sessionID string, req model.PaymentRequest) (*model.SubmitResult, error) {
	return s.submit(req)
}

func (s *stubService) Status(ctx context.Context, sessionID, saleID string) (*model.WatchStatus, error) {
	return s.status(saleID)
}

func setupRouter(svc service.ServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.SessionMiddleware(middleware.DefaultSessionMiddlewareConfig()))

	h := NewHandler(svc)
	router.POST("/checkout/payment", h.Submit)
	router.GET("/checkout/payment/:sale_id", h.Status)
	return router
}

func do(router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

func errorCode(t *testing.T, body map[string]interface{}) string {
	t.Helper()
	errBody, ok := body["error"].(map[string]interface{})
	require.True(t, ok)
	code, _ := errBody["code"].(string)
	return code
}

func TestSubmit_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"rejected", &model.RejectionError{Message: "saldo insuficiente"}, http.StatusPaymentRequired, "PAYMENT_REJECTED"},
		{"pix data missing", model.ErrPixDataMissing, http.StatusBadGateway, "PIX_DATA_MISSING"},
		{"gateway down", model.ErrGatewayUnavailable, http.StatusBadGateway, "PAYMENT_GATEWAY_UNAVAILABLE"},
		{"step", checkoutModel.ErrStepNotReached, http.StatusConflict, "STEP_NOT_REACHED"},
		{"confirming", model.ErrPaymentConfirming, http.StatusConflict, "PAYMENT_CONFIRMING"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := setupRouter(&stubService{
				submit: func(req model.PaymentRequest) (*model.SubmitResult, error) { return nil, tc.err },
			})

			w, body := do(router, http.MethodPost, "/checkout/payment", `{"method":"pix"}`)
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, errorCode(t, body))
		})
	}
}

func TestSubmit_RejectionShowsGatewayMessage(t *testing.T) {
	router := setupRouter(&stubService{
		submit: func(req model.PaymentRequest) (*model.SubmitResult, error) {
			return nil, &model.RejectionError{Message: "saldo insuficiente"}
		},
	})

	_, body := do(router, http.MethodPost, "/checkout/payment", `{"method":"credit_card"}`)
	errBody := body["error"].(map[string]interface{})
	assert.Equal(t, "saldo insuficiente", errBody["message"])
}

func TestSubmit_ValidationFailed(t *testing.T) {
	router := setupRouter(&stubService{
		submit: func(req model.PaymentRequest) (*model.SubmitResult, error) { return nil, req.Validate() },
	})

	w, body := do(router, http.MethodPost, "/checkout/payment", `{"method":"credit_card"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, body))
}

func TestSubmit_PixAccepted(t *testing.T) {
	router := setupRouter(&stubService{
		submit: func(req model.PaymentRequest) (*model.SubmitResult, error) {
			return &model.SubmitResult{
				Method: model.MethodPix,
				State:  model.WatchAwaitingPayment,
				Pix:    &model.PixView{SaleID: "sale-1", CopyPaste: "000201"},
			}, nil
		},
	})

	w, body := do(router, http.MethodPost, "/checkout/payment", `{"method":"pix"}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	data := body["data"].(map[string]interface{})
	pix := data["pix"].(map[string]interface{})
	assert.Equal(t, "sale-1", pix["sale_id"])
}

func TestSubmit_CardConfirmingAccepted(t *testing.T) {
	router := setupRouter(&stubService{
		submit: func(req model.PaymentRequest) (*model.SubmitResult, error) {
			return &model.SubmitResult{Method: model.MethodCreditCard, State: model.WatchConfirming, SaleID: "sale-9"}, nil
		},
	})

	w, body := do(router, http.MethodPost, "/checkout/payment", `{"method":"credit_card"}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "confirming", data["state"])
	assert.Equal(t, "sale-9", data["sale_id"])
}

func TestStatus_NotFound(t *testing.T) {
	router := setupRouter(&stubService{
		status: func(saleID string) (*model.WatchStatus, error) { return nil, model.ErrSaleNotFound },
	})

	w, _ := do(router, http.MethodGet, "/checkout/payment/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
