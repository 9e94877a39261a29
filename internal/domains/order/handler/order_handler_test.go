package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/order/service"
	"storefront-backend/internal/shared/middleware"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSession = "0b6a1f8e-4c52-4d6f-9a0e-5f3b2c1d7e90"

// stubService forgets a confirmation once it has been read
type stubService struct {
	service.ServiceInterface

	mu     sync.Mutex
	last   map[string]*model.OrderRecord
	report error
}

func (s *stubService) GetConfirmation(ctx context.Context, sessionID string) (*model.OrderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.last[sessionID]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	delete(s.last, sessionID)
	return record, nil
}

func (s *stubService) ListOrders(ctx context.Context, req model.ListOrdersRequest) ([]model.OrderListItem, int, error) {
	return nil, 0, s.report
}

func (s *stubService) GetSummary(ctx context.Context, req model.ListOrdersRequest) (*model.SalesSummary, error) {
	return nil, s.report
}

func (s *stubService) ExportOrders(ctx context.Context, req model.ListOrdersRequest) ([]byte, error) {
	return nil, s.report
}

func setupRouter(svc service.ServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.SessionMiddleware(middleware.DefaultSessionMiddlewareConfig()))

	h := NewHandler(svc)
	router.GET("/orders/confirmation", h.GetConfirmation)
	router.GET("/admin/orders", h.ListOrders)
	router.GET("/admin/orders/summary", h.GetSummary)
	router.GET("/admin/orders/export", h.ExportOrders)
	return router
}

func do(router *gin.Engine, path, sessionID string) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: sessionID})
	}
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

// =====================================================
// CONFIRMATION
// =====================================================

func TestGetConfirmation_ReadOnce(t *testing.T) {
	svc := &stubService{last: map[string]*model.OrderRecord{
		testSession: {
			OrderID:  "ORD-1",
			Total:    decimal.RequireFromString("129.90"),
			Currency: "BRL",
		},
	}}
	router := setupRouter(svc)

	w, body := do(router, "/orders/confirmation", testSession)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ORD-1", data["order_id"])
	assert.Equal(t, "BRL", data["currency"])

	// a reload finds nothing
	w, body = do(router, "/orders/confirmation", testSession)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, model.ErrCodeOrderNotFound, errorCode(t, body))
}

func TestGetConfirmation_OtherSessionNotFound(t *testing.T) {
	svc := &stubService{last: map[string]*model.OrderRecord{
		testSession: {OrderID: "ORD-1"},
	}}
	router := setupRouter(svc)

	w, body := do(router, "/orders/confirmation", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, model.ErrCodeOrderNotFound, errorCode(t, body))

	// the owner can still read it
	w, _ = do(router, "/orders/confirmation", testSession)
	assert.Equal(t, http.StatusOK, w.Code)
}

// =====================================================
// ADMIN ERROR MAPPING
// =====================================================

func TestAdmin_ErrorMapping(t *testing.T) {
	paths := []string{"/admin/orders", "/admin/orders/summary", "/admin/orders/export"}

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"reporting unavailable", model.ErrReportingUnavailable, http.StatusServiceUnavailable, model.ErrCodeReportingUnavailable},
		{"bad range", model.ErrInvalidReportingRange, http.StatusBadRequest, model.ErrCodeInvalidReportingFilter},
	}

	for _, tc := range cases {
		for _, path := range paths {
			t.Run(tc.name+" "+path, func(t *testing.T) {
				router := setupRouter(&stubService{report: tc.err})

				w, body := do(router, path, testSession)
				assert.Equal(t, tc.status, w.Code)
				assert.Equal(t, tc.code, errorCode(t, body))
			})
		}
	}
}
