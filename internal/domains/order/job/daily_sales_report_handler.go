package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

type SalesSummarizer interface {
	Summary(ctx context.Context, filter model.OrderFilter) (*model.SalesSummary, error)
}

type DailySalesReportHandler struct {
	orders SalesSummarizer
	now    func() time.Time
}

// NewDailySalesReportHandler accepts a nil store, in which case reports are skipped
func NewDailySalesReportHandler(orders SalesSummarizer) *DailySalesReportHandler {
	return &DailySalesReportHandler{
		orders: orders,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (h *DailySalesReportHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload model.DailySalesReportPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			logger.Error("Unmarshal daily sales report payload failed", err)
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
	}

	if h.orders == nil {
		logger.Warn("Daily sales report skipped, reporting store not configured", nil)
		return nil
	}

	day := payload.Date
	if day.IsZero() {
		day = h.now().AddDate(0, 0, -1)
	}
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	summary, err := h.orders.Summary(ctx, model.OrderFilter{From: from, To: from.AddDate(0, 0, 1)})
	if err != nil {
		return fmt.Errorf("failed to build daily sales report: %w", err)
	}

	logger.Info("Daily sales report", map[string]interface{}{
		"date":           from.Format("2006-01-02"),
		"orders":         summary.Orders,
		"items_sold":     summary.ItemsSold,
		"revenue":        summary.Revenue.String(),
		"discounts":      summary.Discounts.String(),
		"average_ticket": summary.AverageTicket.String(),
		"coupon_orders":  summary.CouponOrders,
	})
	return nil
}
