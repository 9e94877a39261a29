package job

import (
	"context"
	"fmt"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

type TrackCheckoutHandler struct{}

func NewTrackCheckoutHandler() *TrackCheckoutHandler {
	return &TrackCheckoutHandler{}
}

func (h *TrackCheckoutHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload model.TrackCheckoutPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	logger.Info("Checkout converted", map[string]interface{}{
		"order_id":       payload.OrderID,
		"session_id":     payload.SessionID,
		"total":          payload.Total.String(),
		"discount":       payload.Discount.String(),
		"item_count":     payload.ItemCount,
		"payment_method": payload.PaymentMethod,
		"coupon_code":    payload.CouponCode,
	})
	return nil
}
