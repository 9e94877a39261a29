package job

import (
	"context"
	"errors"
	"fmt"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/infrastructure/commerce"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

// OrderMirror creates a draft order on the commerce platform
type OrderMirror interface {
	MirrorOrder(ctx context.Context, req commerce.MirrorOrderRequest) (*commerce.MirrorOrderResponse, error)
}

type MirrorOrderHandler struct {
	mirror OrderMirror
}

func NewMirrorOrderHandler(mirror OrderMirror) *MirrorOrderHandler {
	return &MirrorOrderHandler{mirror: mirror}
}

func (h *MirrorOrderHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload model.MirrorOrderPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	resp, err := h.mirror.MirrorOrder(ctx, ToMirrorRequest(&payload.Order))
	if err != nil {
		if errors.Is(err, commerce.ErrNotConfigured) {
			logger.Warn("Order mirroring skipped, proxy not configured", map[string]interface{}{
				"order_id": payload.Order.OrderID,
			})
			return nil
		}
		logger.ErrorWithFields("Order mirroring failed", err, map[string]interface{}{
			"order_id": payload.Order.OrderID,
		})
		return err
	}

	logger.Info("Order mirrored", map[string]interface{}{
		"order_id":       payload.Order.OrderID,
		"draft_order_id": resp.DraftOrderID,
	})
	return nil
}

// ToMirrorRequest maps an order to the mirroring proxy payload
func ToMirrorRequest(o *model.OrderRecord) commerce.MirrorOrderRequest {
	items := make([]commerce.MirrorLineItem, 0, len(o.Items))
	for _, it := range o.Items {
		title := it.Title
		if it.VariantTitle != "" {
			title += " - " + it.VariantTitle
		}
		items = append(items, commerce.MirrorLineItem{
			VariantID: it.VariantID,
			Title:     title,
			Quantity:  it.Quantity,
			Price:     it.UnitPrice,
		})
	}

	addr := o.Customer.Address
	return commerce.MirrorOrderRequest{
		OrderID: o.OrderID,
		Items:   items,
		Customer: commerce.MirrorCustomer{
			Name:  o.Customer.Name,
			Email: o.Customer.Email,
			Phone: o.Customer.Phone,
			CPF:   o.Customer.CPF,
		},
		Shipping: commerce.MirrorAddress{
			PostalCode:   addr.PostalCode,
			Street:       addr.Street,
			Number:       addr.Number,
			Complement:   addr.Complement,
			Neighborhood: addr.Neighborhood,
			City:         addr.City,
			State:        addr.State,
			Country:      "BR",
		},
		PaymentMethod: o.Payment.Method,
		Discount:      o.Discount,
		ShippingCost:  o.ShippingCost,
		Total:         o.Total,
	}
}
