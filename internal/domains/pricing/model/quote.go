package model

import (
	shippingModel "storefront-backend/internal/domains/shipping/model"

	"github.com/shopspring/decimal"
)

// Quote is the price breakdown shown at checkout and sent to the gateway
type Quote struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Total        decimal.Decimal `json:"total"`
	TotalItems   int             `json:"total_items"`
	Currency     string          `json:"currency"`

	CouponCode string `json:"coupon_code,omitempty"`
	CouponKind string `json:"coupon_kind,omitempty"`

	SelectedShipping    shippingModel.OptionID `json:"selected_shipping"`
	EffectiveShipping   shippingModel.OptionID `json:"effective_shipping"`
	FreeShippingApplied bool                   `json:"free_shipping_applied"`
	FixedTotalApplied   bool                   `json:"fixed_total_applied"`
}

// ItemsTotal is what the line items must add up to after discount
func (q Quote) ItemsTotal() decimal.Decimal {
	return q.Total.Sub(q.ShippingCost)
}
