package model

import (
	cartModel "storefront-backend/internal/domains/cart/model"
	pricingModel "storefront-backend/internal/domains/pricing/model"
	promotionModel "storefront-backend/internal/domains/promotion/model"
)

// Snapshot is one consistent read of session, cart and quote. Payment
// submission and order finalization both work from a snapshot.
type Snapshot struct {
	Session *Session               `json:"session"`
	Cart    *cartModel.Cart        `json:"cart"`
	Coupon  *promotionModel.Coupon `json:"coupon,omitempty"`
	Quote   pricingModel.Quote     `json:"quote"`
}
