package service

import (
	cartModel "storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/pricing/model"
	promotionModel "storefront-backend/internal/domains/promotion/model"
	shippingModel "storefront-backend/internal/domains/shipping/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Input is one consistent read of cart, coupon and shipping selection
type Input struct {
	Items            []cartModel.CartItem
	Coupon           *promotionModel.Coupon
	SelectedShipping shippingModel.OptionID
	Currency         string
}

// Calculator prices a checkout. It has no side effects.
type Calculator struct {
	shipping shippingModel.Policy
}

func NewCalculator(shipping shippingModel.Policy) *Calculator {
	return &Calculator{shipping: shipping}
}

// Calculate
//
// Step 1: subtotal = Σ unit × qty
// Step 2: discount (percentage of subtotal, or implied by a fixed total)
// Step 3: shipping from the effective option (free at the item threshold)
// Step 4: total = subtotal − discount + shipping, or the fixed total
func (c *Calculator) Calculate(in Input) (model.Quote, error) {
	quote := model.Quote{
		Subtotal:         decimal.Zero,
		Discount:         decimal.Zero,
		ShippingCost:     decimal.Zero,
		Currency:         in.Currency,
		SelectedShipping: in.SelectedShipping,
	}
	if quote.Currency == "" {
		quote.Currency = cartModel.DefaultCurrency
	}

	// Step 1
	for _, item := range in.Items {
		quote.Subtotal = quote.Subtotal.Add(item.LineTotal())
		quote.TotalItems += item.Quantity
	}

	// Step 3, resolved before the discount so a fixed total can zero it
	effective, free, err := c.shipping.Effective(in.SelectedShipping, quote.TotalItems)
	if err != nil {
		return model.Quote{}, err
	}
	quote.EffectiveShipping = effective.ID
	quote.FreeShippingApplied = free
	quote.ShippingCost = effective.Price

	// Step 2 + 4
	coupon := in.Coupon
	switch {
	case coupon == nil:
		quote.Total = quote.Subtotal.Add(quote.ShippingCost)

	case coupon.Kind == promotionModel.CouponKindPercentage:
		quote.CouponCode = coupon.Code
		quote.CouponKind = string(coupon.Kind)
		quote.Discount = quote.Subtotal.Mul(coupon.Percent).Div(hundred).Round(2)
		quote.Total = quote.Subtotal.Sub(quote.Discount).Add(quote.ShippingCost)

	case coupon.Kind == promotionModel.CouponKindFixedTotal:
		quote.CouponCode = coupon.Code
		quote.CouponKind = string(coupon.Kind)
		quote.FixedTotalApplied = true
		quote.ShippingCost = decimal.Zero
		quote.Total = coupon.FixedTotal
		if implied := quote.Subtotal.Sub(coupon.FixedTotal); implied.IsPositive() {
			quote.Discount = implied
		}

	default:
		quote.Total = quote.Subtotal.Add(quote.ShippingCost)
	}

	quote.Subtotal = quote.Subtotal.Round(2)
	quote.Total = quote.Total.Round(2)
	return quote, nil
}
