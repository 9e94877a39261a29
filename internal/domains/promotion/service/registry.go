package service

import (
	"fmt"

	"storefront-backend/internal/config"
	"storefront-backend/internal/domains/promotion/model"
	"storefront-backend/internal/shared/utils"
)

// Registry is the fixed set of coupons the storefront accepts
type Registry struct {
	coupons map[string]model.Coupon
	order   []string
}

func NewRegistry(coupons ...model.Coupon) *Registry {
	r := &Registry{coupons: make(map[string]model.Coupon, len(coupons))}
	for _, c := range coupons {
		c.Code = utils.NormalizeCode(c.Code)
		if _, exists := r.coupons[c.Code]; !exists {
			r.order = append(r.order, c.Code)
		}
		r.coupons[c.Code] = c
	}
	return r
}

// NewRegistryFromConfig builds the auto-applied percentage coupon and the fixed-total coupon
func NewRegistryFromConfig(cfg config.CheckoutConfig) *Registry {
	return NewRegistry(
		model.Coupon{
			Code:        cfg.PercentCouponCode,
			Kind:        model.CouponKindPercentage,
			Description: fmt.Sprintf("%s%% off from %d items", cfg.PercentCouponPercent.String(), cfg.PercentCouponMinItems),
			Percent:     cfg.PercentCouponPercent,
			MinItems:    cfg.PercentCouponMinItems,
			AutoApply:   true,
		},
		model.Coupon{
			Code:        cfg.FixedTotalCouponCode,
			Kind:        model.CouponKindFixedTotal,
			Description: "order total fixed at " + cfg.FixedTotalCouponValue.StringFixed(2),
			FixedTotal:  cfg.FixedTotalCouponValue,
		},
	)
}

// Lookup is case-insensitive and ignores surrounding spaces
func (r *Registry) Lookup(code string) (model.Coupon, error) {
	c, ok := r.coupons[utils.NormalizeCode(code)]
	if !ok {
		return model.Coupon{}, model.ErrCouponNotFound
	}
	return c, nil
}

// AutoApplyCandidate returns the first coupon flagged for auto-apply
func (r *Registry) AutoApplyCandidate() (model.Coupon, bool) {
	for _, code := range r.order {
		if c := r.coupons[code]; c.AutoApply {
			return c, true
		}
	}
	return model.Coupon{}, false
}
