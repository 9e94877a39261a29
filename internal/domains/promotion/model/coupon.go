package model

import (
	"github.com/shopspring/decimal"
)

type CouponKind string

const (
	// CouponKindPercentage takes Percent off the subtotal once MinItems is reached
	CouponKindPercentage CouponKind = "percentage"
	// CouponKindFixedTotal forces the order total to FixedTotal (test purchases)
	CouponKindFixedTotal CouponKind = "fixed_total"
)

type Coupon struct {
	Code        string          `json:"code"`
	Kind        CouponKind      `json:"kind"`
	Description string          `json:"description,omitempty"`
	Percent     decimal.Decimal `json:"percent"`
	MinItems    int             `json:"min_items,omitempty"`
	FixedTotal  decimal.Decimal `json:"fixed_total"`
	AutoApply   bool            `json:"auto_apply"`
}

// IsEligible reports whether a cart with totalItems may carry the coupon
func (c Coupon) IsEligible(totalItems int) bool {
	switch c.Kind {
	case CouponKindPercentage:
		return totalItems >= c.MinItems
	case CouponKindFixedTotal:
		return totalItems > 0
	default:
		return false
	}
}

// Policy decides what happens to an applied coupon when the cart shrinks
type Policy string

const (
	// PolicyRevoke drops a coupon whose minimum is no longer met
	PolicyRevoke Policy = "revoke"
	// PolicySticky keeps a coupon once applied
	PolicySticky Policy = "sticky"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyRevoke, PolicySticky:
		return Policy(s), nil
	default:
		return "", ErrInvalidPolicy
	}
}
