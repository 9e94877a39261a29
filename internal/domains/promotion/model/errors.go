package model

import "errors"

var (
	ErrCouponNotFound    = errors.New("coupon not found")
	ErrCouponNotEligible = errors.New("cart does not meet coupon requirements")
	ErrInvalidPolicy     = errors.New("invalid coupon policy")
)

type ErrorCode string

const (
	ErrCodeCouponNotFound    ErrorCode = "COUPON_NOT_FOUND"
	ErrCodeCouponNotEligible ErrorCode = "COUPON_NOT_ELIGIBLE"
)
