package model

import "errors"

var (
	ErrUnknownOption           = errors.New("unknown shipping option")
	ErrFreeShippingNotEligible = errors.New("free shipping requires more items in the cart")
)
