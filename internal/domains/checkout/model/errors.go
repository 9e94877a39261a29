package model

import "errors"

var (
	ErrStepNotReached = errors.New("checkout step not reached yet")
	ErrCartEmpty      = errors.New("cart is empty")
)
