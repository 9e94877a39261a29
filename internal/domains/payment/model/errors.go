package model

import (
	"errors"
	"fmt"
)

var (
	ErrPixDataMissing     = errors.New("gateway response has no pix data")
	ErrCardRejected       = errors.New("card payment rejected")
	ErrSaleNotFound       = errors.New("sale not found")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrPaymentConfirming  = errors.New("a payment of this session is being confirmed")
)

// RejectionError carries the gateway message shown to the shopper
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCardRejected.Error(), e.Message)
}

func (e *RejectionError) Unwrap() error {
	return ErrCardRejected
}
