package service

import (
	"context"

	"storefront-backend/internal/domains/checkout/model"
)

type ServiceInterface interface {
	// GetCheckout reconciles the coupon against the current cart and returns
	// step, customer data, shipping options and quote
	GetCheckout(ctx context.Context, sessionID string) (*model.CheckoutView, error)

	SubmitIdentification(ctx context.Context, sessionID string, req model.IdentificationRequest) (*model.CheckoutView, error)
	SubmitShipping(ctx context.Context, sessionID string, req model.ShippingRequest) (*model.CheckoutView, error)

	// GoBack moves one step back, keeping the data already entered
	GoBack(ctx context.Context, sessionID string) (*model.CheckoutView, error)

	ApplyCoupon(ctx context.Context, sessionID string, req model.ApplyCouponRequest) (*model.CheckoutView, error)
	RemoveCoupon(ctx context.Context, sessionID string) (*model.CheckoutView, error)
	SelectShipping(ctx context.Context, sessionID string, req model.SelectShippingRequest) (*model.CheckoutView, error)

	// PaymentSnapshot returns the snapshot to charge, the session must be at the payment step
	PaymentSnapshot(ctx context.Context, sessionID string) (*model.Snapshot, error)

	// CurrentAttemptID is empty when no checkout is in progress
	CurrentAttemptID(ctx context.Context, sessionID string) (string, error)

	// Reset ends the checkout after an order was finalized
	Reset(ctx context.Context, sessionID string) error
}
