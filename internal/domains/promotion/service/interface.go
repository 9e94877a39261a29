package service

import "storefront-backend/internal/domains/promotion/model"

type ServiceInterface interface {
	// Apply validates code against the cart size. Applying replaces any prior coupon.
	Apply(code string, totalItems int) (model.Coupon, error)

	// Resolve returns the coupon for an applied code, nil for ""
	Resolve(code string) (*model.Coupon, error)

	// Reconcile re-evaluates the applied code after the cart changed:
	// auto-apply (unless suppressed), revocation (per policy) and removal of unknown codes
	Reconcile(appliedCode string, totalItems int, autoApplySuppressed bool) Decision

	Policy() model.Policy
}
