package service

import (
	"storefront-backend/internal/domains/promotion/model"
)

// Reasons reported by Reconcile
const (
	ReasonUnchanged   = ""
	ReasonAutoApplied = "auto_applied"
	ReasonRevoked     = "revoked"
	ReasonUnknownCode = "unknown_code"
)

// Decision is the outcome of Reconcile
type Decision struct {
	Code    string
	Changed bool
	Reason  string
}

type CouponService struct {
	registry *Registry
	policy   model.Policy
}

func NewCouponService(registry *Registry, policy model.Policy) *CouponService {
	return &CouponService{
		registry: registry,
		policy:   policy,
	}
}

func (s *CouponService) Policy() model.Policy {
	return s.policy
}

func (s *CouponService) Apply(code string, totalItems int) (model.Coupon, error) {
	coupon, err := s.registry.Lookup(code)
	if err != nil {
		return model.Coupon{}, err
	}

	if !coupon.IsEligible(totalItems) {
		return model.Coupon{}, model.ErrCouponNotEligible
	}

	return coupon, nil
}

func (s *CouponService) Resolve(code string) (*model.Coupon, error) {
	if code == "" {
		return nil, nil
	}

	coupon, err := s.registry.Lookup(code)
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// Reconcile
//
// Step 1: an applied code that no longer exists is dropped
// Step 2: under PolicyRevoke an ineligible coupon is dropped
// Step 3: with nothing applied and auto-apply not suppressed, the
// auto-apply coupon is applied once the cart reaches its minimum
//
// Callers suppress auto-apply after a manual removal and after it fired
// once in the session, so it is a one-shot.
func (s *CouponService) Reconcile(appliedCode string, totalItems int, autoApplySuppressed bool) Decision {
	if appliedCode != "" {
		coupon, err := s.registry.Lookup(appliedCode)
		if err != nil {
			return Decision{Code: "", Changed: true, Reason: ReasonUnknownCode}
		}

		if s.policy == model.PolicyRevoke && !coupon.IsEligible(totalItems) {
			return s.autoApply(Decision{Code: "", Changed: true, Reason: ReasonRevoked}, totalItems, autoApplySuppressed)
		}

		return Decision{Code: coupon.Code}
	}

	return s.autoApply(Decision{}, totalItems, autoApplySuppressed)
}

func (s *CouponService) autoApply(current Decision, totalItems int, suppressed bool) Decision {
	if suppressed {
		return current
	}

	candidate, ok := s.registry.AutoApplyCandidate()
	if !ok || !candidate.IsEligible(totalItems) {
		return current
	}

	return Decision{Code: candidate.Code, Changed: true, Reason: ReasonAutoApplied}
}
