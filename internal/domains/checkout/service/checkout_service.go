package service

import (
	"context"
	"fmt"
	"time"

	cartModel "storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/checkout/model"
	"storefront-backend/internal/domains/checkout/repository"
	pricingModel "storefront-backend/internal/domains/pricing/model"
	pricingService "storefront-backend/internal/domains/pricing/service"
	promotionService "storefront-backend/internal/domains/promotion/service"
	shippingModel "storefront-backend/internal/domains/shipping/model"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

// CartStore is the part of the cart service the checkout reads
type CartStore interface {
	GetCart(ctx context.Context, sessionID string) (*cartModel.Cart, error)
}

// QuoteCalculator prices a cart
type QuoteCalculator interface {
	Calculate(in pricingService.Input) (pricingModel.Quote, error)
}

type CheckoutService struct {
	repo       repository.RepositoryInterface
	carts      CartStore
	coupons    promotionService.ServiceInterface
	calculator QuoteCalculator
	shipping   shippingModel.Policy
	now        func() time.Time
}

func NewCheckoutService(
	repo repository.RepositoryInterface,
	carts CartStore,
	coupons promotionService.ServiceInterface,
	calculator QuoteCalculator,
	shipping shippingModel.Policy,
) *CheckoutService {
	return &CheckoutService{
		repo:       repo,
		carts:      carts,
		coupons:    coupons,
		calculator: calculator,
		shipping:   shipping,
		now:        time.Now,
	}
}

// load
//
// Step 1: read (or start) the checkout session
// Step 2: read the cart
// Step 3: reconcile the coupon against the cart and persist any change
// Step 4: price cart + coupon + shipping selection
func (s *CheckoutService) load(ctx context.Context, sessionID string) (*model.Snapshot, promotionService.Decision, error) {
	var decision promotionService.Decision

	// Step 1
	session, found, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, decision, err
	}
	dirty := false
	if !found {
		session = model.NewSession(sessionID, s.now())
		dirty = true
	}

	// Step 2
	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, decision, fmt.Errorf("failed to load cart: %w", err)
	}

	// Step 3
	removed, err := s.repo.IsCouponRemoved(ctx, sessionID)
	if err != nil {
		return nil, decision, err
	}
	decision = s.coupons.Reconcile(session.CouponCode, cart.TotalItems(), removed || session.CouponAutoFired)
	if decision.Reason == promotionService.ReasonAutoApplied {
		session.CouponAutoFired = true
	}
	if decision.Changed {
		logger.Info("Coupon reconciled", map[string]interface{}{
			"session_id": sessionID,
			"from":       session.CouponCode,
			"to":         decision.Code,
			"reason":     decision.Reason,
		})
		session.CouponCode = decision.Code
		dirty = true
	}

	if dirty {
		if err := s.save(ctx, session); err != nil {
			return nil, decision, err
		}
	}

	// Step 4
	coupon, err := s.coupons.Resolve(session.CouponCode)
	if err != nil {
		return nil, decision, fmt.Errorf("failed to resolve coupon: %w", err)
	}

	quote, err := s.calculator.Calculate(pricingService.Input{
		Items:            cart.Items,
		Coupon:           coupon,
		SelectedShipping: session.ShippingOption,
		Currency:         cart.Currency(),
	})
	if err != nil {
		return nil, decision, fmt.Errorf("failed to calculate quote: %w", err)
	}

	return &model.Snapshot{
		Session: session,
		Cart:    cart,
		Coupon:  coupon,
		Quote:   quote,
	}, decision, nil
}

func (s *CheckoutService) save(ctx context.Context, session *model.Session) error {
	session.UpdatedAt = s.now()
	return s.repo.Save(ctx, session)
}

func (s *CheckoutService) view(snap *model.Snapshot, decision promotionService.Decision) *model.CheckoutView {
	totalItems := snap.Cart.TotalItems()

	options := shippingModel.Options()
	optionViews := make([]model.ShippingOptionView, 0, len(options))
	for _, opt := range options {
		optionViews = append(optionViews, model.ShippingOptionView{
			Option:     opt,
			Selectable: s.shipping.CanSelect(opt.ID, totalItems) == nil,
		})
	}

	view := &model.CheckoutView{
		Step:             snap.Session.Step,
		AttemptID:        snap.Session.AttemptID,
		Customer:         snap.Session.Customer,
		Cart:             cartModel.NewCartResponse(snap.Cart),
		ShippingOptions:  optionViews,
		Coupon:           snap.Coupon,
		Quote:            snap.Quote,
		DeliveryEstimate: snap.Session.DeliveryEstimate,
	}
	if decision.Changed {
		view.CouponNotice = decision.Reason
	}
	if snap.Session.DeliveryEstimate != nil {
		view.DeliveryLabel = snap.Session.DeliveryEstimate.Label()
	}
	return view
}

// mutate loads a snapshot, applies fn to the session and returns the fresh view
func (s *CheckoutService) mutate(ctx context.Context, sessionID string, fn func(snap *model.Snapshot) error) (*model.CheckoutView, error) {
	snap, _, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := fn(snap); err != nil {
		return nil, err
	}

	if err := s.save(ctx, snap.Session); err != nil {
		return nil, err
	}

	return s.GetCheckout(ctx, sessionID)
}

func (s *CheckoutService) GetCheckout(ctx context.Context, sessionID string) (*model.CheckoutView, error) {
	snap, decision, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(snap, decision), nil
}

func (s *CheckoutService) SubmitIdentification(ctx context.Context, sessionID string, req model.IdentificationRequest) (*model.CheckoutView, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.mutate(ctx, sessionID, func(snap *model.Snapshot) error {
		if snap.Cart.IsEmpty() {
			return model.ErrCartEmpty
		}

		customer := &snap.Session.Customer
		customer.Name = req.Name
		customer.Email = req.Email
		customer.Phone = utils.OnlyDigits(req.Phone)
		customer.CPF = utils.OnlyDigits(req.CPF)

		snap.Session.Step = model.StepIdentification.Next()
		return nil
	})
}

func (s *CheckoutService) SubmitShipping(ctx context.Context, sessionID string, req model.ShippingRequest) (*model.CheckoutView, error) {
	return s.mutate(ctx, sessionID, func(snap *model.Snapshot) error {
		if !snap.Session.Reached(model.StepShipping) {
			return model.ErrStepNotReached
		}
		if snap.Cart.IsEmpty() {
			return model.ErrCartEmpty
		}
		if err := req.Validate(); err != nil {
			return err
		}

		if req.ShippingOption != "" {
			if err := s.shipping.CanSelect(req.ShippingOption, snap.Cart.TotalItems()); err != nil {
				return err
			}
			snap.Session.ShippingOption = req.ShippingOption
		}

		estimate := shippingModel.EstimateDelivery(s.now())
		snap.Session.Customer.Address = req.ToAddress()
		snap.Session.DeliveryEstimate = &estimate
		snap.Session.Step = model.StepShipping.Next()
		return nil
	})
}

func (s *CheckoutService) GoBack(ctx context.Context, sessionID string) (*model.CheckoutView, error) {
	return s.mutate(ctx, sessionID, func(snap *model.Snapshot) error {
		snap.Session.Step = snap.Session.Step.Previous()
		return nil
	})
}

func (s *CheckoutService) ApplyCoupon(ctx context.Context, sessionID string, req model.ApplyCouponRequest) (*model.CheckoutView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.mutate(ctx, sessionID, func(snap *model.Snapshot) error {
		coupon, err := s.coupons.Apply(req.Code, snap.Cart.TotalItems())
		if err != nil {
			return err
		}

		snap.Session.CouponCode = coupon.Code
		logger.Info("Coupon applied", map[string]interface{}{
			"session_id": sessionID,
			"code":       coupon.Code,
		})
		return nil
	})
}

func (s *CheckoutService) RemoveCoupon(ctx context.Context, sessionID string) (*model.CheckoutView, error) {
	if err := s.repo.MarkCouponRemoved(ctx, sessionID); err != nil {
		return nil, err
	}

	return s.mutate(ctx, sessionID, func(snap *model.Snapshot) error {
		snap.Session.CouponCode = ""
		return nil
	})
}

func (s *CheckoutService) SelectShipping(ctx context.Context, sessionID string, req model.SelectShippingRequest) (*model.CheckoutView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.mutate(ctx, sessionID, func(snap *model.Snapshot) error {
		if err := s.shipping.CanSelect(req.Option, snap.Cart.TotalItems()); err != nil {
			return err
		}
		snap.Session.ShippingOption = req.Option
		return nil
	})
}

func (s *CheckoutService) PaymentSnapshot(ctx context.Context, sessionID string) (*model.Snapshot, error) {
	snap, _, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if snap.Session.Step != model.StepPayment {
		return nil, model.ErrStepNotReached
	}
	if snap.Cart.IsEmpty() {
		return nil, model.ErrCartEmpty
	}
	return snap, nil
}

func (s *CheckoutService) CurrentAttemptID(ctx context.Context, sessionID string) (string, error) {
	session, found, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if !found {
		return "", nil
	}
	return session.AttemptID, nil
}

func (s *CheckoutService) Reset(ctx context.Context, sessionID string) error {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return err
	}
	return s.repo.ClearCouponRemoved(ctx, sessionID)
}
