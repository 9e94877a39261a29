package model

import (
	"time"

	addressModel "storefront-backend/internal/domains/address/model"
	shippingModel "storefront-backend/internal/domains/shipping/model"

	"github.com/google/uuid"
)

type Step string

const (
	StepIdentification Step = "identification"
	StepShipping       Step = "shipping"
	StepPayment        Step = "payment"
)

var stepOrder = []Step{StepIdentification, StepShipping, StepPayment}

func (s Step) index() int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return 0
}

// Next returns the following step, the last step returns itself
func (s Step) Next() Step {
	i := s.index()
	if i+1 < len(stepOrder) {
		return stepOrder[i+1]
	}
	return s
}

// Previous returns the step before, the first step returns itself
func (s Step) Previous() Step {
	i := s.index()
	if i > 0 {
		return stepOrder[i-1]
	}
	return s
}

type CustomerData struct {
	Name    string               `json:"name"`
	Email   string               `json:"email"`
	Phone   string               `json:"phone"`
	CPF     string               `json:"cpf"`
	Address addressModel.Address `json:"address"`
}

// Session is the checkout progress of one shopper. AttemptID changes every
// time a new checkout starts so late payment results can be told apart.
type Session struct {
	SessionID        string                          `json:"session_id"`
	AttemptID        string                          `json:"attempt_id"`
	Step             Step                            `json:"step"`
	Customer         CustomerData                    `json:"customer"`
	ShippingOption   shippingModel.OptionID          `json:"shipping_option"`
	CouponCode       string                          `json:"coupon_code,omitempty"`
	CouponAutoFired  bool                            `json:"coupon_auto_fired,omitempty"`
	DeliveryEstimate *shippingModel.DeliveryEstimate `json:"delivery_estimate,omitempty"`
	CreatedAt        time.Time                       `json:"created_at"`
	UpdatedAt        time.Time                       `json:"updated_at"`
}

func NewSession(sessionID string, now time.Time) *Session {
	return &Session{
		SessionID:      sessionID,
		AttemptID:      uuid.NewString(),
		Step:           StepIdentification,
		ShippingOption: shippingModel.DefaultOption,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Reached reports whether the shopper may act on step
func (s *Session) Reached(step Step) bool {
	return s.Step.index() >= step.index()
}
