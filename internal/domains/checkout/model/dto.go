package model

import (
	"regexp"
	"strings"

	addressModel "storefront-backend/internal/domains/address/model"
	cartModel "storefront-backend/internal/domains/cart/model"
	pricingModel "storefront-backend/internal/domains/pricing/model"
	promotionModel "storefront-backend/internal/domains/promotion/model"
	shippingModel "storefront-backend/internal/domains/shipping/model"
	"storefront-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// =====================================================
// IDENTIFICATION STEP
// =====================================================
type IdentificationRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	CPF   string `json:"cpf"`
}

// Normalize collapses whitespace in the name and trims the other fields
func (req IdentificationRequest) Normalize() IdentificationRequest {
	req.Name = strings.Join(strings.Fields(req.Name), " ")
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.CPF = strings.TrimSpace(req.CPF)
	return req
}

// Validate checks the normalized values
func (req IdentificationRequest) Validate() error {
	req = req.Normalize()
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required.Error("informe o nome completo"), fullNameRule),
		validation.Field(&req.Email,
			validation.Required.Error("informe o e-mail"),
			validation.Match(emailPattern).Error("e-mail inválido"),
		),
		validation.Field(&req.Phone, validation.Required.Error("informe o telefone"), phoneRule),
		validation.Field(&req.CPF, validation.Required.Error("informe o CPF"), CPFRule),
	)
}

var fullNameRule = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s != "" && len(strings.Fields(s)) < 2 {
		return validation.NewError("validation_full_name", "informe nome e sobrenome")
	}
	return nil
})

var phoneRule = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s != "" && len(utils.OnlyDigits(s)) < 10 {
		return validation.NewError("validation_phone", "telefone deve ter DDD e ao menos 10 dígitos")
	}
	return nil
})

// =====================================================
// SHIPPING STEP
// =====================================================
type ShippingRequest struct {
	PostalCode     string                 `json:"postal_code"`
	Street         string                 `json:"street"`
	Number         string                 `json:"number"`
	Complement     string                 `json:"complement"`
	Neighborhood   string                 `json:"neighborhood"`
	City           string                 `json:"city"`
	State          string                 `json:"state"`
	ShippingOption shippingModel.OptionID `json:"shipping_option,omitempty"`
}

func (req ShippingRequest) Validate() error {
	// blank-only values count as missing
	req.PostalCode = strings.TrimSpace(req.PostalCode)
	req.Street = strings.TrimSpace(req.Street)
	req.Number = strings.TrimSpace(req.Number)
	req.Neighborhood = strings.TrimSpace(req.Neighborhood)
	req.City = strings.TrimSpace(req.City)
	req.State = strings.TrimSpace(req.State)

	return validation.ValidateStruct(&req,
		validation.Field(&req.PostalCode, validation.Required.Error("informe o CEP"), postalCodeRule),
		validation.Field(&req.Street, validation.Required.Error("informe a rua")),
		validation.Field(&req.Number, validation.Required.Error("informe o número")),
		validation.Field(&req.Neighborhood, validation.Required.Error("informe o bairro")),
		validation.Field(&req.City, validation.Required.Error("informe a cidade")),
		validation.Field(&req.State, validation.Required.Error("informe o estado")),
	)
}

var postalCodeRule = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	digits := utils.OnlyDigits(s)
	if s != "" && (len(digits) != 8 || is.Digit.Validate(digits) != nil) {
		return validation.NewError("validation_postal_code", "CEP deve ter 8 dígitos")
	}
	return nil
})

func (req ShippingRequest) ToAddress() addressModel.Address {
	return addressModel.Address{
		PostalCode:   utils.OnlyDigits(req.PostalCode),
		Street:       strings.TrimSpace(req.Street),
		Number:       strings.TrimSpace(req.Number),
		Complement:   strings.TrimSpace(req.Complement),
		Neighborhood: strings.TrimSpace(req.Neighborhood),
		City:         strings.TrimSpace(req.City),
		State:        strings.ToUpper(strings.TrimSpace(req.State)),
	}
}

// =====================================================
// COUPON / SHIPPING OPTION
// =====================================================
type ApplyCouponRequest struct {
	Code string `json:"code"`
}

func (req ApplyCouponRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Code, validation.Required.Error("informe o cupom"), validation.Length(1, 64)),
	)
}

type SelectShippingRequest struct {
	Option shippingModel.OptionID `json:"option"`
}

func (req SelectShippingRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Option, validation.Required, validation.In(
			shippingModel.OptionPriority,
			shippingModel.OptionStandard,
			shippingModel.OptionFree,
		)),
	)
}

// =====================================================
// CHECKOUT VIEW
// =====================================================

// ShippingOptionView marks which options the current cart may pick
type ShippingOptionView struct {
	shippingModel.Option
	Selectable bool `json:"selectable"`
}

type CheckoutView struct {
	Step             Step                            `json:"step"`
	AttemptID        string                          `json:"attempt_id"`
	Customer         CustomerData                    `json:"customer"`
	Cart             *cartModel.CartResponse         `json:"cart"`
	ShippingOptions  []ShippingOptionView            `json:"shipping_options"`
	Coupon           *promotionModel.Coupon          `json:"coupon,omitempty"`
	CouponNotice     string                          `json:"coupon_notice,omitempty"`
	Quote            pricingModel.Quote              `json:"quote"`
	DeliveryEstimate *shippingModel.DeliveryEstimate `json:"delivery_estimate,omitempty"`
	DeliveryLabel    string                          `json:"delivery_label,omitempty"`
}
