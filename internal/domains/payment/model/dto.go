package model

import (
	"strconv"
	"strings"
	"time"

	checkoutModel "storefront-backend/internal/domains/checkout/model"
	"storefront-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// =====================================================
// SUBMIT PAYMENT REQUEST
// =====================================================
type PaymentRequest struct {
	Method Method    `json:"method"`
	Card   *CardData `json:"card,omitempty"`
}

type CardData struct {
	Number       string `json:"number"`
	HolderName   string `json:"holder_name"`
	Expiry       string `json:"expiry"` // MM/YY
	CVV          string `json:"cvv"`
	HolderCPF    string `json:"holder_cpf"`
	Installments int    `json:"installments"`
}

func (req PaymentRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Method, validation.Required, validation.In(MethodPix, MethodCreditCard)),
		validation.Field(&req.Card,
			validation.When(req.Method == MethodCreditCard, validation.Required.Error("informe os dados do cartão")),
		),
	)
}

func (c CardData) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Number, validation.Required, validation.By(cardNumberRule)),
		validation.Field(&c.HolderName, validation.Required, validation.Length(2, 100)),
		validation.Field(&c.Expiry, validation.Required, validation.By(expiryRule)),
		validation.Field(&c.CVV, validation.Required, validation.By(cvvRule)),
		validation.Field(&c.HolderCPF, validation.Required, checkoutModel.CPFRule),
		validation.Field(&c.Installments, validation.Min(0), validation.Max(MaxInstallments)),
	)
}

func cardNumberRule(value interface{}) error {
	s, _ := value.(string)
	n := len(utils.OnlyDigits(s))
	if s != "" && (n < 13 || n > 19) {
		return validation.NewError("validation_card_number", "número do cartão inválido")
	}
	return nil
}

func cvvRule(value interface{}) error {
	s, _ := value.(string)
	n := len(utils.OnlyDigits(s))
	if s != "" && (n < 3 || n > 4 || n != len(s)) {
		return validation.NewError("validation_cvv", "CVV inválido")
	}
	return nil
}

func expiryRule(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, _, ok := parseExpiry(s); !ok {
		return validation.NewError("validation_expiry", "validade deve estar no formato MM/AA")
	}
	return nil
}

// parseExpiry accepts MM/YY and MM/YYYY
func parseExpiry(s string) (month, year int, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return 0, 0, false
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	year, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	switch len(parts[1]) {
	case 2:
		year += 2000
	case 4:
	default:
		return 0, 0, false
	}
	return month, year, true
}

// ToGateway normalizes card fields for the proxy
func (c CardData) ToGateway() *GatewayCard {
	month, year, _ := parseExpiry(c.Expiry)
	installments := c.Installments
	if installments < DefaultInstallments {
		installments = DefaultInstallments
	}
	return &GatewayCard{
		Number:       utils.OnlyDigits(c.Number),
		HolderName:   strings.ToUpper(strings.TrimSpace(c.HolderName)),
		ExpMonth:     month,
		ExpYear:      year,
		CVV:          c.CVV,
		HolderCPF:    utils.OnlyDigits(c.HolderCPF),
		Installments: installments,
	}
}

// =====================================================
// RESULTS
// =====================================================

type PixView struct {
	SaleID       string    `json:"sale_id"`
	QRCodeBase64 string    `json:"qr_code_base64"`
	CopyPaste    string    `json:"copy_paste"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// SubmitResult is returned by POST /checkout/payment
type SubmitResult struct {
	Method  Method     `json:"method"`
	State   WatchState `json:"state"`
	Pix     *PixView   `json:"pix,omitempty"`
	SaleID  string     `json:"sale_id,omitempty"`
	OrderID string     `json:"order_id,omitempty"`
}

// WatchStatus is the observable state of a PIX watcher
type WatchStatus struct {
	SaleID        string     `json:"sale_id"`
	State         WatchState `json:"state"`
	GatewayStatus string     `json:"gateway_status,omitempty"`
	OrderID       string     `json:"order_id,omitempty"`
	ExpiresAt     time.Time  `json:"expires_at"`
	CheckedAt     *time.Time `json:"checked_at,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
}
