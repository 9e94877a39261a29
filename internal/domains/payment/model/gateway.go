package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// =====================================================
// GATEWAY PROXY WIRE TYPES
// =====================================================

// GatewayItem prices are in centavos
type GatewayItem struct {
	ExternalRef string `json:"externalRef"`
	Title       string `json:"title"`
	UnitPrice   int64  `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	Tangible    bool   `json:"tangible"`
}

type GatewayCustomer struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Document string `json:"document"`
}

type GatewayShipping struct {
	Fee          int64  `json:"fee"`
	PostalCode   string `json:"zipCode"`
	Street       string `json:"street"`
	Number       string `json:"streetNumber"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

type GatewayCard struct {
	Number       string `json:"number"`
	HolderName   string `json:"holderName"`
	ExpMonth     int    `json:"expirationMonth"`
	ExpYear      int    `json:"expirationYear"`
	CVV          string `json:"cvv"`
	HolderCPF    string `json:"holderDocument"`
	Installments int    `json:"installments"`
}

// GatewayRequest is the body of POST /create-payment
type GatewayRequest struct {
	Amount        int64           `json:"amount"`
	PaymentMethod Method          `json:"paymentMethod"`
	Reference     string          `json:"reference"`
	Items         []GatewayItem   `json:"items"`
	Customer      GatewayCustomer `json:"customer"`
	Shipping      GatewayShipping `json:"shipping"`
	Card          *GatewayCard    `json:"cardData,omitempty"`
}

type PixData struct {
	QRCodeBase64 string `json:"qrCodeBase64"`
	CopyPaste    string `json:"copyPaste"`
	ID           string `json:"id"`
}

type GatewayResponseData struct {
	ID          string   `json:"id,omitempty"`
	Status      string   `json:"status,omitempty"`
	PaymentData *PixData `json:"paymentData,omitempty"`
}

// GatewayResponse is the create-payment result. Rejections come back as
// success=false, status="failed" or a populated error.
type GatewayResponse struct {
	Success bool                 `json:"success"`
	Status  string               `json:"status,omitempty"`
	Message string               `json:"message,omitempty"`
	Error   FlexibleString       `json:"error,omitempty"`
	Data    *GatewayResponseData `json:"data,omitempty"`
}

// Rejected reports a card refusal and the message to show
func (r *GatewayResponse) Rejected() (bool, string) {
	status := strings.ToLower(r.Status)
	if status == "" && r.Data != nil {
		status = strings.ToLower(r.Data.Status)
	}

	if r.Success && status != CardStatusFailed && r.Error == "" {
		return false, ""
	}

	switch {
	case r.Error != "":
		return true, string(r.Error)
	case r.Message != "":
		return true, r.Message
	default:
		return true, "Pagamento recusado pela operadora"
	}
}

// PixData returns nil when the response carries no usable PIX payload
func (r *GatewayResponse) PixData() *PixData {
	if r.Data == nil || r.Data.PaymentData == nil {
		return nil
	}
	pix := r.Data.PaymentData
	if pix.CopyPaste == "" && pix.QRCodeBase64 == "" {
		return nil
	}
	if pix.ID == "" {
		pix.ID = r.Data.ID
	}
	if pix.ID == "" {
		return nil
	}
	return pix
}

// StatusResponse is the body of GET /check-payment-status
type StatusResponse struct {
	Status string `json:"status"`
}

func (s StatusResponse) IsPaid() bool {
	_, ok := paidStatuses[strings.ToLower(strings.TrimSpace(s.Status))]
	return ok
}

// FlexibleString accepts a JSON string, an object with a message, or any other value
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte("false")) {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleString(s)
		return nil
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.Message != "" {
		*f = FlexibleString(obj.Message)
		return nil
	}

	*f = FlexibleString(data)
	return nil
}
