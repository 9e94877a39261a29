package commerce

import "github.com/shopspring/decimal"

type MoneyV2 struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ProductOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type Variant struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	AvailableForSale bool             `json:"availableForSale"`
	Price            MoneyV2          `json:"price"`
	SelectedOptions  []SelectedOption `json:"selectedOptions"`
}

type Product struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Handle     string          `json:"handle"`
	Tags       []string        `json:"tags"`
	PriceRange PriceRange      `json:"priceRange"`
	Images     []Image         `json:"images"`
	Options    []ProductOption `json:"options"`
	Variants   []Variant       `json:"variants"`
}

type PriceRange struct {
	MinVariantPrice MoneyV2 `json:"minVariantPrice"`
	MaxVariantPrice MoneyV2 `json:"maxVariantPrice"`
}

type ProductPage struct {
	Products    []Product `json:"products"`
	HasNextPage bool      `json:"has_next_page"`
	EndCursor   string    `json:"end_cursor,omitempty"`
}

type ProductQuery struct {
	Search string
	First  int
	After  string
}

// CartLineInput is one line of the hosted-checkout cart mutation
type CartLineInput struct {
	MerchandiseID string `json:"merchandiseId"`
	Quantity      int    `json:"quantity"`
}

type HostedCart struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkoutUrl"`
}

// ========================================
// Order mirroring proxy
// ========================================

type MirrorLineItem struct {
	VariantID string          `json:"variantId"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type MirrorCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	CPF   string `json:"cpf"`
}

type MirrorAddress struct {
	PostalCode   string `json:"zip"`
	Street       string `json:"address1"`
	Number       string `json:"number"`
	Complement   string `json:"address2,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"province"`
	Country      string `json:"country"`
}

// MirrorOrderRequest is the createOrder payload of the order-mirroring proxy
type MirrorOrderRequest struct {
	OrderID       string           `json:"orderId"`
	Items         []MirrorLineItem `json:"items"`
	Customer      MirrorCustomer   `json:"customer"`
	Shipping      MirrorAddress    `json:"shipping"`
	PaymentMethod string           `json:"paymentMethod"`
	Discount      decimal.Decimal  `json:"discount"`
	ShippingCost  decimal.Decimal  `json:"shippingCost"`
	Total         decimal.Decimal  `json:"total"`
}

type MirrorOrderResponse struct {
	Success      bool   `json:"success"`
	DraftOrderID string `json:"draftOrderId,omitempty"`
	Error        string `json:"error,omitempty"`
}
