package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// AddItemRequest is the body of POST /cart/items
type AddItemRequest struct {
	ProductID       string           `json:"product_id"`
	ProductTitle    string           `json:"product_title"`
	ProductImages   []string         `json:"product_images"`
	VariantID       string           `json:"variant_id"`
	VariantTitle    string           `json:"variant_title"`
	SelectedOptions []SelectedOption `json:"selected_options"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	CurrencyCode    string           `json:"currency_code"`
	Quantity        int              `json:"quantity"`
}

func (r AddItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required),
		validation.Field(&r.ProductTitle, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.VariantID, validation.Required),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1), validation.Max(99)),
		validation.Field(&r.UnitPrice, validation.By(positiveDecimal)),
		validation.Field(&r.CurrencyCode, validation.In("", "BRL")),
	)
}

// ToItem builds the cart line
func (r AddItemRequest) ToItem() CartItem {
	currency := r.CurrencyCode
	if currency == "" {
		currency = DefaultCurrency
	}
	return CartItem{
		ProductID:       r.ProductID,
		ProductTitle:    r.ProductTitle,
		ProductImages:   r.ProductImages,
		VariantID:       r.VariantID,
		VariantTitle:    r.VariantTitle,
		SelectedOptions: r.SelectedOptions,
		UnitPrice:       Money{Amount: r.UnitPrice, CurrencyCode: currency},
		Quantity:        r.Quantity,
	}
}

// UpdateQuantityRequest is the body of PUT /cart/items/:variant_id.
// Zero or negative quantities remove the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (r UpdateQuantityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Quantity, validation.Max(99)),
	)
}

// CartResponse is the read model returned by every cart endpoint
type CartResponse struct {
	Items      []CartItem      `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Currency   string          `json:"currency"`
}

func NewCartResponse(c *Cart) *CartResponse {
	items := c.Items
	if items == nil {
		items = []CartItem{}
	}
	return &CartResponse{
		Items:      items,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
		Currency:   c.Currency(),
	}
}

// CheckoutURLResponse carries the hosted checkout link (fallback path)
type CheckoutURLResponse struct {
	CheckoutURL string `json:"checkout_url"`
}

func positiveDecimal(value interface{}) error {
	d, _ := value.(decimal.Decimal)
	if !d.IsPositive() {
		return validation.NewError("validation_positive", "must be greater than zero")
	}
	return nil
}
