package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultCurrency = "BRL"

type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currency_code"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CartItem is one variant line. VariantID is the line identity.
type CartItem struct {
	ProductID       string           `json:"product_id"`
	ProductTitle    string           `json:"product_title"`
	ProductImages   []string         `json:"product_images,omitempty"`
	VariantID       string           `json:"variant_id"`
	VariantTitle    string           `json:"variant_title,omitempty"`
	SelectedOptions []SelectedOption `json:"selected_options,omitempty"`
	UnitPrice       Money            `json:"unit_price"`
	Quantity        int              `json:"quantity"`
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Amount.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the session-scoped shopping cart
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Add merges into an existing line with the same variant, otherwise appends
func (c *Cart) Add(item CartItem) {
	for i := range c.Items {
		if c.Items[i].VariantID == item.VariantID {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// UpdateQuantity sets the quantity of a line; quantity <= 0 removes it
func (c *Cart) UpdateQuantity(variantID string, quantity int) error {
	idx := c.indexOf(variantID)
	if idx < 0 {
		return ErrCartItemNotFound
	}

	if quantity <= 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		return nil
	}

	c.Items[idx].Quantity = quantity
	return nil
}

// Remove deletes a line; absent variants are ignored
func (c *Cart) Remove(variantID string) {
	if idx := c.indexOf(variantID); idx >= 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	}
}

func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalItems is the sum of quantities
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price × quantity
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Currency of the first line, BRL for an empty cart
func (c *Cart) Currency() string {
	if len(c.Items) > 0 && c.Items[0].UnitPrice.CurrencyCode != "" {
		return c.Items[0].UnitPrice.CurrencyCode
	}
	return DefaultCurrency
}

func (c *Cart) indexOf(variantID string) int {
	for i := range c.Items {
		if c.Items[i].VariantID == variantID {
			return i
		}
	}
	return -1
}
