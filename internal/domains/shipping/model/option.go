package model

import (
	"github.com/shopspring/decimal"
)

type OptionID string

const (
	OptionPriority OptionID = "priority"
	OptionStandard OptionID = "standard"
	OptionFree     OptionID = "free"
)

// DefaultOption is selected for a fresh checkout
const DefaultOption = OptionStandard

// Option is a shipping method with a fixed price
type Option struct {
	ID             OptionID        `json:"id"`
	Label          string          `json:"label"`
	DeliveryWindow string          `json:"delivery_window"`
	Price          decimal.Decimal `json:"price"`
}

var options = []Option{
	{
		ID:             OptionPriority,
		Label:          "Entrega expressa",
		DeliveryWindow: "2 a 4 dias úteis",
		Price:          decimal.RequireFromString("24.90"),
	},
	{
		ID:             OptionStandard,
		Label:          "Entrega padrão",
		DeliveryWindow: "6 a 9 dias úteis",
		Price:          decimal.RequireFromString("14.90"),
	},
	{
		ID:             OptionFree,
		Label:          "Frete grátis",
		DeliveryWindow: "9 a 12 dias úteis",
		Price:          decimal.Zero,
	},
}

// Options returns the catalogue in display order
func Options() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

func LookupOption(id OptionID) (Option, error) {
	for _, o := range options {
		if o.ID == id {
			return o, nil
		}
	}
	return Option{}, ErrUnknownOption
}
