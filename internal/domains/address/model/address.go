package model

import (
	shippingModel "storefront-backend/internal/domains/shipping/model"
)

// Address is a Brazilian shipping address. PostalCode holds the 8 CEP digits.
type Address struct {
	PostalCode   string `json:"postal_code"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// LookupResult back-fills the shipping form
type LookupResult struct {
	Address          Address                        `json:"address"`
	DeliveryEstimate shippingModel.DeliveryEstimate `json:"delivery_estimate"`
	DeliveryLabel    string                         `json:"delivery_label"`
}

// DeliveryLocation is shown in the storefront header after a lookup
type DeliveryLocation struct {
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	State      string `json:"state"`
}
