package model

import "errors"

var (
	ErrInvalidPostalCode  = errors.New("postal code must have 8 digits")
	ErrPostalCodeNotFound = errors.New("postal code not found")
	ErrLookupUnavailable  = errors.New("postal code lookup unavailable")
)
