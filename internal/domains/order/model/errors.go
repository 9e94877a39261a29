package model

import "errors"

// =====================================================
// ERROR DEFINITIONS
// =====================================================
var (
	ErrStaleAttempt          = errors.New("payment belongs to an abandoned checkout attempt")
	ErrOrderNotFound         = errors.New("order not found")
	ErrReportingUnavailable  = errors.New("order reporting store is not configured")
	ErrInvalidReportingRange = errors.New("invalid date range")
)

const (
	ErrCodeOrderNotFound          = "ORDER_NOT_FOUND"
	ErrCodeReportingUnavailable   = "REPORTING_UNAVAILABLE"
	ErrCodeInvalidReportingFilter = "INVALID_FILTER"
)
