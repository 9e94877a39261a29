package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MirrorOrderPayload carries the order to the mirroring worker
type MirrorOrderPayload struct {
	Order OrderRecord `json:"order"`
}

type TrackCheckoutPayload struct {
	OrderID       string          `json:"order_id"`
	SessionID     string          `json:"session_id"`
	Total         decimal.Decimal `json:"total"`
	Discount      decimal.Decimal `json:"discount"`
	ItemCount     int             `json:"item_count"`
	PaymentMethod string          `json:"payment_method"`
	CouponCode    string          `json:"coupon_code,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// DailySalesReportPayload defaults to the previous UTC day when Date is zero
type DailySalesReportPayload struct {
	Date time.Time `json:"date,omitempty"`
}
