package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// =====================================================
// ADMIN LIST REQUEST
// =====================================================
type ListOrdersRequest struct {
	From          string `form:"from"` // YYYY-MM-DD, inclusive
	To            string `form:"to"`   // YYYY-MM-DD, inclusive
	PaymentMethod string `form:"payment_method"`
	CouponCode    string `form:"coupon_code"`
	Search        string `form:"search"`
	Page          int    `form:"page"`
	Limit         int    `form:"limit"`
}

func (req ListOrdersRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.From, validation.Date(dateLayout)),
		validation.Field(&req.To, validation.Date(dateLayout)),
		validation.Field(&req.PaymentMethod, validation.In("pix", "credit_card")),
		validation.Field(&req.CouponCode, is.Alphanumeric),
		validation.Field(&req.Page, validation.Min(0)),
		validation.Field(&req.Limit, validation.Min(0), validation.Max(100)),
	)
}

// Filter resolves defaults: last 30 days, page 1, 20 per page
func (req ListOrdersRequest) Filter(now time.Time) (OrderFilter, error) {
	f := OrderFilter{
		PaymentMethod: req.PaymentMethod,
		CouponCode:    req.CouponCode,
		Search:        req.Search,
		Page:          req.Page,
		Limit:         req.Limit,
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	f.From = today.AddDate(0, 0, -29)
	f.To = today.AddDate(0, 0, 1)

	if req.From != "" {
		from, err := time.Parse(dateLayout, req.From)
		if err != nil {
			return OrderFilter{}, ErrInvalidReportingRange
		}
		f.From = from
	}
	if req.To != "" {
		to, err := time.Parse(dateLayout, req.To)
		if err != nil {
			return OrderFilter{}, ErrInvalidReportingRange
		}
		f.To = to.AddDate(0, 0, 1)
	}
	if !f.To.After(f.From) {
		return OrderFilter{}, ErrInvalidReportingRange
	}
	return f, nil
}

// OrderFilter is a resolved query: From inclusive, To exclusive
type OrderFilter struct {
	From          time.Time
	To            time.Time
	PaymentMethod string
	CouponCode    string
	Search        string
	Page          int
	Limit         int
}

func (f OrderFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// =====================================================
// ADMIN RESPONSES
// =====================================================

type OrderListItem struct {
	OrderID        string          `json:"order_id"`
	CustomerName   string          `json:"customer_name"`
	CustomerEmail  string          `json:"customer_email"`
	City           string          `json:"city"`
	State          string          `json:"state"`
	ItemCount      int             `json:"item_count"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Discount       decimal.Decimal `json:"discount"`
	ShippingCost   decimal.Decimal `json:"shipping_cost"`
	Total          decimal.Decimal `json:"total"`
	CouponCode     string          `json:"coupon_code,omitempty"`
	ShippingOption string          `json:"shipping_option"`
	PaymentMethod  string          `json:"payment_method"`
	PaymentStatus  string          `json:"payment_status"`
	CreatedAt      time.Time       `json:"created_at"`
}

type MethodBreakdown struct {
	PaymentMethod string          `json:"payment_method"`
	Orders        int             `json:"orders"`
	Revenue       decimal.Decimal `json:"revenue"`
}

type DailyRevenue struct {
	Date    string          `json:"date"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// SalesSummary feeds the dashboard cards and chart
type SalesSummary struct {
	From          time.Time         `json:"from"`
	To            time.Time         `json:"to"`
	Orders        int               `json:"orders"`
	ItemsSold     int               `json:"items_sold"`
	Revenue       decimal.Decimal   `json:"revenue"`
	Discounts     decimal.Decimal   `json:"discounts"`
	AverageTicket decimal.Decimal   `json:"average_ticket"`
	CouponOrders  int               `json:"coupon_orders"`
	ByMethod      []MethodBreakdown `json:"by_method"`
	Daily         []DailyRevenue    `json:"daily"`
}

// ComputeAverage fills AverageTicket from Revenue and Orders
func (s *SalesSummary) ComputeAverage() {
	if s.Orders == 0 {
		s.AverageTicket = decimal.Zero
		return
	}
	s.AverageTicket = s.Revenue.Div(decimal.NewFromInt(int64(s.Orders))).Round(2)
}
