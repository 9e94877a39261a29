package model

import (
	"strings"
	"time"

	checkoutModel "storefront-backend/internal/domains/checkout/model"
	shippingModel "storefront-backend/internal/domains/shipping/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const OrderIDPrefix = "PED-"

// NewOrderID returns "PED-" followed by 8 upper-case hex characters
func NewOrderID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return OrderIDPrefix + strings.ToUpper(id[:8])
}

type OrderItem struct {
	ProductID    string          `json:"product_id"`
	VariantID    string          `json:"variant_id"`
	Title        string          `json:"title"`
	VariantTitle string          `json:"variant_title,omitempty"`
	Image        string          `json:"image,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// PaymentInfo describes how the order was paid
type PaymentInfo struct {
	Method       string `json:"method"`
	SaleID       string `json:"sale_id,omitempty"`
	Status       string `json:"status"`
	Installments int    `json:"installments,omitempty"`
}

// OrderRecord is written once at finalization. The shopper reads it once on
// the confirmation page; the admin dashboard reads the persisted copy.
type OrderRecord struct {
	OrderID   string `json:"order_id"`
	SessionID string `json:"-"`
	AttemptID string `json:"-"`

	Customer checkoutModel.CustomerData `json:"customer"`
	Items    []OrderItem                `json:"items"`

	Subtotal       decimal.Decimal        `json:"subtotal"`
	Discount       decimal.Decimal        `json:"discount"`
	ShippingCost   decimal.Decimal        `json:"shipping_cost"`
	Total          decimal.Decimal        `json:"total"`
	Currency       string                 `json:"currency"`
	CouponCode     string                 `json:"coupon_code,omitempty"`
	ShippingOption shippingModel.OptionID `json:"shipping_option"`

	DeliveryEstimate *shippingModel.DeliveryEstimate `json:"delivery_estimate,omitempty"`
	Payment          PaymentInfo                     `json:"payment"`
	CreatedAt        time.Time                       `json:"created_at"`
}

func (o *OrderRecord) TotalItems() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// FinalizeInput is what a confirmed payment hands to the order service
type FinalizeInput struct {
	SessionID string
	Snapshot  *checkoutModel.Snapshot
	Payment   PaymentInfo
}

// NewOrderRecord freezes the charged snapshot into an order
func NewOrderRecord(in FinalizeInput, now time.Time) *OrderRecord {
	snap := in.Snapshot

	items := make([]OrderItem, 0, len(snap.Cart.Items))
	for _, it := range snap.Cart.Items {
		image := ""
		if len(it.ProductImages) > 0 {
			image = it.ProductImages[0]
		}
		items = append(items, OrderItem{
			ProductID:    it.ProductID,
			VariantID:    it.VariantID,
			Title:        it.ProductTitle,
			VariantTitle: it.VariantTitle,
			Image:        image,
			UnitPrice:    it.UnitPrice.Amount,
			Quantity:     it.Quantity,
		})
	}

	return &OrderRecord{
		OrderID:          NewOrderID(),
		SessionID:        in.SessionID,
		AttemptID:        snap.Session.AttemptID,
		Customer:         snap.Session.Customer,
		Items:            items,
		Subtotal:         snap.Quote.Subtotal,
		Discount:         snap.Quote.Discount,
		ShippingCost:     snap.Quote.ShippingCost,
		Total:            snap.Quote.Total,
		Currency:         snap.Quote.Currency,
		CouponCode:       snap.Quote.CouponCode,
		ShippingOption:   snap.Quote.EffectiveShipping,
		DeliveryEstimate: snap.Session.DeliveryEstimate,
		Payment:          in.Payment,
		CreatedAt:        now,
	}
}
