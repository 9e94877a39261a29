package model

import "time"

const (
	DeliveryMinDays = 9
	DeliveryMaxDays = 12
)

// DeliveryEstimate is a calendar-day window shown after postal-code lookup
type DeliveryEstimate struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// EstimateDelivery returns today+9 .. today+12, truncated to the date in now's location
func EstimateDelivery(now time.Time) DeliveryEstimate {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return DeliveryEstimate{
		From: today.AddDate(0, 0, DeliveryMinDays),
		To:   today.AddDate(0, 0, DeliveryMaxDays),
	}
}

// Label renders the window as "dd/mm a dd/mm"
func (e DeliveryEstimate) Label() string {
	return e.From.Format("02/01") + " a " + e.To.Format("02/01")
}
