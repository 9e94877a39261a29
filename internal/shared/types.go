package shared

// Task types
const (
	TypeMirrorOrder      = "order:mirror"
	TypeTrackCheckout    = "analytics:track_checkout"
	TypeDailySalesReport = "analytics:daily_sales_report"
)

// Queues
const (
	QueueOrder     = "order"
	QueueAnalytics = "analytics"
)
