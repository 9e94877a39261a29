package main

import (
	"github.com/hibiken/asynq"

	orderJob "storefront-backend/internal/domains/order/job"
	"storefront-backend/internal/shared"
	"storefront-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	mirrorOrder      *orderJob.MirrorOrderHandler
	trackCheckout    *orderJob.TrackCheckoutHandler
	dailySalesReport *orderJob.DailySalesReportHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	var summarizer orderJob.SalesSummarizer
	if c.OrderRepo != nil {
		summarizer = c.OrderRepo
	}

	return &HandlerRegistry{
		mirrorOrder:      orderJob.NewMirrorOrderHandler(c.Commerce),
		trackCheckout:    orderJob.NewTrackCheckoutHandler(),
		dailySalesReport: orderJob.NewDailySalesReportHandler(summarizer),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Order
	mux.HandleFunc(shared.TypeMirrorOrder, h.mirrorOrder.ProcessTask)

	// Analytics
	mux.HandleFunc(shared.TypeTrackCheckout, h.trackCheckout.ProcessTask)
	mux.HandleFunc(shared.TypeDailySalesReport, h.dailySalesReport.ProcessTask)
}
