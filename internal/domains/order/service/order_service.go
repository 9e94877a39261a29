package service

import (
	"context"
	"fmt"
	"time"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/order/repository"
	"storefront-backend/internal/infrastructure/queue"
	"storefront-backend/internal/shared"
	"storefront-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

// CheckoutSession is the checkout state the order service consults and resets
type CheckoutSession interface {
	CurrentAttemptID(ctx context.Context, sessionID string) (string, error)
	Reset(ctx context.Context, sessionID string) error
}

type CartClearer interface {
	ClearCart(ctx context.Context, sessionID string) error
}

type OrderService struct {
	snapshots repository.SnapshotRepositoryInterface
	orders    repository.OrderRepositoryInterface // nil when Postgres is not configured
	checkout  CheckoutSession
	carts     CartClearer
	enqueuer  queue.Enqueuer
	now       func() time.Time
}

func NewOrderService(
	snapshots repository.SnapshotRepositoryInterface,
	orders repository.OrderRepositoryInterface,
	checkout CheckoutSession,
	carts CartClearer,
	enqueuer queue.Enqueuer,
) *OrderService {
	return &OrderService{
		snapshots: snapshots,
		orders:    orders,
		checkout:  checkout,
		carts:     carts,
		enqueuer:  enqueuer,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Finalize
//
// Step 1: discard results of an abandoned checkout attempt
// Step 2: build the order record and store the read-once snapshot
// Step 3: persist for the dashboard (logged on failure)
// Step 4: enqueue mirroring and tracking (logged on failure)
// Step 5: clear the cart and end the checkout
func (s *OrderService) Finalize(ctx context.Context, in model.FinalizeInput) (*model.OrderRecord, error) {
	if in.Snapshot == nil || in.Snapshot.Session == nil || in.Snapshot.Cart == nil {
		return nil, fmt.Errorf("finalize: incomplete checkout snapshot")
	}

	// Step 1
	current, err := s.checkout.CurrentAttemptID(ctx, in.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkout attempt: %w", err)
	}
	if current != in.Snapshot.Session.AttemptID {
		logger.Warn("Discarding payment result of abandoned checkout", map[string]interface{}{
			"session_id": in.SessionID,
			"attempt_id": in.Snapshot.Session.AttemptID,
			"current":    current,
			"sale_id":    in.Payment.SaleID,
		})
		return nil, model.ErrStaleAttempt
	}

	// Step 2
	record := model.NewOrderRecord(in, s.now())
	if err := s.snapshots.Save(ctx, record); err != nil {
		return nil, err
	}

	// Step 3
	if s.orders != nil {
		if err := s.orders.Create(ctx, record); err != nil {
			logger.ErrorWithFields("Failed to persist order", err, map[string]interface{}{
				"order_id": record.OrderID,
			})
		}
	}

	// Step 4
	s.enqueue(ctx, shared.TypeMirrorOrder, shared.QueueOrder, model.MirrorOrderPayload{Order: *record}, record.OrderID, 5)
	s.enqueue(ctx, shared.TypeTrackCheckout, shared.QueueAnalytics, model.TrackCheckoutPayload{
		OrderID:       record.OrderID,
		SessionID:     record.SessionID,
		Total:         record.Total,
		Discount:      record.Discount,
		ItemCount:     record.TotalItems(),
		PaymentMethod: record.Payment.Method,
		CouponCode:    record.CouponCode,
		CreatedAt:     record.CreatedAt,
	}, record.OrderID, 3)

	// Step 5
	if err := s.carts.ClearCart(ctx, in.SessionID); err != nil {
		logger.ErrorWithFields("Failed to clear cart after order", err, map[string]interface{}{
			"order_id": record.OrderID,
		})
	}
	if err := s.checkout.Reset(ctx, in.SessionID); err != nil {
		logger.ErrorWithFields("Failed to reset checkout after order", err, map[string]interface{}{
			"order_id": record.OrderID,
		})
	}

	logger.Info("Order finalized", map[string]interface{}{
		"order_id":       record.OrderID,
		"session_id":     in.SessionID,
		"total":          record.Total.String(),
		"payment_method": record.Payment.Method,
	})
	return record, nil
}

func (s *OrderService) enqueue(ctx context.Context, taskType, queueName string, payload interface{}, orderID string, maxRetry int) {
	if s.enqueuer == nil {
		return
	}

	task, err := queue.NewTask(taskType, payload)
	if err == nil {
		_, err = s.enqueuer.EnqueueContext(ctx, task,
			asynq.Queue(queueName),
			asynq.MaxRetry(maxRetry),
			asynq.TaskID(taskType+":"+orderID),
		)
	}
	if err != nil {
		logger.ErrorWithFields("Failed to enqueue task", err, map[string]interface{}{
			"task_type": taskType,
			"order_id":  orderID,
		})
	}
}

func (s *OrderService) GetConfirmation(ctx context.Context, sessionID string) (*model.OrderRecord, error) {
	record, found, err := s.snapshots.Take(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, model.ErrOrderNotFound
	}
	return record, nil
}

// =====================================================
// ADMIN
// =====================================================

func (s *OrderService) filter(req model.ListOrdersRequest) (model.OrderFilter, error) {
	if s.orders == nil {
		return model.OrderFilter{}, model.ErrReportingUnavailable
	}
	if err := req.Validate(); err != nil {
		return model.OrderFilter{}, err
	}
	return req.Filter(s.now())
}

func (s *OrderService) ListOrders(ctx context.Context, req model.ListOrdersRequest) ([]model.OrderListItem, int, error) {
	filter, err := s.filter(req)
	if err != nil {
		return nil, 0, err
	}
	return s.orders.List(ctx, filter)
}

func (s *OrderService) GetSummary(ctx context.Context, req model.ListOrdersRequest) (*model.SalesSummary, error) {
	filter, err := s.filter(req)
	if err != nil {
		return nil, err
	}
	return s.orders.Summary(ctx, filter)
}

// ExportOrders writes every order matching req (ignoring paging) to an xlsx workbook
func (s *OrderService) ExportOrders(ctx context.Context, req model.ListOrdersRequest) ([]byte, error) {
	filter, err := s.filter(req)
	if err != nil {
		return nil, err
	}

	var all []model.OrderListItem
	filter.Limit = 100
	for filter.Page = 1; ; filter.Page++ {
		page, total, err := s.orders.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) == 0 || len(all) >= total {
			break
		}
	}

	summary, err := s.orders.Summary(ctx, filter)
	if err != nil {
		return nil, err
	}

	return BuildOrdersWorkbook(all, summary)
}
