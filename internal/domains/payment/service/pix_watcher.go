package service

import (
	"context"
	"errors"
	"sync"
	"time"

	orderModel "storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/payment/model"
	"storefront-backend/pkg/logger"
)

// StatusChecker is the status half of the gateway
type StatusChecker interface {
	CheckPaymentStatus(ctx context.Context, saleID string) (*model.StatusResponse, error)
}

// PaidFunc turns a confirmed sale into an order and returns the order id.
// It is retried until it succeeds or reports ErrStaleAttempt.
type PaidFunc func(ctx context.Context) (string, error)

type WatcherConfig struct {
	SaleID    string
	SessionID string
	Interval  time.Duration
	ExpiresAt time.Time

	// Confirmed starts the watcher past the gateway: only the order is pending
	Confirmed bool
}

// Watcher polls one sale until it is paid, expires or is cancelled.
// Once the gateway confirms the sale the watcher stays in confirming until
// the order is stored; cancel and expiry no longer apply from there.
type Watcher struct {
	cfg     WatcherConfig
	checker StatusChecker
	onPaid  PaidFunc

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	// serializes onPaid calls
	settling sync.Mutex

	mu            sync.Mutex
	state         model.WatchState
	gatewayStatus string
	orderID       string
	lastErr       string
	checkedAt     *time.Time
	attempts      int
}

func newWatcher(parent context.Context, cfg WatcherConfig, checker StatusChecker, onPaid PaidFunc) *Watcher {
	ctx, cancel := context.WithCancel(parent)
	state := model.WatchAwaitingPayment
	if cfg.Confirmed {
		state = model.WatchConfirming
	}
	return &Watcher{
		cfg:     cfg,
		checker: checker,
		onPaid:  onPaid,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
		state:   state,
	}
}

func (w *Watcher) SaleID() string    { return w.cfg.SaleID }
func (w *Watcher) SessionID() string { return w.cfg.SessionID }

// Done is closed when polling has stopped
func (w *Watcher) Done() <-chan struct{} { return w.done }

func (w *Watcher) Status() model.WatchStatus {
	w.mu.Lock()
	defer w.mu.Unlock()

	return model.WatchStatus{
		SaleID:        w.cfg.SaleID,
		State:         w.state,
		GatewayStatus: w.gatewayStatus,
		OrderID:       w.orderID,
		ExpiresAt:     w.cfg.ExpiresAt,
		CheckedAt:     w.checkedAt,
		LastError:     w.lastErr,
	}
}

// Check runs one status query now, sharing the path of the periodic poll.
// A confirming watcher retries the order instead.
func (w *Watcher) Check(ctx context.Context) model.WatchStatus {
	w.observe(ctx)
	return w.Status()
}

// Cancel stops polling a sale still awaiting payment.
// It reports false when the sale is already paid or being confirmed.
func (w *Watcher) Cancel() bool {
	if !w.transition(model.WatchCancelled) {
		return false
	}
	w.cancel()
	return true
}

func (w *Watcher) run() {
	defer close(w.done)
	defer w.cancel()

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	expiry := time.NewTimer(time.Until(w.cfg.ExpiresAt))
	defer expiry.Stop()

	for {
		select {
		case <-w.ctx.Done():
			w.transition(model.WatchCancelled)
			return

		case <-ticker.C:
			if w.observe(w.ctx) {
				return
			}

		case <-expiry.C:
			// one last look before giving up
			if w.observe(w.ctx) {
				return
			}
			if w.transition(model.WatchExpired) {
				logger.Info("PIX payment expired", map[string]interface{}{
					"sale_id":    w.cfg.SaleID,
					"session_id": w.cfg.SessionID,
				})
				return
			}
			// confirming: keep retrying the order on each tick
		}
	}
}

// observe queries the gateway once and reports whether the watcher is terminal
func (w *Watcher) observe(ctx context.Context) bool {
	switch w.currentState() {
	case model.WatchConfirming:
		return w.settle(ctx)
	case model.WatchAwaitingPayment:
	default:
		return true
	}

	status, err := w.checker.CheckPaymentStatus(ctx, w.cfg.SaleID)
	now := time.Now()

	w.mu.Lock()
	w.checkedAt = &now
	if err != nil {
		w.lastErr = err.Error()
		w.mu.Unlock()
		if ctx.Err() == nil {
			logger.Warn("PIX status check failed", map[string]interface{}{
				"sale_id": w.cfg.SaleID,
				"error":   err.Error(),
			})
		}
		return false
	}
	w.gatewayStatus = status.Status
	w.lastErr = ""
	if status.IsPaid() && w.state != model.WatchPaid {
		// a cancel racing with confirmation loses: the money has moved
		w.state = model.WatchConfirming
	}
	w.mu.Unlock()

	if !status.IsPaid() {
		return false
	}
	return w.settle(ctx)
}

// settle stores the order for a confirmed sale. It reports true once the
// outcome is final: the order exists or the checkout attempt was abandoned.
func (w *Watcher) settle(ctx context.Context) bool {
	w.settling.Lock()
	defer w.settling.Unlock()

	if w.currentState() != model.WatchConfirming {
		return true
	}

	orderID, err := w.onPaid(context.WithoutCancel(ctx))

	w.mu.Lock()
	defer w.mu.Unlock()
	w.attempts++

	switch {
	case err == nil:
		w.state = model.WatchPaid
		w.orderID = orderID
		w.lastErr = ""
		logger.Info("Payment confirmed", map[string]interface{}{
			"sale_id":  w.cfg.SaleID,
			"order_id": orderID,
			"attempts": w.attempts,
		})
		return true

	case errors.Is(err, orderModel.ErrStaleAttempt):
		w.state = model.WatchPaid
		w.lastErr = err.Error()
		logger.ErrorWithFields("Paid sale belongs to an abandoned checkout", err, map[string]interface{}{
			"sale_id":    w.cfg.SaleID,
			"session_id": w.cfg.SessionID,
		})
		return true

	default:
		w.lastErr = err.Error()
		logger.ErrorWithFields("Failed to store order for paid sale, will retry", err, map[string]interface{}{
			"sale_id":    w.cfg.SaleID,
			"session_id": w.cfg.SessionID,
			"attempts":   w.attempts,
		})
		return false
	}
}

func (w *Watcher) currentState() model.WatchState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// transition moves an awaiting watcher into a terminal state
func (w *Watcher) transition(to model.WatchState) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != model.WatchAwaitingPayment {
		return false
	}
	w.state = to
	return true
}

// =====================================================
// REGISTRY
// =====================================================

// Registry owns every running watcher. Watchers derive from the registry
// context so Shutdown stops them all.
type Registry struct {
	ctx       context.Context
	cancel    context.CancelFunc
	retention time.Duration

	mu       sync.Mutex
	watchers map[string]*Watcher
	wg       sync.WaitGroup
}

func NewRegistry(ctx context.Context, retention time.Duration) *Registry {
	ctx, cancel := context.WithCancel(ctx)
	return &Registry{
		ctx:       ctx,
		cancel:    cancel,
		retention: retention,
		watchers:  make(map[string]*Watcher),
	}
}

// Watch starts polling saleID. Terminal watchers stay readable for the
// retention period, then are dropped.
func (r *Registry) Watch(cfg WatcherConfig, checker StatusChecker, onPaid PaidFunc) *Watcher {
	w := newWatcher(r.ctx, cfg, checker, onPaid)

	r.mu.Lock()
	if old, ok := r.watchers[cfg.SaleID]; ok {
		old.Cancel()
	}
	r.watchers[cfg.SaleID] = w
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		w.run()
		time.AfterFunc(r.retention, func() { r.remove(w) })
	}()

	return w
}

func (r *Registry) Get(saleID string) (*Watcher, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.watchers[saleID]
	return w, ok
}

// CancelSession cancels every awaiting watcher of a session, used before a new payment is submitted
func (r *Registry) CancelSession(sessionID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, w := range r.watchers {
		if w.SessionID() == sessionID && w.Cancel() {
			n++
		}
	}
	return n
}

// Confirming returns a watcher of the session whose sale is paid but has no order yet
func (r *Registry) Confirming(sessionID string) (*Watcher, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, w := range r.watchers {
		if w.SessionID() == sessionID && w.currentState() == model.WatchConfirming {
			return w, true
		}
	}
	return nil, false
}

// Active counts watchers still polling
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, w := range r.watchers {
		if !w.currentState().IsTerminal() {
			n++
		}
	}
	return n
}

// Shutdown cancels all watchers and waits for them to stop
func (r *Registry) Shutdown() {
	r.cancel()
	r.wg.Wait()
}

func (r *Registry) remove(w *Watcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.watchers[w.SaleID()]; ok && current == w {
		delete(r.watchers, w.SaleID())
	}
}
