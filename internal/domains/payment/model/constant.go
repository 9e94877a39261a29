package model

type Method string

const (
	MethodPix        Method = "pix"
	MethodCreditCard Method = "credit_card"
)

// WatchState is the PIX confirmation state of one sale
type WatchState string

const (
	WatchAwaitingPayment WatchState = "awaiting_payment"
	WatchConfirming      WatchState = "confirming" // paid at the gateway, order not stored yet
	WatchPaid            WatchState = "paid"
	WatchExpired         WatchState = "expired"
	WatchCancelled       WatchState = "cancelled"
)

func (s WatchState) IsTerminal() bool {
	return s != WatchAwaitingPayment && s != WatchConfirming
}

// Gateway status values that confirm a PIX sale, compared case-insensitively
var paidStatuses = map[string]struct{}{
	"paid":      {},
	"approved":  {},
	"completed": {},
}

const (
	CardStatusFailed    = "failed"
	MaxInstallments     = 12
	DefaultInstallments = 1
)
