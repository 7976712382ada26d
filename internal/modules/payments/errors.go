package payments

import "errors"

var (
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrAmountMismatch      = errors.New("amount does not match order total")
	ErrPaymentNotCompleted = errors.New("payment not completed")
	ErrGateway             = errors.New("payment gateway error")
	ErrNoSucceededPayment  = errors.New("no succeeded payment found")
	ErrNotRefundable       = errors.New("order not refundable")
)
