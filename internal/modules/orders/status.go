package orders

import "fmt"

// Status is the fulfillment lifecycle. The common path is
// pending -> confirmed -> processing -> shipped -> delivered; cancelled and
// refunded are terminal exits from earlier states.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

// PaymentStatus is independent of the fulfillment lifecycle; it becomes paid
// only after the gateway reports a successful charge and the workflow has
// written that confirmation back.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type TransitionError struct {
	From, To string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s", e.From, e.To)
}

var statusTransitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusCancelled, StatusRefunded},
	StatusProcessing: {StatusShipped, StatusCancelled, StatusRefunded},
	StatusShipped:    {StatusDelivered, StatusRefunded},
	StatusDelivered:  {StatusRefunded},
	StatusCancelled:  {},
	StatusRefunded:   {},
}

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:  {PaymentPaid, PaymentFailed},
	PaymentPaid:     {PaymentRefunded},
	PaymentFailed:   {PaymentPaid},
	PaymentRefunded: {},
}

// CanTransition reports whether the fulfillment status may move from -> to.
func (s Status) CanTransition(to Status) bool {
	for _, next := range statusTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates the move and returns a typed error on an illegal one.
func (s Status) Transition(to Status) (Status, error) {
	if !s.CanTransition(to) {
		return s, &TransitionError{From: string(s), To: string(to)}
	}
	return to, nil
}

func (p PaymentStatus) CanTransition(to PaymentStatus) bool {
	for _, next := range paymentTransitions[p] {
		if next == to {
			return true
		}
	}
	return false
}

func (p PaymentStatus) Transition(to PaymentStatus) (PaymentStatus, error) {
	if !p.CanTransition(to) {
		return p, &TransitionError{From: string(p), To: string(to)}
	}
	return to, nil
}

// Refundable reports whether the fulfillment status permits refunds. Paid
// orders can be refunded regardless of the shipping step they reached.
func Refundable(s Status) bool {
	switch s {
	case StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered:
		return true
	default:
		return false
	}
}
