package orders

import (
	"errors"
	"testing"
)

func TestStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusProcessing},
		{StatusConfirmed, StatusCancelled},
		{StatusConfirmed, StatusRefunded},
		{StatusProcessing, StatusShipped},
		{StatusProcessing, StatusCancelled},
		{StatusProcessing, StatusRefunded},
		{StatusShipped, StatusDelivered},
		{StatusShipped, StatusRefunded},
		{StatusDelivered, StatusRefunded},
	}
	for _, tr := range allowed {
		got, err := tr.from.Transition(tr.to)
		if err != nil {
			t.Errorf("%s -> %s: unexpected error %v", tr.from, tr.to, err)
		}
		if got != tr.to {
			t.Errorf("%s -> %s: got %s", tr.from, tr.to, got)
		}
	}

	denied := []struct{ from, to Status }{
		{StatusPending, StatusShipped},
		{StatusPending, StatusDelivered},
		{StatusPending, StatusRefunded},
		{StatusDelivered, StatusPending},
		{StatusCancelled, StatusConfirmed},
		{StatusRefunded, StatusPending},
		{StatusShipped, StatusProcessing},
	}
	for _, tr := range denied {
		_, err := tr.from.Transition(tr.to)
		var te *TransitionError
		if !errors.As(err, &te) {
			t.Errorf("%s -> %s: expected TransitionError, got %v", tr.from, tr.to, err)
			continue
		}
		if te.From != string(tr.from) || te.To != string(tr.to) {
			t.Errorf("error carries %s -> %s, want %s -> %s", te.From, te.To, tr.from, tr.to)
		}
	}
}

func TestPaymentStatusTransitions(t *testing.T) {
	if !PaymentPending.CanTransition(PaymentPaid) {
		t.Error("pending -> paid should be allowed")
	}
	if !PaymentPending.CanTransition(PaymentFailed) {
		t.Error("pending -> failed should be allowed")
	}
	if !PaymentFailed.CanTransition(PaymentPaid) {
		t.Error("failed -> paid should be allowed (retry)")
	}
	if !PaymentPaid.CanTransition(PaymentRefunded) {
		t.Error("paid -> refunded should be allowed")
	}
	if PaymentPaid.CanTransition(PaymentPending) {
		t.Error("paid -> pending must be rejected")
	}
	if PaymentRefunded.CanTransition(PaymentPaid) {
		t.Error("refunded -> paid must be rejected")
	}
}

func TestRefundable(t *testing.T) {
	for _, s := range []Status{StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered} {
		if !Refundable(s) {
			t.Errorf("%s should be refundable", s)
		}
	}
	for _, s := range []Status{StatusPending, StatusCancelled, StatusRefunded} {
		if Refundable(s) {
			t.Errorf("%s should not be refundable", s)
		}
	}
}

func TestActionTarget(t *testing.T) {
	cases := map[string]Status{
		"process": StatusProcessing,
		"ship":    StatusShipped,
		"deliver": StatusDelivered,
		"cancel":  StatusCancelled,
	}
	for action, want := range cases {
		if got := actionTarget(action); got != want {
			t.Errorf("actionTarget(%q) = %s, want %s", action, got, want)
		}
	}
}
