package payments

import (
	"errors"
	"testing"
	"time"

	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/orders"
)

func TestVerifyIntentForOrder(t *testing.T) {
	ord := orders.Order{
		ID:            "ord_1",
		TotalCents:    11880,
		Currency:      "USD",
		Status:        orders.StatusPending,
		PaymentStatus: orders.PaymentPending,
	}

	cases := []struct {
		name   string
		intent Intent
		wantOK bool
	}{
		{"succeeded exact match", Intent{Status: IntentSucceeded, AmountCents: 11880, Currency: "USD", OrderID: "ord_1"}, true},
		{"lowercase gateway currency", Intent{Status: IntentSucceeded, AmountCents: 11880, Currency: "usd", OrderID: "ord_1"}, true},
		{"no order metadata", Intent{Status: IntentSucceeded, AmountCents: 11880, Currency: "USD"}, true},
		{"requires payment method", Intent{Status: "requires_payment_method", AmountCents: 11880, Currency: "USD", OrderID: "ord_1"}, false},
		{"still processing", Intent{Status: "processing", AmountCents: 11880, Currency: "USD", OrderID: "ord_1"}, false},
		{"underpaid", Intent{Status: IntentSucceeded, AmountCents: 1, Currency: "USD", OrderID: "ord_1"}, false},
		{"overpaid", Intent{Status: IntentSucceeded, AmountCents: 20000, Currency: "USD", OrderID: "ord_1"}, false},
		{"wrong currency", Intent{Status: IntentSucceeded, AmountCents: 11880, Currency: "EUR", OrderID: "ord_1"}, false},
		{"another order's intent", Intent{Status: IntentSucceeded, AmountCents: 11880, Currency: "USD", OrderID: "ord_2"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := verifyIntentForOrder(tc.intent, ord)
			if tc.wantOK {
				if err != nil {
					t.Fatalf("verifyIntentForOrder: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrPaymentNotCompleted) {
				t.Fatalf("expected ErrPaymentNotCompleted, got %v", err)
			}
		})
	}
}

func TestPaidUpdatesPendingOrder(t *testing.T) {
	now := time.Now()
	ord := orders.Order{ID: "ord_1", Status: orders.StatusPending, PaymentStatus: orders.PaymentPending}

	upd, err := paidUpdates(ord, "card", "pi_1", now)
	if err != nil {
		t.Fatalf("paidUpdates: %v", err)
	}
	if upd["payment_status"] != orders.PaymentPaid {
		t.Errorf("payment_status = %v", upd["payment_status"])
	}
	if upd["status"] != orders.StatusConfirmed {
		t.Errorf("status = %v", upd["status"])
	}
	if upd["payment_intent_id"] != "pi_1" {
		t.Errorf("payment_intent_id = %v", upd["payment_intent_id"])
	}
	if upd["paid_at"] != now {
		t.Errorf("paid_at = %v", upd["paid_at"])
	}
}

// A second confirmation finds the order already paid; the flip is refused so
// the caller's early-return keeps the endpoint a no-op success.
func TestPaidUpdatesAlreadyPaid(t *testing.T) {
	ord := orders.Order{ID: "ord_1", Status: orders.StatusConfirmed, PaymentStatus: orders.PaymentPaid}

	_, err := paidUpdates(ord, "card", "pi_1", time.Now())
	var te *orders.TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
}

func TestPaidUpdatesRetryAfterFailedPayment(t *testing.T) {
	ord := orders.Order{ID: "ord_1", Status: orders.StatusPending, PaymentStatus: orders.PaymentFailed}

	upd, err := paidUpdates(ord, "card", "pi_2", time.Now())
	if err != nil {
		t.Fatalf("paidUpdates: %v", err)
	}
	if upd["payment_status"] != orders.PaymentPaid {
		t.Errorf("payment_status = %v", upd["payment_status"])
	}
}

func TestRefundRowStatus(t *testing.T) {
	cases := []struct {
		name           string
		perr           error
		providerStatus string
		want           string
	}{
		{"provider error", errors.New("boom"), "", StatusFailed},
		{"explicit failure", nil, StatusFailed, StatusFailed},
		{"settled", nil, StatusSucceeded, StatusSucceeded},
		{"in flight", nil, "pending", StatusInitiated},
		{"unknown status", nil, "requires_action", StatusInitiated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := refundRowStatus(tc.perr, tc.providerStatus); got != tc.want {
				t.Errorf("refundRowStatus(%v, %q) = %q, want %q", tc.perr, tc.providerStatus, got, tc.want)
			}
		})
	}
}
