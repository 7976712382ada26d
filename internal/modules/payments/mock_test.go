package payments

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestMockCreateIntentSucceeds(t *testing.T) {
	m := NewMockProvider([]byte("whsec"))

	in, err := m.CreatePaymentIntent(context.Background(), CreateIntentParams{
		AmountCents: 11880,
		Currency:    "USD",
		Metadata:    map[string]string{"order_id": "ord-1"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if in.Status != IntentSucceeded {
		t.Errorf("status = %s, want %s", in.Status, IntentSucceeded)
	}
	if !strings.HasPrefix(in.ID, "pi_mock_") {
		t.Errorf("intent id %q", in.ID)
	}
	if in.ClientSecret == "" {
		t.Error("client secret empty")
	}
	if in.OrderID != "ord-1" {
		t.Errorf("order id = %q", in.OrderID)
	}

	got, err := m.GetPaymentIntent(context.Background(), in.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != in.ID || got.AmountCents != 11880 {
		t.Errorf("get returned %+v", got)
	}
}

func TestMockDeclinesAmountsEndingIn99(t *testing.T) {
	m := NewMockProvider([]byte("whsec"))

	in, err := m.CreatePaymentIntent(context.Background(), CreateIntentParams{AmountCents: 4299, Currency: "USD"})
	if err != nil {
		t.Fatal(err)
	}
	if in.Status == IntentSucceeded {
		t.Error("amount ending in 99 should not succeed")
	}
}

func TestMockRejectsNonPositiveAmount(t *testing.T) {
	m := NewMockProvider([]byte("whsec"))
	if _, err := m.CreatePaymentIntent(context.Background(), CreateIntentParams{AmountCents: 0}); err == nil {
		t.Error("expected error for zero amount")
	}
}

func TestMockRefundRequiresSucceededIntent(t *testing.T) {
	m := NewMockProvider([]byte("whsec"))

	declined, _ := m.CreatePaymentIntent(context.Background(), CreateIntentParams{AmountCents: 199, Currency: "USD"})
	if _, err := m.CreateRefund(context.Background(), RefundParams{IntentID: declined.ID}); err == nil {
		t.Error("refund of a declined intent should fail")
	}

	ok, _ := m.CreatePaymentIntent(context.Background(), CreateIntentParams{AmountCents: 5000, Currency: "USD"})
	r, err := m.CreateRefund(context.Background(), RefundParams{IntentID: ok.ID, AmountCents: 5000})
	if err != nil {
		t.Fatal(err)
	}
	if r.Status != StatusSucceeded {
		t.Errorf("refund status = %s", r.Status)
	}
}

func TestMockWebhookSignatureRoundTrip(t *testing.T) {
	m := NewMockProvider([]byte("whsec"))

	body := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"payment_intent_id":"pi_mock_x","amount_cents":5000,"currency":"USD","order_id":"ord-1"}}`)
	h := http.Header{}
	h.Set("X-Mock-Signature", m.SignPayload(time.Now().Unix(), body))

	ev, err := m.VerifyAndParseWebhook(h, body)
	if err != nil {
		t.Fatal(err)
	}
	if ev.EventID != "evt_1" || ev.Type != EventPaymentSucceeded {
		t.Errorf("event = %+v", ev)
	}
	if ev.IntentID != "pi_mock_x" || ev.AmountCents != 5000 || ev.OrderID != "ord-1" {
		t.Errorf("event fields = %+v", ev)
	}
}

func TestMockWebhookRejectsBadSignature(t *testing.T) {
	m := NewMockProvider([]byte("whsec"))
	other := NewMockProvider([]byte("other-secret"))

	body := []byte(`{"id":"evt_2","type":"payment_intent.succeeded"}`)

	h := http.Header{}
	h.Set("X-Mock-Signature", other.SignPayload(time.Now().Unix(), body))
	if _, err := m.VerifyAndParseWebhook(h, body); err == nil {
		t.Error("signature from another secret must be rejected")
	}

	h.Set("X-Mock-Signature", "t=abc,v1=zz")
	if _, err := m.VerifyAndParseWebhook(h, body); err == nil {
		t.Error("malformed header must be rejected")
	}

	h.Del("X-Mock-Signature")
	if _, err := m.VerifyAndParseWebhook(h, body); err == nil {
		t.Error("missing header must be rejected")
	}
}

func TestMockWebhookRejectsStaleTimestamp(t *testing.T) {
	m := NewMockProvider([]byte("whsec"))

	body := []byte(`{"id":"evt_3","type":"payment_intent.succeeded"}`)
	stale := time.Now().Add(-10 * time.Minute).Unix()

	h := http.Header{}
	h.Set("X-Mock-Signature", m.SignPayload(stale, body))
	if _, err := m.VerifyAndParseWebhook(h, body); err == nil {
		t.Error("timestamp outside tolerance must be rejected")
	}
}
