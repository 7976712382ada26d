package payments

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const mockSignatureHeader = "X-Mock-Signature"

// MockProvider is an in-memory gateway for local dev and tests. Intents
// whose amount ends in 99 cents decline; everything else succeeds as soon as
// it is created. Webhooks are signed with HMAC-SHA256 over "<ts>.<body>"
// and carried as "t=<ts>,v1=<hex>".
type MockProvider struct {
	secret []byte

	mu      sync.Mutex
	intents map[string]Intent
	refunds map[string]RefundResult
}

func NewMockProvider(secret []byte) *MockProvider {
	return &MockProvider{
		secret:  secret,
		intents: make(map[string]Intent),
		refunds: make(map[string]RefundResult),
	}
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) CreatePaymentIntent(_ context.Context, p CreateIntentParams) (Intent, error) {
	if p.AmountCents <= 0 {
		return Intent{}, errors.New("mock: amount must be positive")
	}

	id := "pi_mock_" + randomHex(12)
	status := IntentSucceeded
	if p.AmountCents%100 == 99 {
		status = "requires_payment_method"
	}

	in := Intent{
		ID:           id,
		ClientSecret: id + "_secret_" + randomHex(8),
		Status:       status,
		AmountCents:  p.AmountCents,
		Currency:     p.Currency,
		OrderID:      p.Metadata["order_id"],
	}

	m.mu.Lock()
	m.intents[id] = in
	m.mu.Unlock()
	return in, nil
}

func (m *MockProvider) GetPaymentIntent(_ context.Context, id string) (Intent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	in, ok := m.intents[id]
	if !ok {
		return Intent{}, fmt.Errorf("mock: no such payment intent %q", id)
	}
	return in, nil
}

func (m *MockProvider) CreateRefund(_ context.Context, p RefundParams) (RefundResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	in, ok := m.intents[p.IntentID]
	if !ok {
		return RefundResult{}, fmt.Errorf("mock: no such payment intent %q", p.IntentID)
	}
	if in.Status != IntentSucceeded {
		return RefundResult{}, errors.New("mock: intent not succeeded")
	}

	r := RefundResult{ID: "re_mock_" + randomHex(12), Status: StatusSucceeded}
	m.refunds[r.ID] = r
	return r, nil
}

type mockEventPayload struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		PaymentIntentID string `json:"payment_intent_id"`
		RefundID        string `json:"refund_id"`
		AmountCents     int64  `json:"amount_cents"`
		Currency        string `json:"currency"`
		OrderID         string `json:"order_id"`
	} `json:"data"`
}

func (m *MockProvider) VerifyAndParseWebhook(header http.Header, body []byte) (WebhookEvent, error) {
	ts, sig, err := parseSignatureHeader(header.Get(mockSignatureHeader))
	if err != nil {
		return WebhookEvent{}, err
	}
	if !hmac.Equal([]byte(computeMockSignature(m.secret, ts, body)), []byte(sig)) {
		return WebhookEvent{}, errors.New("mock: signature mismatch")
	}
	if d := time.Since(time.Unix(ts, 0)); d > 5*time.Minute || d < -5*time.Minute {
		return WebhookEvent{}, errors.New("mock: signature timestamp outside tolerance")
	}

	var payload mockEventPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return WebhookEvent{}, errors.New("mock: malformed payload")
	}

	return WebhookEvent{
		EventID:     payload.ID,
		Type:        payload.Type,
		IntentID:    payload.Data.PaymentIntentID,
		RefundID:    payload.Data.RefundID,
		AmountCents: payload.Data.AmountCents,
		Currency:    payload.Data.Currency,
		OrderID:     payload.Data.OrderID,
	}, nil
}

// SignPayload produces the header value for a mock webhook delivery; the
// mockwebhook tool and tests use it.
func (m *MockProvider) SignPayload(ts int64, body []byte) string {
	return fmt.Sprintf("t=%d,v1=%s", ts, computeMockSignature(m.secret, ts, body))
}

func parseSignatureHeader(v string) (int64, string, error) {
	var ts int64
	var sig string
	for _, part := range strings.Split(v, ",") {
		k, val, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			n, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return 0, "", errors.New("mock: bad signature timestamp")
			}
			ts = n
		case "v1":
			sig = val
		}
	}
	if ts == 0 || sig == "" {
		return 0, "", errors.New("mock: missing signature header")
	}
	return ts, sig, nil
}

func computeMockSignature(secret []byte, ts int64, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	mac.Write([]byte("."))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func randomHex(nBytes int) string {
	b := make([]byte, nBytes)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
