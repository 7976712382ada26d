package payments

import (
	"context"
	"net/http"
)

// Intent statuses as reported by the gateway. Only "succeeded" lets the
// workflow mark an order paid.
const IntentSucceeded = "succeeded"

// Normalized webhook event types. Provider adapters map gateway-specific
// names onto these; anything else is passed through and ignored upstream.
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
	EventRefundSucceeded  = "refund.succeeded"
	EventRefundFailed     = "refund.failed"
)

// All amounts crossing this boundary are in the gateway's minor units.

type CreateIntentParams struct {
	AmountCents int64
	Currency    string
	Metadata    map[string]string
	// IdempotencyKey dedupes the gateway call on retries.
	IdempotencyKey string
}

type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	AmountCents  int64
	Currency     string
	OrderID      string // from metadata, when present
}

type RefundParams struct {
	IntentID       string
	AmountCents    int64 // 0 => full remaining per the gateway
	Reason         string
	IdempotencyKey string
}

type RefundResult struct {
	ID     string
	Status string
}

type WebhookEvent struct {
	EventID     string
	Type        string
	IntentID    string
	RefundID    string
	AmountCents int64
	Currency    string
	OrderID     string
}

type Provider interface {
	Name() string
	CreatePaymentIntent(ctx context.Context, p CreateIntentParams) (Intent, error)
	GetPaymentIntent(ctx context.Context, id string) (Intent, error)
	CreateRefund(ctx context.Context, p RefundParams) (RefundResult, error)

	// Webhook: verify signature + parse into a normalized event.
	VerifyAndParseWebhook(header http.Header, body []byte) (WebhookEvent, error)
}
