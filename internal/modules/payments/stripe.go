package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	stripe "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/refund"
	"github.com/stripe/stripe-go/v81/webhook"
)

// StripeProvider adapts the Stripe payment-intent API to the Provider
// boundary. Card details never pass through here; the client confirms the
// intent with Stripe directly using the client secret.
type StripeProvider struct {
	webhookSecret string
}

func NewStripeProvider(secretKey, webhookSecret string) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{webhookSecret: webhookSecret}
}

func (s *StripeProvider) Name() string { return "stripe" }

func (s *StripeProvider) CreatePaymentIntent(ctx context.Context, p CreateIntentParams) (Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(p.AmountCents),
		Currency: stripe.String(p.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if p.IdempotencyKey != "" {
		params.IdempotencyKey = stripe.String(p.IdempotencyKey)
	}
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return Intent{}, fmt.Errorf("stripe: create payment intent: %w", err)
	}
	return intentFromStripe(pi), nil
}

func (s *StripeProvider) GetPaymentIntent(ctx context.Context, id string) (Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(id, params)
	if err != nil {
		return Intent{}, fmt.Errorf("stripe: get payment intent: %w", err)
	}
	return intentFromStripe(pi), nil
}

func (s *StripeProvider) CreateRefund(ctx context.Context, p RefundParams) (RefundResult, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(p.IntentID),
	}
	params.Context = ctx
	if p.AmountCents > 0 {
		params.Amount = stripe.Int64(p.AmountCents)
	}
	if p.IdempotencyKey != "" {
		params.IdempotencyKey = stripe.String(p.IdempotencyKey)
	}
	switch p.Reason {
	case string(stripe.RefundReasonDuplicate),
		string(stripe.RefundReasonFraudulent),
		string(stripe.RefundReasonRequestedByCustomer):
		params.Reason = stripe.String(p.Reason)
	}

	r, err := refund.New(params)
	if err != nil {
		return RefundResult{}, fmt.Errorf("stripe: create refund: %w", err)
	}
	return RefundResult{ID: r.ID, Status: string(r.Status)}, nil
}

func (s *StripeProvider) VerifyAndParseWebhook(header http.Header, body []byte) (WebhookEvent, error) {
	event, err := webhook.ConstructEvent(body, header.Get("Stripe-Signature"), s.webhookSecret)
	if err != nil {
		return WebhookEvent{}, fmt.Errorf("stripe: webhook verification: %w", err)
	}

	ev := WebhookEvent{
		EventID: event.ID,
		Type:    string(event.Type),
	}

	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return WebhookEvent{}, fmt.Errorf("stripe: decode payment intent event: %w", err)
		}
		ev.IntentID = pi.ID
		ev.AmountCents = pi.Amount
		ev.Currency = string(pi.Currency)
		ev.OrderID = pi.Metadata["order_id"]
	case "refund.updated":
		var r stripe.Refund
		if err := json.Unmarshal(event.Data.Raw, &r); err != nil {
			return WebhookEvent{}, fmt.Errorf("stripe: decode refund event: %w", err)
		}
		ev.RefundID = r.ID
		ev.AmountCents = r.Amount
		ev.Currency = string(r.Currency)
		switch r.Status {
		case stripe.RefundStatusSucceeded:
			ev.Type = EventRefundSucceeded
		case stripe.RefundStatusFailed:
			ev.Type = EventRefundFailed
		}
	}

	return ev, nil
}

func intentFromStripe(pi *stripe.PaymentIntent) Intent {
	return Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		AmountCents:  pi.Amount,
		Currency:     string(pi.Currency),
		OrderID:      pi.Metadata["order_id"],
	}
}
