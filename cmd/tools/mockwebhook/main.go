package main

import (
	"bytes"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Sends a signed mock-gateway event at a running server, for exercising the
// webhook path without a real gateway.

type webhookPayload struct {
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

func main() {
	url := flag.String("url", "http://localhost:8080/payments/webhook", "Webhook URL")
	secret := flag.String("secret", os.Getenv("MOCK_WEBHOOK_SECRET"), "Webhook secret")
	eventID := flag.String("event-id", "evt_"+randomHex(8), "Event ID")
	eventType := flag.String("type", "payment_intent.succeeded", "Event type (payment_intent.succeeded, payment_intent.payment_failed, refund.succeeded, refund.failed)")
	intentID := flag.String("intent", "pi_mock_"+randomHex(8), "Payment intent id")
	refundID := flag.String("refund", "", "Refund id (for refund events)")
	orderID := flag.String("order", "", "Order id carried in metadata")
	amount := flag.Int64("amount", 5000, "Amount in cents")
	currency := flag.String("currency", "USD", "Currency")
	dryRun := flag.Bool("dry-run", false, "Only print signature header, don't send")

	flag.Parse()

	if *secret == "" {
		fmt.Fprintf(os.Stderr, "Error: secret not provided and MOCK_WEBHOOK_SECRET not set\n")
		os.Exit(1)
	}

	payload := webhookPayload{
		ID:   *eventID,
		Type: *eventType,
	}
	payload.Data.PaymentIntentID = *intentID
	payload.Data.RefundID = *refundID
	payload.Data.AmountCents = *amount
	payload.Data.Currency = *currency
	payload.Data.OrderID = *orderID

	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling payload: %v\n", err)
		os.Exit(1)
	}

	t := time.Now().Unix()
	sig := computeSig([]byte(*secret), t, body)
	sigHeader := fmt.Sprintf("t=%d,v1=%s", t, sig)

	fmt.Printf("X-Mock-Signature: %s\n", sigHeader)
	fmt.Printf("Body: %s\n", string(body))

	if *dryRun {
		fmt.Println("\n[DRY RUN] Not sending request")
		return
	}

	fmt.Printf("\nSending to %s...\n", *url)
	req, err := http.NewRequest("POST", *url, bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating request: %v\n", err)
		os.Exit(1)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Mock-Signature", sigHeader)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sending request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %s\nResponse: %s\n", resp.Status, string(respBody))
}

func computeSig(secret []byte, ts int64, body []byte) string {
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
