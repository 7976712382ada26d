package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/payments"
)

// A bad signature must be rejected before any event row is written; the
// handler with a nil webhook service panics if verification is ever skipped.
func TestWebhookRejectsBadSignature(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider := payments.NewMockProvider([]byte("whsec"))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewWebhookHandler(logger, provider, nil)

	r := gin.New()
	r.POST("/payments/webhook", h.Handle)

	body := `{"id":"evt_1","type":"payment_intent.succeeded"}`
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(body))
	req.Header.Set("X-Mock-Signature", "t=1,v1=deadbeef")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var env struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Success {
		t.Error("success should be false")
	}
	if env.Error == "" {
		t.Error("error message missing")
	}
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider := payments.NewMockProvider([]byte("whsec"))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewWebhookHandler(logger, provider, nil)

	r := gin.New()
	r.POST("/payments/webhook", h.Handle)

	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
