package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amanisrajpoot/youandonly-sub000/internal/http/respond"
	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/payments"
)

type WebhookHandler struct {
	Logger     *slog.Logger
	Provider   payments.Provider
	WebhookSvc *payments.WebhookService
}

func NewWebhookHandler(logger *slog.Logger, p payments.Provider, svc *payments.WebhookService) *WebhookHandler {
	return &WebhookHandler{Logger: logger, Provider: p, WebhookSvc: svc}
}

// POST /payments/webhook
// Body is the gateway's raw JSON; the provider adapter validates the
// signature header before anything is parsed or stored.
func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid body.")
		return
	}

	ev, err := h.Provider.VerifyAndParseWebhook(c.Request.Header, body)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid signature or payload.")
		return
	}

	if err := h.WebhookSvc.Handle(c.Request.Context(), h.Provider.Name(), ev, body); err != nil {
		// 500 makes the gateway retry the delivery
		h.Logger.Error("webhook apply failed", "event_id", ev.EventID, "type", ev.Type, "err", err)
		respond.Error(c, http.StatusInternalServerError, "Event could not be processed.")
		return
	}

	respond.OK(c, http.StatusOK, gin.H{"received": true})
}
