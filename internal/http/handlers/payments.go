package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/amanisrajpoot/youandonly-sub000/internal/http/middleware"
	"github.com/amanisrajpoot/youandonly-sub000/internal/http/respond"
	"github.com/amanisrajpoot/youandonly-sub000/internal/http/validation"
	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/payments"
	"github.com/amanisrajpoot/youandonly-sub000/internal/shared/apperr"
	"github.com/amanisrajpoot/youandonly-sub000/pkg/money"
)

type PaymentsHandler struct {
	Payments *payments.Service
	Refunds  *payments.RefundService
	Currency string // default when the request omits one
}

func NewPaymentsHandler(svc *payments.Service, refunds *payments.RefundService, currency string) *PaymentsHandler {
	return &PaymentsHandler{Payments: svc, Refunds: refunds, Currency: currency}
}

type createIntentInput struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" binding:"omitempty,len=3"`
	OrderID  string          `json:"orderId" binding:"omitempty,uuid"`
}

// POST /payments/create-payment-intent
func (h *PaymentsHandler) CreateIntent(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	var in createIntentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.ErrorFields(c, http.StatusBadRequest, "Validation failed.", validation.FromBindError(err, &in))
		return
	}

	cents, err := money.ToCents(in.Amount)
	if err != nil || cents <= 0 {
		respond.Error(c, http.StatusBadRequest, "Amount must be greater than zero.")
		return
	}

	currency := in.Currency
	if currency == "" {
		currency = h.Currency
	}

	res, err := h.Payments.CreateIntent(c.Request.Context(), payments.CreateIntentInput{
		UserID:      userID,
		AmountCents: cents,
		Currency:    currency,
		OrderID:     in.OrderID,
	})
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidAmount):
			respond.Error(c, http.StatusBadRequest, "Amount must be greater than zero.")
		case errors.Is(err, payments.ErrAmountMismatch):
			respond.Error(c, http.StatusBadRequest, "Amount does not match the order total.")
		case payments.IsNotFound(err):
			respond.Error(c, http.StatusNotFound, "Order not found.")
		case errors.Is(err, payments.ErrGateway):
			respond.Error(c, http.StatusBadGateway, "Payment could not be initiated.")
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}

	respond.OK(c, http.StatusOK, gin.H{
		"paymentIntentId": res.PaymentIntentID,
		"clientSecret":    res.ClientSecret,
	})
}

// GET /payments/payment-intent/:id
func (h *PaymentsHandler) GetIntent(c *gin.Context) {
	intent, err := h.Payments.GetIntent(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, payments.ErrGateway) {
			respond.Error(c, http.StatusBadGateway, "Payment lookup failed.")
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	respond.OK(c, http.StatusOK, intentToDTO(intent))
}

type confirmInput struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
	OrderID         string `json:"orderId" binding:"required,uuid"`
}

// POST /payments/confirm-payment
//
// The client saying "I paid" is not trusted: the intent status is re-read
// from the gateway and only a succeeded intent flips the order.
func (h *PaymentsHandler) Confirm(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	var in confirmInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.ErrorFields(c, http.StatusBadRequest, "Validation failed.", validation.FromBindError(err, &in))
		return
	}

	res, err := h.Payments.Confirm(c.Request.Context(), payments.ConfirmInput{
		UserID:          userID,
		OrderID:         in.OrderID,
		PaymentIntentID: in.PaymentIntentID,
	})
	if err != nil {
		switch {
		case payments.IsNotFound(err):
			respond.Error(c, http.StatusNotFound, "Order not found.")
		case errors.Is(err, payments.ErrPaymentNotCompleted):
			respond.Error(c, http.StatusBadRequest, "Payment has not been completed.")
		case errors.Is(err, payments.ErrGateway):
			respond.Error(c, http.StatusBadGateway, "Payment verification failed.")
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}

	respond.OKMessage(c, http.StatusOK,
		gin.H{
			"order":         orderToDTO(res.Order, nil),
			"paymentIntent": intentToDTO(res.Intent),
		},
		"Payment confirmed.")
}

type refundInput struct {
	PaymentIntentID string          `json:"paymentIntentId" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
	Reason          string          `json:"reason" binding:"omitempty,max=255"`
	IdempotencyKey  string          `json:"idempotencyKey" binding:"omitempty,max=64"`
}

// POST /payments/refund (admin)
func (h *PaymentsHandler) Refund(c *gin.Context) {
	adminID, _ := middleware.CurrentUserID(c)

	var in refundInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.ErrorFields(c, http.StatusBadRequest, "Validation failed.", validation.FromBindError(err, &in))
		return
	}

	var cents int64
	if !in.Amount.IsZero() {
		var err error
		cents, err = money.ToCents(in.Amount)
		if err != nil || cents <= 0 {
			respond.Error(c, http.StatusBadRequest, "Refund amount is invalid.")
			return
		}
	}

	res, err := h.Refunds.Refund(c.Request.Context(), payments.RefundInput{
		PaymentIntentID: in.PaymentIntentID,
		ActorUserID:     adminID,
		AmountCents:     cents,
		Reason:          in.Reason,
		IdempotencyKey:  in.IdempotencyKey,
	})
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrNoSucceededPayment), errors.Is(err, payments.ErrNotRefundable):
			respond.Error(c, http.StatusConflict, "Payment is not refundable.")
		case errors.Is(err, payments.ErrGateway):
			respond.Error(c, http.StatusBadGateway, "Refund could not be processed.")
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}

	respond.OKMessage(c, http.StatusOK, gin.H{
		"refundId": res.RefundID,
		"status":   res.Status,
		"amount":   amount(res.AmountCents),
	}, "Refund processed.")
}
