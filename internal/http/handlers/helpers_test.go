package handlers

import (
	"testing"
	"time"

	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/orders"
	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/payments"
)

func TestOrderToDTOAmounts(t *testing.T) {
	o := orders.Order{
		ID:            "ord-1",
		OrderNumber:   "YO-1700000000000-ABCDEF123",
		SubtotalCents: 11000,
		TaxCents:      880,
		ShippingCents: 0,
		TotalCents:    11880,
		Currency:      "USD",
		Status:        orders.StatusPending,
		PaymentStatus: orders.PaymentPending,
		CreatedAt:     time.Now(),
	}
	items := []orders.OrderItem{{
		ID:             "item-1",
		OrderID:        "ord-1",
		ProductID:      "p1",
		ProductName:    "Tee",
		UnitPriceCents: 5500,
		Quantity:       2,
		LineTotalCents: 11000,
		Currency:       "USD",
	}}

	dto := orderToDTO(o, items)

	if dto.Subtotal != "110.00" || dto.Tax != "8.80" || dto.Shipping != "0.00" || dto.Total != "118.80" {
		t.Errorf("amounts = %s/%s/%s/%s", dto.Subtotal, dto.Tax, dto.Shipping, dto.Total)
	}
	if dto.Refunded != "" {
		t.Errorf("refunded should be omitted when zero, got %q", dto.Refunded)
	}
	if len(dto.Items) != 1 || dto.Items[0].UnitPrice != "55.00" || dto.Items[0].LineTotal != "110.00" {
		t.Errorf("items = %+v", dto.Items)
	}
}

func TestIntentToDTO(t *testing.T) {
	dto := intentToDTO(payments.Intent{
		ID:          "pi_1",
		Status:      "succeeded",
		AmountCents: 11880,
		Currency:    "USD",
	})
	if dto.PaymentIntentID != "pi_1" || dto.Status != "succeeded" {
		t.Errorf("dto = %+v", dto)
	}
	if dto.Amount != "118.80" || dto.Currency != "USD" {
		t.Errorf("amount/currency = %s/%s", dto.Amount, dto.Currency)
	}
}
