package handlers

import (
	"encoding/json"
	"time"

	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/orders"
	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/payments"
	"github.com/amanisrajpoot/youandonly-sub000/pkg/money"
)

// Amounts leave the API as fixed two-decimal strings; cents stay internal.

type orderItemDTO struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	VariantID   *string `json:"variantId,omitempty"`
	ProductName string  `json:"productName"`
	SKU         string  `json:"sku"`
	UnitPrice   string  `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	LineTotal   string  `json:"lineTotal"`
	Currency    string  `json:"currency"`
}

type orderDTO struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"paymentStatus"`
	PaymentMethod   *string         `json:"paymentMethod,omitempty"`
	PaymentIntentID *string         `json:"paymentIntentId,omitempty"`
	Subtotal        string          `json:"subtotal"`
	Tax             string          `json:"tax"`
	Shipping        string          `json:"shipping"`
	Total           string          `json:"total"`
	Refunded        string          `json:"refunded,omitempty"`
	Currency        string          `json:"currency"`
	ShippingAddress json.RawMessage `json:"shippingAddress,omitempty"`
	BillingAddress  json.RawMessage `json:"billingAddress,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	PaidAt          *string         `json:"paidAt,omitempty"`
	CreatedAt       string          `json:"createdAt"`
	Items           []orderItemDTO  `json:"items,omitempty"`
	ItemCount       int             `json:"itemCount,omitempty"`
}

type intentDTO struct {
	PaymentIntentID string `json:"paymentIntentId"`
	Status          string `json:"status"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
}

func amount(cents int64) string {
	return money.FromCents(cents).StringFixed(2)
}

func intentToDTO(in payments.Intent) intentDTO {
	return intentDTO{
		PaymentIntentID: in.ID,
		Status:          in.Status,
		Amount:          amount(in.AmountCents),
		Currency:        in.Currency,
	}
}

func orderToDTO(o orders.Order, items []orders.OrderItem) orderDTO {
	dto := orderDTO{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		PaymentMethod:   o.PaymentMethod,
		PaymentIntentID: o.PaymentIntentID,
		Subtotal:        amount(o.SubtotalCents),
		Tax:             amount(o.TaxCents),
		Shipping:        amount(o.ShippingCents),
		Total:           amount(o.TotalCents),
		Currency:        o.Currency,
		ShippingAddress: json.RawMessage(o.ShippingAddressJSON),
		BillingAddress:  json.RawMessage(o.BillingAddressJSON),
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt.UTC().Format(time.RFC3339),
	}
	if o.RefundedCents > 0 {
		dto.Refunded = amount(o.RefundedCents)
	}
	if o.PaidAt != nil {
		s := o.PaidAt.UTC().Format(time.RFC3339)
		dto.PaidAt = &s
	}
	for _, it := range items {
		dto.Items = append(dto.Items, orderItemDTO{
			ID:          it.ID,
			ProductID:   it.ProductID,
			VariantID:   it.VariantID,
			ProductName: it.ProductName,
			SKU:         it.SKU,
			UnitPrice:   amount(it.UnitPriceCents),
			Quantity:    it.Quantity,
			LineTotal:   amount(it.LineTotalCents),
			Currency:    it.Currency,
		})
	}
	return dto
}
