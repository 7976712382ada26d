package payments

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusInitiated = "initiated"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Payment records one payment-intent attempt against an order. The intent
// itself is owned by the gateway; this row carries only the reference and
// the last status the workflow verified server-side.
type Payment struct {
	ID             string    `gorm:"type:char(36);primaryKey"`
	OrderID        string    `gorm:"type:char(36);not null;index:ix_payments_order_id"`
	Provider       string    `gorm:"type:varchar(64);not null"`
	ProviderRef    *string   `gorm:"type:varchar(128);index:ix_payments_provider_ref"`
	Status         string    `gorm:"type:varchar(32);not null"`
	AmountCents    int64     `gorm:"not null"`
	Currency       string    `gorm:"type:char(3);not null"`
	IdempotencyKey string    `gorm:"type:varchar(64);not null"`
	ErrorMessage   *string   `gorm:"type:varchar(255)"`
	CreatedAt      time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt      time.Time `gorm:"type:datetime(3);not null"`
}

func (Payment) TableName() string { return "payments" }

type Refund struct {
	ID             string    `gorm:"type:char(36);primaryKey"`
	OrderID        string    `gorm:"type:char(36);not null;index:ix_refunds_order_id"`
	PaymentID      string    `gorm:"type:char(36);not null;index:ix_refunds_payment_id"`
	Provider       string    `gorm:"type:varchar(64);not null"`
	ProviderRef    *string   `gorm:"type:varchar(128)"`
	Status         string    `gorm:"type:varchar(32);not null"`
	AmountCents    int64     `gorm:"not null"`
	Currency       string    `gorm:"type:char(3);not null"`
	IdempotencyKey string    `gorm:"type:varchar(64);not null"`
	Reason         *string   `gorm:"type:varchar(255)"`
	ErrorMessage   *string   `gorm:"type:varchar(255)"`
	CreatedAt      time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt      time.Time `gorm:"type:datetime(3);not null"`
}

func (Refund) TableName() string { return "refunds" }

// ProviderEvent dedupes webhook deliveries on unique(provider, event_id).
type ProviderEvent struct {
	ID          string         `gorm:"type:char(36);primaryKey"`
	Provider    string         `gorm:"type:varchar(64);not null;uniqueIndex:ux_provider_events_provider_event,priority:1"`
	EventID     string         `gorm:"type:varchar(128);not null;uniqueIndex:ux_provider_events_provider_event,priority:2"`
	EventType   string         `gorm:"type:varchar(64);not null"`
	PayloadJSON datatypes.JSON `gorm:"type:json;not null"`

	ReceivedAt   time.Time  `gorm:"type:datetime(3);not null"`
	ProcessedAt  *time.Time `gorm:"type:datetime(3)"`
	ProcessError *string    `gorm:"type:varchar(255)"`
}

func (ProviderEvent) TableName() string { return "provider_events" }
