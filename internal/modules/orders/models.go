package orders

import (
	"time"

	"gorm.io/datatypes"
)

type Order struct {
	ID          string `gorm:"type:char(36);primaryKey"`
	OrderNumber string `gorm:"type:varchar(32);not null;uniqueIndex:ux_orders_order_number"`
	UserID      string `gorm:"type:char(36);not null;index:ix_orders_user_id"`

	SubtotalCents int64  `gorm:"not null"`
	TaxCents      int64  `gorm:"not null"`
	ShippingCents int64  `gorm:"not null"`
	TotalCents    int64  `gorm:"not null"`
	RefundedCents int64  `gorm:"not null;default:0"`
	Currency      string `gorm:"type:char(3);not null"`

	Status        Status        `gorm:"type:varchar(32);not null"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(32);not null"`

	PaymentMethod   *string `gorm:"type:varchar(64)"`
	PaymentIntentID *string `gorm:"type:varchar(128);index:ix_orders_payment_intent_id"`

	ShippingAddressJSON datatypes.JSON `gorm:"type:json"`
	BillingAddressJSON  datatypes.JSON `gorm:"type:json"`
	Notes               *string        `gorm:"type:varchar(1000)"`

	PaidAt     *time.Time `gorm:"type:datetime(3)"`
	RefundedAt *time.Time `gorm:"type:datetime(3)"`
	CreatedAt  time.Time  `gorm:"type:datetime(3);not null"`
	UpdatedAt  time.Time  `gorm:"type:datetime(3);not null"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID          string `gorm:"type:char(36);primaryKey"`
	OrderID     string `gorm:"type:char(36);not null;index:ix_order_items_order_id"`
	ProductID   string `gorm:"type:char(36);not null;index:ix_order_items_product_id"`
	VariantID   *string `gorm:"type:char(36)"`
	ProductName string `gorm:"type:varchar(255);not null"`
	SKU         string `gorm:"type:varchar(64);not null"`

	// Unit price is copied from the catalog at order creation and never
	// re-derived; later catalog changes do not touch existing orders.
	UnitPriceCents int64  `gorm:"not null"`
	Quantity       int    `gorm:"not null"`
	LineTotalCents int64  `gorm:"not null"`
	Currency       string `gorm:"type:char(3);not null"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (OrderItem) TableName() string { return "order_items" }

// OrderEvent is the audit trail of status transitions.
type OrderEvent struct {
	ID          string    `gorm:"type:char(36);primaryKey"`
	OrderID     string    `gorm:"type:char(36);not null;index:ix_order_events_order_id"`
	ActorUserID string    `gorm:"type:char(36);not null"`
	Action      string    `gorm:"type:varchar(32);not null"`
	FromStatus  string    `gorm:"type:varchar(32);not null"`
	ToStatus    string    `gorm:"type:varchar(32);not null"`
	Note        *string   `gorm:"type:varchar(255)"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null"`
}

func (OrderEvent) TableName() string { return "order_events" }
