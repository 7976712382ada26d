package email

import "time"

const (
	OutboxPending = "pending"
	OutboxSent    = "sent"
	OutboxFailed  = "failed"
)

// Outbox rows are written in the same transaction that makes the change they
// announce, so a crash between commit and SMTP never loses the email.
type Outbox struct {
	ID       string `gorm:"type:char(36);primaryKey"`
	To       string `gorm:"column:to_addr;type:varchar(255);not null"`
	ToName   string `gorm:"type:varchar(255);not null;default:''"`
	Subject  string `gorm:"type:varchar(255);not null"`
	TextBody string `gorm:"type:text;not null"`
	HTMLBody string `gorm:"type:text;not null"`

	Status    string  `gorm:"type:varchar(16);not null;default:pending;index:ix_email_outbox_status"`
	Attempts  int     `gorm:"not null;default:0"`
	LastError *string `gorm:"type:varchar(255)"`

	CreatedAt time.Time  `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time  `gorm:"type:datetime(3);not null"`
	SentAt    *time.Time `gorm:"type:datetime(3)"`
}

func (Outbox) TableName() string { return "email_outbox" }
