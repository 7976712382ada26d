package email

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enqueue writes an outbox row inside the caller's transaction. The
// dispatcher picks it up after commit.
func Enqueue(ctx context.Context, tx *gorm.DB, to, toName, subject, textBody, htmlBody string) error {
	now := time.Now()
	row := Outbox{
		ID:        uuid.NewString(),
		To:        to,
		ToName:    toName,
		Subject:   subject,
		TextBody:  textBody,
		HTMLBody:  htmlBody,
		Status:    OutboxPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return tx.WithContext(ctx).Create(&row).Error
}

// EnqueueOrderConfirmation composes and queues the payment-confirmed email.
func EnqueueOrderConfirmation(ctx context.Context, tx *gorm.DB, to, name, orderNumber, total string) error {
	subject := "Order Confirmation - You&Only"
	textBody := "Hi " + name + ",\n\nWe received your payment for order " + orderNumber + ". Total: " + total + "\n\nThank you for shopping with us!"

	htmlBody := `
<html>
  <body style="font-family: sans-serif;">
    <h2>Order Confirmation</h2>
    <p>Hi ` + name + `,</p>
    <p>We received your payment.</p>
    <p><strong>Order:</strong> ` + orderNumber + `</p>
    <p><strong>Total:</strong> ` + total + `</p>
    <p>Thank you for shopping with us!</p>
    <p>The You&amp;Only Team</p>
  </body>
</html>
`

	return Enqueue(ctx, tx, to, name, subject, textBody, htmlBody)
}

// EnqueueRefundNotice queues the refund-processed email.
func EnqueueRefundNotice(ctx context.Context, tx *gorm.DB, to, name, orderNumber, amount string) error {
	subject := "Refund Processed - You&Only"
	textBody := "Hi " + name + ",\n\nA refund of " + amount + " for order " + orderNumber + " has been processed. It may take a few business days to appear on your statement."

	htmlBody := `
<html>
  <body style="font-family: sans-serif;">
    <h2>Refund Processed</h2>
    <p>Hi ` + name + `,</p>
    <p><strong>Order:</strong> ` + orderNumber + `</p>
    <p><strong>Amount:</strong> ` + amount + `</p>
    <p>It may take a few business days to appear on your statement.</p>
  </body>
</html>
`

	return Enqueue(ctx, tx, to, name, subject, textBody, htmlBody)
}
