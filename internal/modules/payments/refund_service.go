package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/email"
	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/orders"
	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/users"
	"github.com/amanisrajpoot/youandonly-sub000/pkg/money"
)

type RefundService struct {
	db       *gorm.DB
	provider Provider
}

func NewRefundService(db *gorm.DB, p Provider) *RefundService {
	return &RefundService{db: db, provider: p}
}

type RefundInput struct {
	PaymentIntentID string
	ActorUserID     string // admin
	AmountCents     int64  // 0 => full remaining
	Reason          string
	IdempotencyKey  string
}

type RefundOutcome struct {
	RefundID    string
	Status      string
	AmountCents int64
	Idempotent  bool
}

// Refund runs in three phases like payment: lock + idempotency row inside a
// transaction, the provider call outside it, then finalize. Partial refunds
// accumulate on the order; reaching the full total flips it to refunded.
func (s *RefundService) Refund(ctx context.Context, in RefundInput) (RefundOutcome, error) {
	if in.PaymentIntentID == "" || in.ActorUserID == "" {
		return RefundOutcome{}, ErrNotRefundable
	}
	if in.IdempotencyKey == "" {
		in.IdempotencyKey = uuid.NewString()
	}

	// Phase-1: lock order + find the succeeded payment + idempotency check.
	var ord orders.Order
	var pay Payment
	var ref Refund

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).
			First(&pay, "provider = ? AND provider_ref = ? AND status = ?",
				s.provider.Name(), in.PaymentIntentID, StatusSucceeded).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoSucceededPayment
			}
			return err
		}

		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ord, "id = ?", pay.OrderID).Error; err != nil {
			return err
		}

		if ord.PaymentStatus != orders.PaymentPaid || !orders.Refundable(ord.Status) {
			return ErrNotRefundable
		}

		remaining := ord.TotalCents - ord.RefundedCents
		if remaining <= 0 {
			return ErrNotRefundable
		}

		amount := in.AmountCents
		if amount <= 0 || amount > remaining {
			amount = remaining
		}

		// idempotency: payment + key
		var existing Refund
		e := tx.WithContext(ctx).First(&existing, "payment_id = ? AND idempotency_key = ?", pay.ID, in.IdempotencyKey).Error
		if e == nil {
			ref = existing
			return nil
		}
		if !errors.Is(e, gorm.ErrRecordNotFound) {
			return e
		}

		now := time.Now()
		var reasonPtr *string
		if in.Reason != "" {
			r := in.Reason
			reasonPtr = &r
		}

		ref = Refund{
			ID:             uuid.NewString(),
			OrderID:        ord.ID,
			PaymentID:      pay.ID,
			Provider:       s.provider.Name(),
			Status:         StatusInitiated,
			AmountCents:    amount,
			Currency:       ord.Currency,
			IdempotencyKey: in.IdempotencyKey,
			Reason:         reasonPtr,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		return tx.WithContext(ctx).Create(&ref).Error
	})
	if err != nil {
		return RefundOutcome{}, err
	}

	// idempotent hit
	if ref.Status == StatusSucceeded {
		return RefundOutcome{RefundID: ref.ID, Status: ref.Status, AmountCents: ref.AmountCents, Idempotent: true}, nil
	}

	// Phase-2: provider call, outside the transaction.
	resp, perr := s.provider.CreateRefund(ctx, RefundParams{
		IntentID:       in.PaymentIntentID,
		AmountCents:    ref.AmountCents,
		Reason:         in.Reason,
		IdempotencyKey: in.IdempotencyKey,
	})

	// Phase-3: finalize refund row + order totals.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		upd := map[string]any{"updated_at": now}
		if resp.ID != "" {
			upd["provider_ref"] = resp.ID
		}

		switch refundRowStatus(perr, resp.Status) {
		case StatusFailed:
			msg := "refund failed"
			if perr != nil {
				msg = truncate(perr.Error(), 250)
			}
			upd["status"] = StatusFailed
			upd["error_message"] = msg
			if err := tx.WithContext(ctx).Model(&Refund{}).Where("id = ?", ref.ID).Updates(upd).Error; err != nil {
				return err
			}
			return s.audit(ctx, tx, ord, in.ActorUserID, "refund failed: "+msg, string(ord.Status))
		case StatusInitiated:
			// provider accepted but has not settled; the refund webhook
			// flips this row when it does
			if err := tx.WithContext(ctx).Model(&Refund{}).Where("id = ?", ref.ID).Updates(upd).Error; err != nil {
				return err
			}
			return s.audit(ctx, tx, ord, in.ActorUserID, "refund pending, refund_id="+ref.ID, string(ord.Status))
		}

		upd["status"] = StatusSucceeded
		upd["error_message"] = nil
		if err := tx.WithContext(ctx).Model(&Refund{}).Where("id = ?", ref.ID).Updates(upd).Error; err != nil {
			return err
		}

		if err := applyRefundToOrder(ctx, tx, ord.ID, ref.AmountCents); err != nil {
			return err
		}

		var u users.User
		if err := tx.WithContext(ctx).First(&u, "id = ?", ord.UserID).Error; err != nil {
			return err
		}
		amount := money.Format(ord.Currency, ref.AmountCents)
		if err := email.EnqueueRefundNotice(ctx, tx, u.Email, u.FirstName, ord.OrderNumber, amount); err != nil {
			return err
		}

		var after orders.Order
		if err := tx.WithContext(ctx).First(&after, "id = ?", ord.ID).Error; err != nil {
			return err
		}
		return s.audit(ctx, tx, ord, in.ActorUserID, "refund_id="+ref.ID, string(after.Status))
	})
	if err != nil {
		return RefundOutcome{}, err
	}

	if perr != nil {
		return RefundOutcome{}, fmt.Errorf("%w: %v", ErrGateway, perr)
	}
	return RefundOutcome{RefundID: ref.ID, Status: resp.Status, AmountCents: ref.AmountCents}, nil
}

// refundRowStatus decides what the provider's answer means for the refund
// row: a hard error or an explicit failure marks it failed, succeeded marks
// it succeeded, and anything else (Stripe reports "pending" for in-flight
// refunds) leaves it initiated for the webhook to settle.
func refundRowStatus(perr error, providerStatus string) string {
	switch {
	case perr != nil, providerStatus == StatusFailed:
		return StatusFailed
	case providerStatus == StatusSucceeded:
		return StatusSucceeded
	default:
		return StatusInitiated
	}
}

func (s *RefundService) audit(ctx context.Context, tx *gorm.DB, ord orders.Order, actor, note, toStatus string) error {
	n := note
	ev := orders.OrderEvent{
		ID:          uuid.NewString(),
		OrderID:     ord.ID,
		ActorUserID: actor,
		Action:      "refund",
		FromStatus:  string(ord.Status),
		ToStatus:    toStatus,
		Note:        &n,
		CreatedAt:   time.Now(),
	}
	return tx.WithContext(ctx).Create(&ev).Error
}

// applyRefundToOrder accumulates refunded cents under a row lock and flips
// the order to refunded/refunded when the full total has been returned.
func applyRefundToOrder(ctx context.Context, tx *gorm.DB, orderID string, amountCents int64) error {
	var o orders.Order
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&o, "id = ?", orderID).Error; err != nil {
		return err
	}

	now := time.Now()
	newRefunded := o.RefundedCents + amountCents
	updates := map[string]any{
		"refunded_cents": newRefunded,
		"updated_at":     now,
	}

	if newRefunded >= o.TotalCents {
		updates["refunded_cents"] = o.TotalCents
		if _, err := o.Status.Transition(orders.StatusRefunded); err == nil {
			updates["status"] = orders.StatusRefunded
		}
		if _, err := o.PaymentStatus.Transition(orders.PaymentRefunded); err == nil {
			updates["payment_status"] = orders.PaymentRefunded
		}
		updates["refunded_at"] = &now
	}

	return tx.WithContext(ctx).Model(&orders.Order{}).
		Where("id = ?", o.ID).
		Updates(updates).Error
}
