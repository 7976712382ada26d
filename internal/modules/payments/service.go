package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/email"
	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/orders"
	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/users"
	"github.com/amanisrajpoot/youandonly-sub000/pkg/money"
)

type Service struct {
	db       *gorm.DB
	provider Provider
}

func NewService(db *gorm.DB, p Provider) *Service {
	return &Service{db: db, provider: p}
}

func (s *Service) Provider() Provider { return s.provider }

type CreateIntentInput struct {
	UserID      string
	AmountCents int64
	Currency    string
	OrderID     string // optional
}

type CreateIntentResult struct {
	PaymentIntentID string
	ClientSecret    string
}

// CreateIntent requests a payment intent from the gateway. The amount is
// validated before the gateway is contacted; when an order id is given the
// intent is recorded against the order so webhooks can find it later.
func (s *Service) CreateIntent(ctx context.Context, in CreateIntentInput) (CreateIntentResult, error) {
	if in.AmountCents <= 0 {
		return CreateIntentResult{}, ErrInvalidAmount
	}

	metadata := map[string]string{"user_id": in.UserID}

	// Phase-1: pin the intent to the order before calling out.
	var payment *Payment
	if in.OrderID != "" {
		ord, err := orders.NewRepo(s.db).GetForUser(ctx, in.OrderID, in.UserID)
		if err != nil {
			return CreateIntentResult{}, err
		}
		if in.AmountCents != ord.TotalCents {
			return CreateIntentResult{}, ErrAmountMismatch
		}
		metadata["order_id"] = ord.ID

		now := time.Now()
		payment = &Payment{
			ID:             uuid.NewString(),
			OrderID:        ord.ID,
			Provider:       s.provider.Name(),
			Status:         StatusInitiated,
			AmountCents:    in.AmountCents,
			Currency:       in.Currency,
			IdempotencyKey: uuid.NewString(),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.db.WithContext(ctx).Create(payment).Error; err != nil {
			return CreateIntentResult{}, err
		}
	}

	// Phase-2: gateway call, outside any transaction.
	intent, perr := s.provider.CreatePaymentIntent(ctx, CreateIntentParams{
		AmountCents: in.AmountCents,
		Currency:    in.Currency,
		Metadata:    metadata,
	})

	// Phase-3: finalize the local record.
	if payment != nil {
		now := time.Now()
		updates := map[string]any{"updated_at": now}
		if perr != nil {
			msg := truncate(perr.Error(), 250)
			updates["status"] = StatusFailed
			updates["error_message"] = msg
		} else {
			updates["provider_ref"] = intent.ID
		}
		if err := s.db.WithContext(ctx).Model(&Payment{}).
			Where("id = ?", payment.ID).
			Updates(updates).Error; err != nil {
			return CreateIntentResult{}, err
		}
		if perr == nil {
			if err := s.db.WithContext(ctx).Model(&orders.Order{}).
				Where("id = ?", payment.OrderID).
				Updates(map[string]any{
					"payment_intent_id": intent.ID,
					"updated_at":        now,
				}).Error; err != nil {
				return CreateIntentResult{}, err
			}
		}
	}
	if perr != nil {
		return CreateIntentResult{}, fmt.Errorf("%w: %v", ErrGateway, perr)
	}

	return CreateIntentResult{PaymentIntentID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

func (s *Service) GetIntent(ctx context.Context, id string) (Intent, error) {
	intent, err := s.provider.GetPaymentIntent(ctx, id)
	if err != nil {
		return Intent{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	return intent, nil
}

type ConfirmInput struct {
	UserID          string
	OrderID         string
	PaymentIntentID string
}

type ConfirmResult struct {
	Order  orders.Order
	Intent Intent
	// JustPaid is true only on the call that performed the
	// pending -> paid transition; re-confirmations report false.
	JustPaid bool
}

// Confirm is the reconciliation step: the intent status is re-fetched from
// the gateway server-side and only a "succeeded" answer flips the order to
// confirmed/paid. The update is a conditional "set paid if not already
// paid", so confirming twice (or racing the webhook) is a safe no-op.
func (s *Service) Confirm(ctx context.Context, in ConfirmInput) (ConfirmResult, error) {
	ord, err := orders.NewRepo(s.db).GetForUser(ctx, in.OrderID, in.UserID)
	if err != nil {
		return ConfirmResult{}, err
	}

	intent, err := s.provider.GetPaymentIntent(ctx, in.PaymentIntentID)
	if err != nil {
		return ConfirmResult{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if err := verifyIntentForOrder(intent, ord); err != nil {
		return ConfirmResult{}, err
	}

	justPaid := false
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ord, "id = ?", ord.ID).Error; err != nil {
			return err
		}

		// idempotent: paid stays paid
		if ord.PaymentStatus == orders.PaymentPaid {
			return nil
		}

		paid, err := markOrderPaid(ctx, tx, &ord, in.PaymentIntentID)
		if err != nil {
			return err
		}
		justPaid = paid
		return finalizePaymentRow(ctx, tx, s.provider.Name(), in.PaymentIntentID)
	})
	if err != nil {
		return ConfirmResult{}, err
	}

	return ConfirmResult{Order: ord, Intent: intent, JustPaid: justPaid}, nil
}

// verifyIntentForOrder is the reconciliation gate: the intent must have
// succeeded at the gateway, carry the order's exact amount and currency,
// and, when it names an order in its metadata, name this one. A payment
// that does not cover the order never flips it.
func verifyIntentForOrder(intent Intent, ord orders.Order) error {
	if intent.Status != IntentSucceeded {
		return ErrPaymentNotCompleted
	}
	if intent.AmountCents != ord.TotalCents {
		return ErrPaymentNotCompleted
	}
	if intent.Currency != "" && !strings.EqualFold(intent.Currency, ord.Currency) {
		return ErrPaymentNotCompleted
	}
	if intent.OrderID != "" && intent.OrderID != ord.ID {
		return ErrPaymentNotCompleted
	}
	return nil
}

// paidUpdates builds the column set for the pending->paid flip. An order
// whose payment status cannot move to paid (already paid, refunded) gets an
// error instead; callers treat the already-paid case as a no-op before
// reaching this point.
func paidUpdates(ord orders.Order, method, intentID string, now time.Time) (map[string]any, error) {
	if _, err := ord.PaymentStatus.Transition(orders.PaymentPaid); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"payment_status":    orders.PaymentPaid,
		"payment_method":    method,
		"payment_intent_id": intentID,
		"paid_at":           now,
		"updated_at":        now,
	}
	if ord.Status.CanTransition(orders.StatusConfirmed) {
		updates["status"] = orders.StatusConfirmed
	}
	return updates, nil
}

// markOrderPaid performs the guarded pending->paid / pending->confirmed
// update. The WHERE clause re-checks payment_status so a concurrent webhook
// applying the same transition leaves exactly one winner.
func markOrderPaid(ctx context.Context, tx *gorm.DB, ord *orders.Order, intentID string) (bool, error) {
	now := time.Now()
	method := "card"
	updates, err := paidUpdates(*ord, method, intentID, now)
	if err != nil {
		return false, err
	}

	res := tx.WithContext(ctx).Model(&orders.Order{}).
		Where("id = ? AND payment_status = ?", ord.ID, orders.PaymentPending).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		// lost the race; the other path already applied it
		return false, nil
	}

	ord.PaymentStatus = orders.PaymentPaid
	if ord.Status.CanTransition(orders.StatusConfirmed) {
		ord.Status = orders.StatusConfirmed
	}
	ord.PaymentMethod = &method
	ord.PaymentIntentID = &intentID
	ord.PaidAt = &now
	ord.UpdatedAt = now

	if err := enqueueConfirmation(ctx, tx, ord); err != nil {
		return false, err
	}
	return true, nil
}

// enqueueConfirmation queues the confirmation email in the same transaction
// as the paid transition, so it goes out exactly once per order.
func enqueueConfirmation(ctx context.Context, tx *gorm.DB, ord *orders.Order) error {
	var u users.User
	if err := tx.WithContext(ctx).First(&u, "id = ?", ord.UserID).Error; err != nil {
		return err
	}
	total := money.Format(ord.Currency, ord.TotalCents)
	return email.EnqueueOrderConfirmation(ctx, tx, u.Email, u.FirstName, ord.OrderNumber, total)
}

func finalizePaymentRow(ctx context.Context, tx *gorm.DB, provider, intentID string) error {
	res := tx.WithContext(ctx).Model(&Payment{}).
		Where("provider = ? AND provider_ref = ? AND status <> ?", provider, intentID, StatusSucceeded).
		Updates(map[string]any{
			"status":        StatusSucceeded,
			"error_message": nil,
			"updated_at":    time.Now(),
		})
	return res.Error
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}

// IsNotFound lets handlers collapse order/payment lookups into a 404.
func IsNotFound(err error) bool {
	return errors.Is(err, orders.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
