package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/orders"
)

// WebhookService applies verified gateway events. It is the authoritative
// reconciliation path for flows the synchronous confirm call never finished
// (browser closed mid-checkout); the same guarded updates make it safe to
// run concurrently with confirm.
type WebhookService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewWebhookService(db *gorm.DB, logger *slog.Logger) *WebhookService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookService{db: db, logger: logger}
}

// Handle persists the event for dedupe and applies it. A redelivered event
// (unique provider+event_id hit) and an unrecognized event type both return
// nil so the gateway gets its 200 and stops retrying.
func (s *WebhookService) Handle(ctx context.Context, providerName string, ev WebhookEvent, rawBody []byte) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		pe := ProviderEvent{
			ID:          uuid.NewString(),
			Provider:    providerName,
			EventID:     ev.EventID,
			EventType:   ev.Type,
			PayloadJSON: datatypes.JSON(rawBody),
			ReceivedAt:  now,
		}

		if err := tx.WithContext(ctx).Create(&pe).Error; err != nil {
			if isDup(err) {
				s.logger.InfoContext(ctx, "webhook event deduplicated",
					"provider", providerName, "event_id", ev.EventID, "type", ev.Type)
				return nil
			}
			return err
		}

		var applyErr error
		switch ev.Type {
		case EventPaymentSucceeded:
			applyErr = s.applyPaymentSucceeded(ctx, tx, providerName, ev)
		case EventPaymentFailed:
			applyErr = s.applyPaymentFailed(ctx, tx, providerName, ev)
		case EventRefundSucceeded:
			applyErr = s.applyRefundSucceeded(ctx, tx, providerName, ev)
		case EventRefundFailed:
			applyErr = s.applyRefundFailed(ctx, tx, providerName, ev)
		default:
			s.logger.InfoContext(ctx, "webhook event ignored",
				"provider", providerName, "event_id", ev.EventID, "type", ev.Type)
		}

		if applyErr != nil {
			msg := truncate(applyErr.Error(), 250)
			if err := tx.WithContext(ctx).Model(&ProviderEvent{}).
				Where("id = ?", pe.ID).
				Updates(map[string]any{"process_error": msg}).Error; err != nil {
				return err
			}
			s.logger.ErrorContext(ctx, "webhook event apply failed",
				"provider", providerName, "event_id", ev.EventID, "type", ev.Type, "error", msg)
			// propagate so we answer 500 and the provider retries
			return applyErr
		}

		processed := now
		return tx.WithContext(ctx).Model(&ProviderEvent{}).
			Where("id = ?", pe.ID).
			Updates(map[string]any{"processed_at": &processed, "process_error": nil}).Error
	})
}

func (s *WebhookService) applyPaymentSucceeded(ctx context.Context, tx *gorm.DB, provider string, ev WebhookEvent) error {
	ord, err := s.findOrderForIntent(ctx, tx, provider, ev)
	if err != nil {
		return err
	}

	if ord.PaymentStatus == orders.PaymentPaid {
		return nil // confirm already won
	}
	if ev.AmountCents > 0 && ev.AmountCents != ord.TotalCents {
		return fmt.Errorf("event amount %d does not cover order total %d", ev.AmountCents, ord.TotalCents)
	}
	if ev.Currency != "" && !strings.EqualFold(ev.Currency, ord.Currency) {
		return fmt.Errorf("event currency %s does not match order currency %s", ev.Currency, ord.Currency)
	}
	if _, err := markOrderPaid(ctx, tx, &ord, ev.IntentID); err != nil {
		return err
	}
	return finalizePaymentRow(ctx, tx, provider, ev.IntentID)
}

func (s *WebhookService) applyPaymentFailed(ctx context.Context, tx *gorm.DB, provider string, ev WebhookEvent) error {
	if ev.IntentID == "" {
		return errors.New("missing payment intent id")
	}

	res := tx.WithContext(ctx).Model(&Payment{}).
		Where("provider = ? AND provider_ref = ? AND status = ?", provider, ev.IntentID, StatusInitiated).
		Updates(map[string]any{
			"status":        StatusFailed,
			"error_message": "provider webhook: failed",
			"updated_at":    time.Now(),
		})
	return res.Error
}

func (s *WebhookService) applyRefundSucceeded(ctx context.Context, tx *gorm.DB, provider string, ev WebhookEvent) error {
	if ev.RefundID == "" {
		return errors.New("missing refund id")
	}

	var r Refund
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&r, "provider = ? AND provider_ref = ?", provider, ev.RefundID).Error; err != nil {
		return err // not found yet: provider retries
	}
	if r.Status == StatusSucceeded {
		return nil
	}

	now := time.Now()
	if err := tx.WithContext(ctx).Model(&Refund{}).
		Where("id = ?", r.ID).
		Updates(map[string]any{
			"status":        StatusSucceeded,
			"error_message": nil,
			"updated_at":    now,
		}).Error; err != nil {
		return err
	}
	return applyRefundToOrder(ctx, tx, r.OrderID, r.AmountCents)
}

func (s *WebhookService) applyRefundFailed(ctx context.Context, tx *gorm.DB, provider string, ev WebhookEvent) error {
	if ev.RefundID == "" {
		return errors.New("missing refund id")
	}

	res := tx.WithContext(ctx).Model(&Refund{}).
		Where("provider = ? AND provider_ref = ? AND status <> ?", provider, ev.RefundID, StatusFailed).
		Updates(map[string]any{
			"status":        StatusFailed,
			"error_message": "provider webhook: failed",
			"updated_at":    time.Now(),
		})
	return res.Error
}

// findOrderForIntent resolves the order either from the event metadata or
// from the payments row recorded at intent creation.
func (s *WebhookService) findOrderForIntent(ctx context.Context, tx *gorm.DB, provider string, ev WebhookEvent) (orders.Order, error) {
	if ev.IntentID == "" {
		return orders.Order{}, errors.New("missing payment intent id")
	}

	orderID := ev.OrderID
	if orderID == "" {
		var p Payment
		if err := tx.WithContext(ctx).
			First(&p, "provider = ? AND provider_ref = ?", provider, ev.IntentID).Error; err != nil {
			return orders.Order{}, err
		}
		orderID = p.OrderID
	}

	var ord orders.Order
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ord, "id = ?", orderID).Error; err != nil {
		return orders.Order{}, err
	}
	return ord, nil
}

func isDup(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
