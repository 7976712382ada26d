package email

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amanisrajpoot/youandonly-sub000/internal/mailer"
)

const maxAttempts = 5

// Dispatcher drains the outbox in the background. One instance per process;
// row locks keep concurrent instances from double-sending.
type Dispatcher struct {
	db       *gorm.DB
	mailer   mailer.Service
	from     string
	fromName string
	logger   *slog.Logger
	interval time.Duration
}

func NewDispatcher(db *gorm.DB, m mailer.Service, from, fromName string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		db:       db,
		mailer:   m,
		from:     from,
		fromName: fromName,
		logger:   logger,
		interval: 5 * time.Second,
	}
}

// Run blocks until ctx is done.
func (d *Dispatcher) Run(ctx context.Context) {
	t := time.NewTicker(d.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := d.drain(ctx); err != nil {
				d.logger.LogAttrs(ctx, slog.LevelError, "email dispatch pass failed",
					slog.String("error", err.Error()))
			}
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context) error {
	for {
		sent, err := d.sendOne(ctx)
		if err != nil {
			return err
		}
		if !sent {
			return nil
		}
	}
}

// sendOne claims the oldest pending row under a lock, sends it, and records
// the result. Returns false when the outbox is empty.
func (d *Dispatcher) sendOne(ctx context.Context) (bool, error) {
	var row Outbox

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("status = ? AND attempts < ?", OutboxPending, maxAttempts).
			Order("created_at").
			First(&row).Error
		if err != nil {
			return err
		}

		now := time.Now()
		e := mailer.Email{
			From:     d.from,
			FromName: d.fromName,
			To:       []string{row.To},
			Subject:  row.Subject,
			TextBody: row.TextBody,
			HTMLBody: row.HTMLBody,
		}

		upd := map[string]any{
			"attempts":   row.Attempts + 1,
			"updated_at": now,
		}

		if serr := d.mailer.Send(ctx, e); serr != nil {
			msg := serr.Error()
			if len(msg) > 250 {
				msg = msg[:250]
			}
			upd["last_error"] = msg
			if row.Attempts+1 >= maxAttempts {
				upd["status"] = OutboxFailed
			}
			d.logger.LogAttrs(ctx, slog.LevelWarn, "email send failed",
				slog.String("outbox_id", row.ID),
				slog.Int("attempt", row.Attempts+1),
				slog.String("error", serr.Error()))
		} else {
			upd["status"] = OutboxSent
			upd["sent_at"] = &now
			upd["last_error"] = nil
		}

		return tx.WithContext(ctx).Model(&Outbox{}).Where("id = ?", row.ID).Updates(upd).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
