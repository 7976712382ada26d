package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amanisrajpoot/youandonly-sub000/internal/shared/dbtx"
)

var ErrNotActionable = errors.New("order not actionable")

// AdminService drives the fulfillment lifecycle after payment: confirm ->
// processing -> shipped -> delivered, with cancel as the early exit. Every
// transition is validated against the status table and audited.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService { return &AdminService{db: db} }

type TransitionInput struct {
	OrderID     string
	ActorUserID string // admin user id
	Action      string // process|ship|deliver|cancel
	Note        string
}

func (s *AdminService) Transition(ctx context.Context, in TransitionInput) (Order, error) {
	if in.OrderID == "" || in.ActorUserID == "" || in.Action == "" {
		return Order{}, ErrNotActionable
	}

	var o Order
	err := dbtx.WithRetry(ctx, s.db, 3, func(tx *gorm.DB) error {
		// row lock
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&o, "id = ?", in.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		from := o.Status
		to, err := from.Transition(actionTarget(in.Action))
		if err != nil {
			return err
		}

		now := time.Now()
		if err := tx.WithContext(ctx).
			Model(&Order{}).
			Where("id = ? AND status = ?", o.ID, from). // optimistic guard
			Updates(map[string]any{
				"status":     to,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}
		o.Status = to
		o.UpdatedAt = now

		var notePtr *string
		if n := strings.TrimSpace(in.Note); n != "" {
			notePtr = &n
		}

		ev := OrderEvent{
			ID:          uuid.NewString(),
			OrderID:     o.ID,
			ActorUserID: in.ActorUserID,
			Action:      in.Action,
			FromStatus:  string(from),
			ToStatus:    string(to),
			Note:        notePtr,
			CreatedAt:   now,
		}
		return tx.WithContext(ctx).Create(&ev).Error
	})
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

func actionTarget(action string) Status {
	switch action {
	case "process":
		return StatusProcessing
	case "ship":
		return StatusShipped
	case "deliver":
		return StatusDelivered
	case "cancel":
		return StatusCancelled
	default:
		return Status(action) // validated by the transition table
	}
}
