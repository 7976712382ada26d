package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/catalog"
	"github.com/amanisrajpoot/youandonly-sub000/internal/shared/dbtx"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

type LineInput struct {
	ProductID string
	VariantID string // optional
	Quantity  int
}

type CreateOrderInput struct {
	UserID              string
	Lines               []LineInput
	ShippingAddressJSON []byte
	BillingAddressJSON  []byte
	Notes               string
}

// CreateOrder converts a cart snapshot into a persisted order. Prices are
// looked up from the catalog inside the transaction and frozen onto the
// lines; an unknown product or variant rolls the whole creation back, so no
// order row, item or order number survives a partial failure.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (Order, []OrderItem, error) {
	if in.UserID == "" {
		return Order{}, nil, ErrNotFound
	}
	if len(in.Lines) == 0 {
		return Order{}, nil, ErrCartEmpty
	}

	var o Order
	var items []OrderItem

	err := dbtx.WithRetry(ctx, s.db, 3, func(tx *gorm.DB) error {
		productIDs := make([]string, 0, len(in.Lines))
		for _, ln := range in.Lines {
			productIDs = append(productIDs, ln.ProductID)
		}

		prices, err := catalog.CurrentPrices(ctx, tx, productIDs)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return ErrProductUnavailable
			}
			return err
		}

		variants := make(map[string]catalog.PriceLine)
		for _, ln := range in.Lines {
			if ln.VariantID == "" {
				continue
			}
			if _, ok := variants[ln.VariantID]; ok {
				continue
			}
			vp, err := catalog.VariantPrice(ctx, tx, ln.VariantID)
			if err != nil {
				if errors.Is(err, catalog.ErrNotFound) {
					return ErrProductUnavailable
				}
				return err
			}
			variants[ln.VariantID] = vp
		}

		now := time.Now()
		orderID := uuid.NewString()

		built, subtotal, currency, err := buildOrderItems(orderID, in.Lines, prices, variants, now)
		if err != nil {
			return err
		}
		items = built

		totals := ComputeTotals(subtotal)

		var notes *string
		if in.Notes != "" {
			n := in.Notes
			notes = &n
		}

		o = Order{
			ID:                  orderID,
			OrderNumber:         NewOrderNumber(),
			UserID:              in.UserID,
			SubtotalCents:       totals.SubtotalCents,
			TaxCents:            totals.TaxCents,
			ShippingCents:       totals.ShippingCents,
			TotalCents:          totals.TotalCents,
			Currency:            currency,
			Status:              StatusPending,
			PaymentStatus:       PaymentPending,
			ShippingAddressJSON: datatypes.JSON(in.ShippingAddressJSON),
			BillingAddressJSON:  datatypes.JSON(in.BillingAddressJSON),
			Notes:               notes,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := tx.WithContext(ctx).Create(&o).Error; err != nil {
			return err
		}
		return tx.WithContext(ctx).Create(&items).Error
	})
	if err != nil {
		return Order{}, nil, err
	}
	return o, items, nil
}

// buildOrderItems freezes the given price snapshot onto the order lines and
// sums the subtotal. A line whose product is missing from the snapshot, or
// whose variant does not belong to its product, fails the whole build; mixed
// currencies do too.
func buildOrderItems(orderID string, lines []LineInput, prices, variants map[string]catalog.PriceLine, now time.Time) ([]OrderItem, int64, string, error) {
	items := make([]OrderItem, 0, len(lines))
	currency := ""
	var subtotal int64

	for _, ln := range lines {
		qty := ln.Quantity
		if qty < 1 {
			qty = 1
		}

		price, ok := prices[ln.ProductID]
		if !ok {
			return nil, 0, "", ErrProductUnavailable
		}

		var variantID *string
		if ln.VariantID != "" {
			vp, ok := variants[ln.VariantID]
			if !ok || vp.ProductID != ln.ProductID {
				return nil, 0, "", ErrProductUnavailable
			}
			price.PriceCents = vp.PriceCents
			price.Currency = vp.Currency
			price.SKU = vp.SKU
			v := ln.VariantID
			variantID = &v
		}

		if currency == "" {
			currency = price.Currency
		} else if currency != price.Currency {
			return nil, 0, "", ErrCurrencyMismatch
		}

		lineTotal := price.PriceCents * int64(qty)
		subtotal += lineTotal

		items = append(items, OrderItem{
			ID:             uuid.NewString(),
			OrderID:        orderID,
			ProductID:      ln.ProductID,
			VariantID:      variantID,
			ProductName:    price.ProductName,
			SKU:            price.SKU,
			UnitPriceCents: price.PriceCents,
			Quantity:       qty,
			LineTotalCents: lineTotal,
			Currency:       price.Currency,
			CreatedAt:      now,
		})
	}
	return items, subtotal, currency, nil
}
