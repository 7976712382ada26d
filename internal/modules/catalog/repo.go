package catalog

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("product not found")

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

type ListParams struct {
	Page     int
	PageSize int
}

type ListResult struct {
	Items []Product
	Total int64
}

func (r *Repo) List(ctx context.Context, in ListParams) (ListResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 20
	}

	q := r.db.WithContext(ctx).Model(&Product{}).Where("active = ?", true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListResult{}, err
	}

	var items []Product
	if err := q.
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&items).Error; err != nil {
		return ListResult{}, err
	}
	return ListResult{Items: items, Total: total}, nil
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).First(&p, "id = ? AND active = ?", id, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *Repo) Variants(ctx context.Context, productID string) ([]Variant, error) {
	var out []Variant
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("sku ASC").
		Find(&out).Error
	return out, err
}

// PriceLine is the current price of one (product, optional variant) pair.
type PriceLine struct {
	ProductID   string
	VariantID   string
	ProductName string
	SKU         string
	PriceCents  int64
	Currency    string
}

// CurrentPrices resolves the current catalog price for every requested
// product id inside the caller's transaction. Any id that does not resolve
// fails the whole lookup; order creation is all-or-nothing.
func CurrentPrices(ctx context.Context, tx *gorm.DB, productIDs []string) (map[string]PriceLine, error) {
	if len(productIDs) == 0 {
		return map[string]PriceLine{}, nil
	}

	ids := dedupe(productIDs)

	var products []Product
	if err := tx.WithContext(ctx).
		Where("id IN ? AND active = ?", ids, true).
		Order("id ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}

	out := make(map[string]PriceLine, len(products))
	for _, p := range products {
		out[p.ID] = PriceLine{
			ProductID:   p.ID,
			ProductName: p.Name,
			PriceCents:  p.PriceCents,
			Currency:    p.Currency,
		}
	}
	for _, id := range ids {
		if _, ok := out[id]; !ok {
			return nil, ErrNotFound
		}
	}
	return out, nil
}

// VariantPrice overrides the product price when the line targets a variant.
func VariantPrice(ctx context.Context, tx *gorm.DB, variantID string) (PriceLine, error) {
	var v Variant
	if err := tx.WithContext(ctx).First(&v, "id = ?", variantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PriceLine{}, ErrNotFound
		}
		return PriceLine{}, err
	}
	return PriceLine{
		ProductID:  v.ProductID,
		VariantID:  v.ID,
		SKU:        v.SKU,
		PriceCents: v.PriceCents,
		Currency:   v.Currency,
	}, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
