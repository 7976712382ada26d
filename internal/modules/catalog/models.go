package catalog

import "time"

// Catalog is a collaborator of the order workflow: orders read the current
// price here at creation time and freeze it onto the order line.

type Product struct {
	ID         string    `gorm:"type:char(36);primaryKey"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Slug       string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_products_slug"`
	PriceCents int64     `gorm:"not null"`
	Currency   string    `gorm:"type:char(3);not null;default:USD"`
	Active     bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt  time.Time `gorm:"type:datetime(3);not null"`
}

func (Product) TableName() string { return "products" }

type Variant struct {
	ID         string    `gorm:"type:char(36);primaryKey"`
	ProductID  string    `gorm:"type:char(36);not null;index:ix_product_variants_product_id"`
	SKU        string    `gorm:"type:varchar(64);not null;uniqueIndex:ux_product_variants_sku"`
	PriceCents int64     `gorm:"not null"`
	Currency   string    `gorm:"type:char(3);not null;default:USD"`
	Stock      int       `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt  time.Time `gorm:"type:datetime(3);not null"`
}

func (Variant) TableName() string { return "product_variants" }
