package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. Every product belongs to exactly one category;
// deleting the category removes its products (and their inventory entries).
type Product struct {
	ID           string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name         string          `json:"name" gorm:"type:varchar(200);not null"`
	CategoryID   string          `json:"category_id" gorm:"type:varchar(36);not null;index"`
	Category     Category        `json:"category" gorm:"constraint:OnDelete:CASCADE"`
	Size         string          `json:"size" gorm:"type:varchar(50)"`
	Description  string          `json:"description" gorm:"type:text"`
	UnitPrice    decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	CurrentStock int             `json:"current_stock" gorm:"not null;default:0"`
	CreatedAt    time.Time       `json:"-"`
	UpdatedAt    time.Time       `json:"-"`
}
