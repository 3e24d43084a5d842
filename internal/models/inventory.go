package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory is a stock-receipt record. Creating one increments the referenced
// product's current stock; receipts are append-only, so editing or deleting a
// record never adjusts the stock back.
type Inventory struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string          `json:"product_id" gorm:"type:varchar(36);not null;index"`
	Product   Product         `json:"product" gorm:"constraint:OnDelete:CASCADE"`
	EntryDate time.Time       `json:"entry_date" gorm:"type:date;not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	UnitCost  decimal.Decimal `json:"unit_cost" gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}
