package repositories

import (
	"time"

	"stockroom/internal/models"
)

// InventoryFilter narrows and orders an inventory listing. EntryDate matches
// the calendar date a receipt was recorded on.
type InventoryFilter struct {
	ProductID string
	EntryDate *time.Time
	Search    string
	Ordering  string
}

// InventoryRepository defines the interface for stock-receipt data access.
// Reads return entries with the product (and its category) loaded.
type InventoryRepository interface {
	List(filter InventoryFilter) ([]models.Inventory, error)
	GetByID(id string) (*models.Inventory, error)
	// Create inserts the receipt and increments the referenced product's
	// current stock in the same transaction. The increment is a single
	// arithmetic UPDATE at the store, so concurrent receipts against one
	// product serialize there instead of racing in application memory.
	Create(entry *models.Inventory) error
	Update(entry *models.Inventory) error
	// Delete removes the receipt. It never decrements product stock: receipts
	// are append-only audit records.
	Delete(id string) error
}
