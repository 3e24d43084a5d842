package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stockroom/internal/models"
)

// GORMInventoryRepository is a GORM implementation of InventoryRepository.
type GORMInventoryRepository struct {
	db *gorm.DB
}

// NewGORMInventoryRepository creates a new instance of GORMInventoryRepository.
func NewGORMInventoryRepository(db *gorm.DB) *GORMInventoryRepository {
	return &GORMInventoryRepository{
		db: db,
	}
}

var inventoryOrderings = map[string]string{
	"entry_date": "inventories.entry_date",
	"quantity":   "inventories.quantity",
	"unit_cost":  "inventories.unit_cost",
}

// List retrieves receipts matching the filter, newest first by default.
func (r *GORMInventoryRepository) List(filter InventoryFilter) ([]models.Inventory, error) {
	query := r.db.Model(&models.Inventory{}).Preload("Product.Category")

	if filter.ProductID != "" {
		query = query.Where("inventories.product_id = ?", filter.ProductID)
	}
	if filter.EntryDate != nil {
		query = query.Where("inventories.entry_date = ?", *filter.EntryDate)
	}
	if filter.Search != "" {
		needle := "%" + strings.ToLower(filter.Search) + "%"
		query = query.
			Select("inventories.*").
			Joins("JOIN products ON products.id = inventories.product_id").
			Where("LOWER(products.name) LIKE ?", needle)
	}

	order, err := orderClause(filter.Ordering, inventoryOrderings, "inventories.entry_date DESC")
	if err != nil {
		return nil, err
	}

	var entries []models.Inventory
	if err := query.Order(order).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list inventory entries: %w", err)
	}
	return entries, nil
}

// GetByID retrieves a single receipt with its product and category loaded.
func (r *GORMInventoryRepository) GetByID(id string) (*models.Inventory, error) {
	var entry models.Inventory
	if err := r.db.Preload("Product.Category").First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("inventory entry %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get inventory entry %s: %w", id, err)
	}
	return &entry, nil
}

// Create inserts the receipt and applies the stock increment atomically. Both
// writes commit together or not at all; a receipt must never exist without its
// increment having been applied.
func (r *GORMInventoryRepository) Create(entry *models.Inventory) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Product").Create(entry).Error; err != nil {
			return fmt.Errorf("failed to create inventory entry: %w", err)
		}
		res := tx.Model(&models.Product{}).
			Where("id = ?", entry.ProductID).
			UpdateColumn("current_stock", gorm.Expr("current_stock + ?", entry.Quantity))
		if res.Error != nil {
			return fmt.Errorf("failed to increment stock for product %s: %w", entry.ProductID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product %s: %w", entry.ProductID, ErrNotFound)
		}
		return nil
	})
	return err
}

// Update saves quantity and unit cost of an existing receipt. Entry date and
// product stock are left untouched.
func (r *GORMInventoryRepository) Update(entry *models.Inventory) error {
	res := r.db.Model(&models.Inventory{}).
		Where("id = ?", entry.ID).
		Updates(map[string]interface{}{
			"product_id": entry.ProductID,
			"quantity":   entry.Quantity,
			"unit_cost":  entry.UnitCost,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update inventory entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("inventory entry %s: %w", entry.ID, ErrNotFound)
	}
	return nil
}

// Delete removes the receipt without touching the product's stock.
func (r *GORMInventoryRepository) Delete(id string) error {
	res := r.db.Delete(&models.Inventory{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete inventory entry %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("inventory entry %s: %w", id, ErrNotFound)
	}
	return nil
}
