package repositories

import (
	"stockroom/internal/models"
)

// CategoryFilter narrows and orders a category listing. Ordering accepts a
// whitelisted column name, "-" prefixed for descending.
type CategoryFilter struct {
	Search   string
	Ordering string
}

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	List(filter CategoryFilter) ([]models.Category, error)
	GetByID(id string) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	// Delete removes the category and, in the same transaction, every product
	// referencing it and their inventory entries.
	Delete(id string) error
}
