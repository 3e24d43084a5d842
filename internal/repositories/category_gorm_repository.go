package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stockroom/internal/models"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

var categoryOrderings = map[string]string{
	"name": "name",
}

// List retrieves categories matching the filter, ordered by name by default.
func (r *GORMCategoryRepository) List(filter CategoryFilter) ([]models.Category, error) {
	query := r.db.Model(&models.Category{})

	if filter.Search != "" {
		needle := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}

	order, err := orderClause(filter.Ordering, categoryOrderings, "name ASC")
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := query.Order(order).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a single category by its ID.
func (r *GORMCategoryRepository) GetByID(id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category %s: %w", id, err)
	}
	return &category, nil
}

// Create inserts a new category, assigning an ID if none is set.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if err := r.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("category name %q: %w", category.Name, ErrDuplicate)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Update saves all fields of an existing category.
func (r *GORMCategoryRepository) Update(category *models.Category) error {
	res := r.db.Save(category)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("category name %q: %w", category.Name, ErrDuplicate)
		}
		return fmt.Errorf("failed to update category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category %s: %w", category.ID, ErrNotFound)
	}
	return nil
}

// Delete removes the category and cascades to its products and their
// inventory entries in one transaction. The cascade is explicit rather than
// left to the database so it behaves the same on every backend.
func (r *GORMCategoryRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var productIDs []string
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).
			Pluck("id", &productIDs).Error; err != nil {
			return fmt.Errorf("failed to collect products for category %s: %w", id, err)
		}

		if len(productIDs) > 0 {
			if err := tx.Where("product_id IN ?", productIDs).
				Delete(&models.Inventory{}).Error; err != nil {
				return fmt.Errorf("failed to cascade inventory for category %s: %w", id, err)
			}
			if err := tx.Where("category_id = ?", id).
				Delete(&models.Product{}).Error; err != nil {
				return fmt.Errorf("failed to cascade products for category %s: %w", id, err)
			}
		}

		res := tx.Delete(&models.Category{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete category %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("category %s: %w", id, ErrNotFound)
		}
		return nil
	})
}
