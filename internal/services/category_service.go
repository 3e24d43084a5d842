package services

import (
	"errors"

	"stockroom/internal/models"
	"stockroom/internal/repositories"
)

// CategoryService handles business logic for product categories.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{
		repo: repo,
	}
}

// ListCategories retrieves categories matching the filter.
func (s *CategoryService) ListCategories(filter repositories.CategoryFilter) ([]models.Category, error) {
	categories, err := s.repo.List(filter)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidOrdering) {
			return nil, NewValidationError("ordering", err.Error())
		}
		return nil, err
	}
	return categories, nil
}

// GetCategoryByID retrieves a single category by its ID.
func (s *CategoryService) GetCategoryByID(id string) (*models.Category, error) {
	return s.repo.GetByID(id)
}

// CreateCategory creates a new category. A taken name is a validation error,
// not a server fault.
func (s *CategoryService) CreateCategory(category *models.Category) error {
	if err := s.repo.Create(category); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return NewValidationError("name", "category with this name already exists")
		}
		return err
	}
	return nil
}

// UpdateCategory updates an existing category.
func (s *CategoryService) UpdateCategory(category *models.Category) error {
	if err := s.repo.Update(category); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return NewValidationError("name", "category with this name already exists")
		}
		return err
	}
	return nil
}

// DeleteCategory removes a category along with its products and their
// inventory entries.
func (s *CategoryService) DeleteCategory(id string) error {
	return s.repo.Delete(id)
}
