package services

import (
	"errors"

	"stockroom/internal/models"
	"stockroom/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo         repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, categoryRepo repositories.CategoryRepository) *ProductService {
	return &ProductService{
		repo:         repo,
		categoryRepo: categoryRepo,
	}
}

// ListProducts retrieves products matching the filter, categories included.
func (s *ProductService) ListProducts(filter repositories.ProductFilter) ([]models.Product, error) {
	products, err := s.repo.List(filter)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidOrdering) {
			return nil, NewValidationError("ordering", err.Error())
		}
		return nil, err
	}
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product after confirming the referenced
// category exists. Returns the stored product with its category loaded.
func (s *ProductService) CreateProduct(product *models.Product) (*models.Product, error) {
	if err := s.checkCategory(product.CategoryID); err != nil {
		return nil, err
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return s.repo.GetByID(product.ID)
}

// UpdateProduct updates an existing product, re-checking the category
// reference since it may have been changed.
func (s *ProductService) UpdateProduct(product *models.Product) (*models.Product, error) {
	if err := s.checkCategory(product.CategoryID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return s.repo.GetByID(product.ID)
}

// DeleteProduct deletes a product and its inventory entries.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}

// checkCategory turns a dangling category reference into a field-level
// validation error instead of a foreign-key failure at commit time.
func (s *ProductService) checkCategory(categoryID string) error {
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NewValidationError("category_id", "category does not exist")
		}
		return err
	}
	return nil
}
