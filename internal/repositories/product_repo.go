package repositories

import (
	"stockroom/internal/models"
)

// ProductFilter narrows and orders a product listing.
type ProductFilter struct {
	CategoryID   string
	CurrentStock *int
	Search       string
	Ordering     string
}

// ProductRepository defines the interface for product data access. Reads
// return products with their category loaded.
type ProductRepository interface {
	List(filter ProductFilter) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	// Delete removes the product together with its inventory entries.
	Delete(id string) error
}
