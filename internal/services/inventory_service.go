package services

import (
	"errors"
	"log"
	"time"

	"stockroom/internal/models"
	"stockroom/internal/repositories"
)

// StockEventPublisher publishes a stock-movement event after a receipt is
// recorded. Implemented by pkg/rabbitmq; nil disables publishing.
type StockEventPublisher interface {
	PublishStockMovement(event map[string]interface{}) error
}

// InventoryService handles business logic for stock receipts.
type InventoryService struct {
	repo        repositories.InventoryRepository
	productRepo repositories.ProductRepository
	publisher   StockEventPublisher
}

// NewInventoryService creates a new InventoryService. publisher may be nil.
func NewInventoryService(repo repositories.InventoryRepository, productRepo repositories.ProductRepository, publisher StockEventPublisher) *InventoryService {
	return &InventoryService{
		repo:        repo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// ListEntries retrieves receipts matching the filter.
func (s *InventoryService) ListEntries(filter repositories.InventoryFilter) ([]models.Inventory, error) {
	entries, err := s.repo.List(filter)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidOrdering) {
			return nil, NewValidationError("ordering", err.Error())
		}
		return nil, err
	}
	return entries, nil
}

// GetEntryByID retrieves a single receipt by its ID.
func (s *InventoryService) GetEntryByID(id string) (*models.Inventory, error) {
	return s.repo.GetByID(id)
}

// CreateEntry records a stock receipt. The entry date is always assigned by
// the server, and the repository increments the product's stock in the same
// transaction as the insert. The stock-movement event goes out only after a
// successful commit.
func (s *InventoryService) CreateEntry(entry *models.Inventory) (*models.Inventory, error) {
	if _, err := s.productRepo.GetByID(entry.ProductID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewValidationError("product_id", "product does not exist")
		}
		return nil, err
	}

	entry.EntryDate = today()

	if err := s.repo.Create(entry); err != nil {
		return nil, err
	}

	stored, err := s.repo.GetByID(entry.ID)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		event := map[string]interface{}{
			"entry_id":   stored.ID,
			"product_id": stored.ProductID,
			"quantity":   stored.Quantity,
			"unit_cost":  stored.UnitCost.String(),
			"entry_date": stored.EntryDate.Format("2006-01-02"),
		}
		if err := s.publisher.PublishStockMovement(event); err != nil {
			// The receipt is committed; a lost event is not worth failing the request.
			log.Printf("Failed to publish stock movement for entry %s: %v", stored.ID, err)
		}
	}

	return stored, nil
}

// UpdateEntry updates quantity and unit cost of an existing receipt. The
// entry date stays as assigned at creation and the product's stock is never
// re-adjusted: the increment happens exactly once, on creation.
func (s *InventoryService) UpdateEntry(entry *models.Inventory) (*models.Inventory, error) {
	if _, err := s.productRepo.GetByID(entry.ProductID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewValidationError("product_id", "product does not exist")
		}
		return nil, err
	}
	if err := s.repo.Update(entry); err != nil {
		return nil, err
	}
	return s.repo.GetByID(entry.ID)
}

// DeleteEntry removes a receipt. Deliberately does not reverse the stock
// increment; receipts are an append-only audit trail.
func (s *InventoryService) DeleteEntry(id string) error {
	return s.repo.Delete(id)
}

// today returns the current calendar date in UTC, time part zeroed, so
// entry_date equality filters behave as date comparisons.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
