package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"stockroom/internal/models"
	"stockroom/internal/repositories"
	"stockroom/internal/services"
)

// InventoryHandler handles HTTP requests for stock receipts. Unlike the
// catalog resources, reads require authentication too.
type InventoryHandler struct {
	service  *services.InventoryService
	validate *validator.Validate
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(service *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes wires inventory routes; reads require authentication too.
func (h *InventoryHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/inventory", auth, h.HandleList)
	router.Get("/inventory/:id", auth, h.HandleGet)
	router.Post("/inventory", auth, h.HandleCreate)
	router.Put("/inventory/:id", auth, h.HandleUpdate)
	router.Patch("/inventory/:id", auth, h.HandlePatch)
	router.Delete("/inventory/:id", auth, h.HandleDelete)
}

// InventoryRequest is the flat write shape. entry_date is not accepted here:
// the server assigns it and ignores any client-supplied value.
type InventoryRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  int              `json:"quantity" validate:"required,min=1"`
	UnitCost  *decimal.Decimal `json:"unit_cost" validate:"required"`
}

// InventoryPatch is the partial-update shape; absent fields stay unchanged.
type InventoryPatch struct {
	ProductID *string          `json:"product_id" validate:"omitempty,min=1"`
	Quantity  *int             `json:"quantity" validate:"omitempty,min=1"`
	UnitCost  *decimal.Decimal `json:"unit_cost"`
}

// InventoryResponse is the nested read shape: the full product (with its
// category) is embedded and entry_date renders as a calendar date.
type InventoryResponse struct {
	ID        string          `json:"id"`
	Product   ProductResponse `json:"product"`
	EntryDate string          `json:"entry_date"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

func newInventoryResponse(entry *models.Inventory) InventoryResponse {
	return InventoryResponse{
		ID:        entry.ID,
		Product:   newProductResponse(&entry.Product),
		EntryDate: entry.EntryDate.Format("2006-01-02"),
		Quantity:  entry.Quantity,
		UnitCost:  entry.UnitCost,
	}
}

func (h *InventoryHandler) validateRequest(req *InventoryRequest) map[string]string {
	fields := make(map[string]string)
	if err := h.validate.Struct(req); err != nil {
		fields = validationMessages(err)
	}
	if req.UnitCost != nil && req.UnitCost.IsNegative() {
		fields["unit_cost"] = "unit_cost must not be negative"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// HandleList retrieves receipts, newest first. Supports ?product=,
// ?entry_date=, ?search= (product name) and ?ordering=.
func (h *InventoryHandler) HandleList(c *fiber.Ctx) error {
	filter := repositories.InventoryFilter{
		ProductID: c.Query("product"),
		Search:    c.Query("search"),
		Ordering:  c.Query("ordering"),
	}
	if raw := c.Query("entry_date"); raw != "" {
		date, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			return badRequest(c, map[string]string{"entry_date": "must be a date in YYYY-MM-DD format"})
		}
		filter.EntryDate = &date
	}

	entries, err := h.service.ListEntries(filter)
	if err != nil {
		return respondError(c, err)
	}

	responses := make([]InventoryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, newInventoryResponse(&entries[i]))
	}
	return c.JSON(responses)
}

// HandleGet retrieves a single receipt.
func (h *InventoryHandler) HandleGet(c *fiber.Ctx) error {
	entry, err := h.service.GetEntryByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newInventoryResponse(entry))
}

// HandleCreate records a stock receipt and increments the product's stock.
func (h *InventoryHandler) HandleCreate(c *fiber.Ctx) error {
	var req InventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, map[string]string{"body": "Invalid request body"})
	}
	if fields := h.validateRequest(&req); fields != nil {
		return badRequest(c, fields)
	}

	entry := models.Inventory{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitCost:  *req.UnitCost,
	}
	stored, err := h.service.CreateEntry(&entry)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newInventoryResponse(stored))
}

// HandleUpdate replaces the writable fields of a receipt. The entry date is
// immutable and the stock increment is never re-applied.
func (h *InventoryHandler) HandleUpdate(c *fiber.Ctx) error {
	entry, err := h.service.GetEntryByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	var req InventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, map[string]string{"body": "Invalid request body"})
	}
	if fields := h.validateRequest(&req); fields != nil {
		return badRequest(c, fields)
	}

	entry.ProductID = req.ProductID
	entry.Quantity = req.Quantity
	entry.UnitCost = *req.UnitCost

	stored, err := h.service.UpdateEntry(entry)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newInventoryResponse(stored))
}

// HandlePatch applies a partial update to a receipt.
func (h *InventoryHandler) HandlePatch(c *fiber.Ctx) error {
	entry, err := h.service.GetEntryByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	var patch InventoryPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, map[string]string{"body": "Invalid request body"})
	}
	if err := h.validate.Struct(patch); err != nil {
		return badRequest(c, validationMessages(err))
	}
	if patch.UnitCost != nil && patch.UnitCost.IsNegative() {
		return badRequest(c, map[string]string{"unit_cost": "unit_cost must not be negative"})
	}

	if patch.ProductID != nil {
		entry.ProductID = *patch.ProductID
	}
	if patch.Quantity != nil {
		entry.Quantity = *patch.Quantity
	}
	if patch.UnitCost != nil {
		entry.UnitCost = *patch.UnitCost
	}

	stored, err := h.service.UpdateEntry(entry)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newInventoryResponse(stored))
}

// HandleDelete removes a receipt. The product's stock is not decremented.
func (h *InventoryHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.DeleteEntry(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
