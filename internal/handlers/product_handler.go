package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"stockroom/internal/models"
	"stockroom/internal/repositories"
	"stockroom/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes wires product routes: reads are public, writes go through
// the auth middleware.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/products", h.HandleList)
	router.Get("/products/:id", h.HandleGet)
	router.Post("/products", auth, h.HandleCreate)
	router.Put("/products/:id", auth, h.HandleUpdate)
	router.Patch("/products/:id", auth, h.HandlePatch)
	router.Delete("/products/:id", auth, h.HandleDelete)
}

// ProductRequest is the flat write shape: the category is referenced by ID,
// never nested.
type ProductRequest struct {
	Name         string           `json:"name" validate:"required,max=200"`
	CategoryID   string           `json:"category_id" validate:"required"`
	Size         string           `json:"size" validate:"omitempty,max=50"`
	Description  string           `json:"description"`
	UnitPrice    *decimal.Decimal `json:"unit_price" validate:"required"`
	CurrentStock int              `json:"current_stock" validate:"gte=0"`
}

// ProductPatch is the partial-update shape; absent fields stay unchanged.
type ProductPatch struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	CategoryID   *string          `json:"category_id" validate:"omitempty,min=1"`
	Size         *string          `json:"size" validate:"omitempty,max=50"`
	Description  *string          `json:"description"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	CurrentStock *int             `json:"current_stock" validate:"omitempty,gte=0"`
}

// ProductResponse is the nested read shape: the full category object is
// embedded and the write-only category_id is dropped.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     models.Category `json:"category"`
	Size         string          `json:"size"`
	Description  string          `json:"description"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CurrentStock int             `json:"current_stock"`
}

func newProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		Size:         p.Size,
		Description:  p.Description,
		UnitPrice:    p.UnitPrice,
		CurrentStock: p.CurrentStock,
	}
}

// validateRequest runs the schema pass: struct tags plus the decimal sign
// check the tags cannot express.
func (h *ProductHandler) validateRequest(req *ProductRequest) map[string]string {
	fields := make(map[string]string)
	if err := h.validate.Struct(req); err != nil {
		fields = validationMessages(err)
	}
	if req.UnitPrice != nil && req.UnitPrice.IsNegative() {
		fields["unit_price"] = "unit_price must not be negative"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// HandleList retrieves products with their categories. Supports ?category=,
// ?current_stock=, ?search= and ?ordering=.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	filter := repositories.ProductFilter{
		CategoryID: c.Query("category"),
		Search:     c.Query("search"),
		Ordering:   c.Query("ordering"),
	}
	if raw := c.Query("current_stock"); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, map[string]string{"current_stock": "must be an integer"})
		}
		filter.CurrentStock = &stock
	}

	products, err := h.service.ListProducts(filter)
	if err != nil {
		return respondError(c, err)
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, newProductResponse(&products[i]))
	}
	return c.JSON(responses)
}

// HandleGet retrieves a single product.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newProductResponse(product))
}

// HandleCreate creates a new product.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, map[string]string{"body": "Invalid request body"})
	}
	if fields := h.validateRequest(&req); fields != nil {
		return badRequest(c, fields)
	}

	product := models.Product{
		Name:         req.Name,
		CategoryID:   req.CategoryID,
		Size:         req.Size,
		Description:  req.Description,
		UnitPrice:    *req.UnitPrice,
		CurrentStock: req.CurrentStock,
	}
	stored, err := h.service.CreateProduct(&product)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newProductResponse(stored))
}

// HandleUpdate replaces all writable fields of a product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, map[string]string{"body": "Invalid request body"})
	}
	if fields := h.validateRequest(&req); fields != nil {
		return badRequest(c, fields)
	}

	product.Name = req.Name
	product.CategoryID = req.CategoryID
	product.Size = req.Size
	product.Description = req.Description
	product.UnitPrice = *req.UnitPrice
	product.CurrentStock = req.CurrentStock

	stored, err := h.service.UpdateProduct(product)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newProductResponse(stored))
}

// HandlePatch applies a partial update to a product.
func (h *ProductHandler) HandlePatch(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	var patch ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, map[string]string{"body": "Invalid request body"})
	}
	if err := h.validate.Struct(patch); err != nil {
		return badRequest(c, validationMessages(err))
	}
	if patch.UnitPrice != nil && patch.UnitPrice.IsNegative() {
		return badRequest(c, map[string]string{"unit_price": "unit_price must not be negative"})
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.CategoryID != nil {
		product.CategoryID = *patch.CategoryID
	}
	if patch.Size != nil {
		product.Size = *patch.Size
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.UnitPrice != nil {
		product.UnitPrice = *patch.UnitPrice
	}
	if patch.CurrentStock != nil {
		product.CurrentStock = *patch.CurrentStock
	}

	stored, err := h.service.UpdateProduct(product)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newProductResponse(stored))
}

// HandleDelete removes a product and its inventory entries.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
