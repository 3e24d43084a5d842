package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"stockroom/internal/models"
	"stockroom/internal/repositories"
	"stockroom/internal/services"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes wires category routes: reads are public, writes go through
// the auth middleware.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/categories", h.HandleList)
	router.Get("/categories/:id", h.HandleGet)
	router.Post("/categories", auth, h.HandleCreate)
	router.Put("/categories/:id", auth, h.HandleUpdate)
	router.Patch("/categories/:id", auth, h.HandlePatch)
	router.Delete("/categories/:id", auth, h.HandleDelete)
}

// CategoryRequest is the flat write shape for a category.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

// CategoryPatch is the partial-update shape; absent fields stay unchanged.
type CategoryPatch struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
}

// HandleList retrieves categories, optionally filtered by ?search= and
// ordered by ?ordering=.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	filter := repositories.CategoryFilter{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
	}
	categories, err := h.service.ListCategories(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// HandleGet retrieves a single category.
func (h *CategoryHandler) HandleGet(c *fiber.Ctx) error {
	category, err := h.service.GetCategoryByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// HandleCreate creates a new category.
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, map[string]string{"body": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, validationMessages(err))
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.service.CreateCategory(&category); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdate replaces all writable fields of a category.
func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	category, err := h.service.GetCategoryByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, map[string]string{"body": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, validationMessages(err))
	}

	category.Name = req.Name
	category.Description = req.Description
	if err := h.service.UpdateCategory(category); err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// HandlePatch applies a partial update to a category.
func (h *CategoryHandler) HandlePatch(c *fiber.Ctx) error {
	category, err := h.service.GetCategoryByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	var patch CategoryPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, map[string]string{"body": "Invalid request body"})
	}
	if err := h.validate.Struct(patch); err != nil {
		return badRequest(c, validationMessages(err))
	}

	if patch.Name != nil {
		category.Name = *patch.Name
	}
	if patch.Description != nil {
		category.Description = *patch.Description
	}
	if err := h.service.UpdateCategory(category); err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// HandleDelete removes a category, cascading to its products and their
// inventory entries.
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.DeleteCategory(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
