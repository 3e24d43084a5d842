package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stockroom/internal/handlers"
	"stockroom/internal/middleware"
	"stockroom/internal/models"
	"stockroom/internal/repositories"
	"stockroom/internal/services"
)

// setupApp builds a Fiber app on a fresh in-memory SQLite database with the
// same wiring as main, minus the message broker.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	// A unique shared-cache DSN per test keeps GORM's pooled connections on
	// one database without leaking state between tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Inventory{},
		&models.User{},
		&models.RevokedToken{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	inventoryRepo := repositories.NewGORMInventoryRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	tokenRepo := repositories.NewGORMTokenRepository(db)

	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo, categoryRepo)
	inventoryService := services.NewInventoryService(inventoryRepo, productRepo, nil)
	authService := services.NewAuthService(userRepo, tokenRepo, "test_jwt_secret")

	app := fiber.New()
	api := app.Group("/api")
	auth := middleware.AuthRequired(authService)

	handlers.NewAuthHandler(authService).RegisterRoutes(api, auth)
	handlers.NewCategoryHandler(categoryService).RegisterRoutes(api, auth)
	handlers.NewProductHandler(productService).RegisterRoutes(api, auth)
	handlers.NewInventoryHandler(inventoryService).RegisterRoutes(api, auth)

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// registerAndLogin creates a fresh user and returns an access token.
func registerAndLogin(t *testing.T, app *fiber.App) string {
	t.Helper()

	creds := map[string]string{
		"username": "clerk",
		"email":    "clerk@example.com",
		"password": "password123",
	}
	resp := doRequest(t, app, http.MethodPost, "/api/register/", creds, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, "/api/login/", creds, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Access string `json:"access"`
	}
	decode(t, resp, &body)
	assert.NotEmpty(t, body.Access)
	return body.Access
}

func createCategory(t *testing.T, app *fiber.App, token, name string) models.Category {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/categories/", map[string]string{
		"name":        name,
		"description": name + " and related goods",
	}, token)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var category models.Category
	decode(t, resp, &category)
	return category
}

func createProduct(t *testing.T, app *fiber.App, token, categoryID, name, price string) handlers.ProductResponse {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/products/", map[string]interface{}{
		"name":        name,
		"category_id": categoryID,
		"unit_price":  price,
	}, token)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var product handlers.ProductResponse
	decode(t, resp, &product)
	return product
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app := setupApp(t)

	creds := map[string]string{
		"username": "clerk",
		"email":    "clerk@example.com",
		"password": "password123",
	}
	resp := doRequest(t, app, http.MethodPost, "/api/register/", creds, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Wrong password: 401 and no tokens issued.
	resp = doRequest(t, app, http.MethodPost, "/api/login/", map[string]string{
		"username": "clerk",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var failBody map[string]interface{}
	decode(t, resp, &failBody)
	assert.NotContains(t, failBody, "access")

	// Correct password: 200 with user summary and token pair.
	resp = doRequest(t, app, http.MethodPost, "/api/login/", creds, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		User    models.User `json:"user"`
		Access  string      `json:"access"`
		Refresh string      `json:"refresh"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "clerk", body.User.Username)
	assert.Equal(t, "clerk@example.com", body.User.Email)
	assert.NotEmpty(t, body.Access)
	assert.NotEmpty(t, body.Refresh)

	// Duplicate registration is a validation error.
	resp = doRequest(t, app, http.MethodPost, "/api/register/", creds, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestTokenEndpoints(t *testing.T) {
	app := setupApp(t)
	registerAndLogin(t, app)

	// Token pair issuance embeds a user summary.
	resp := doRequest(t, app, http.MethodPost, "/api/token/", map[string]string{
		"username": "clerk",
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var pair struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
		User    struct {
			ID       string `json:"id"`
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
	}
	decode(t, resp, &pair)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
	assert.Equal(t, "clerk", pair.User.Username)
	assert.NotEmpty(t, pair.User.ID)

	// Verify accepts both tokens of the pair.
	for _, token := range []string{pair.Access, pair.Refresh} {
		resp = doRequest(t, app, http.MethodPost, "/api/token/verify/", map[string]string{"token": token}, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
	resp = doRequest(t, app, http.MethodPost, "/api/token/verify/", map[string]string{"token": "garbage"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Refresh exchanges the refresh token for a new access token.
	resp = doRequest(t, app, http.MethodPost, "/api/token/refresh/", map[string]string{"refresh": pair.Refresh}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var refreshed struct {
		Access string `json:"access"`
	}
	decode(t, resp, &refreshed)
	assert.NotEmpty(t, refreshed.Access)

	// An access token is not accepted by the refresh endpoint.
	resp = doRequest(t, app, http.MethodPost, "/api/token/refresh/", map[string]string{"refresh": pair.Access}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Logout without a token fails; with a token it revokes it.
	resp = doRequest(t, app, http.MethodPost, "/api/logout/", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, "/api/logout/", nil, pair.Access)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The revoked token no longer verifies nor authorizes writes.
	resp = doRequest(t, app, http.MethodPost, "/api/token/verify/", map[string]string{"token": pair.Access}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, "/api/categories/", map[string]string{"name": "Soaps"}, pair.Access)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestCategoryCRUD(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app)

	// Anonymous reads are allowed, anonymous writes are not.
	resp := doRequest(t, app, http.MethodGet, "/api/categories/", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, "/api/categories/", map[string]string{"name": "Soaps"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	created := createCategory(t, app, token, "Soaps")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Soaps", created.Name)

	// Unique name constraint surfaces as a field-level 400.
	resp = doRequest(t, app, http.MethodPost, "/api/categories/", map[string]string{"name": "Soaps"}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var dup struct {
		Errors map[string]string `json:"errors"`
	}
	decode(t, resp, &dup)
	assert.Contains(t, dup.Errors, "name")

	// Missing name is a validation error.
	resp = doRequest(t, app, http.MethodPost, "/api/categories/", map[string]string{"description": "x"}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Retrieve, update, patch.
	resp = doRequest(t, app, http.MethodGet, "/api/categories/"+created.ID+"/", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.Category
	decode(t, resp, &fetched)
	assert.Equal(t, created, fetched)

	resp = doRequest(t, app, http.MethodPut, "/api/categories/"+created.ID+"/", map[string]string{
		"name":        "Cleaning",
		"description": "all cleaning supplies",
	}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &fetched)
	assert.Equal(t, "Cleaning", fetched.Name)

	resp = doRequest(t, app, http.MethodPatch, "/api/categories/"+created.ID+"/", map[string]string{
		"description": "supplies",
	}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &fetched)
	assert.Equal(t, "Cleaning", fetched.Name)
	assert.Equal(t, "supplies", fetched.Description)

	// Search and ordering.
	createCategory(t, app, token, "Soaps")
	createCategory(t, app, token, "Accessories")

	resp = doRequest(t, app, http.MethodGet, "/api/categories/?search=soap", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var found []models.Category
	decode(t, resp, &found)
	assert.Len(t, found, 1)
	assert.Equal(t, "Soaps", found[0].Name)

	resp = doRequest(t, app, http.MethodGet, "/api/categories/?ordering=-name", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &found)
	assert.Len(t, found, 3)
	assert.Equal(t, "Soaps", found[0].Name)
	assert.Equal(t, "Accessories", found[2].Name)

	resp = doRequest(t, app, http.MethodGet, "/api/categories/?ordering=description", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Delete: 204, then 404.
	resp = doRequest(t, app, http.MethodDelete, "/api/categories/"+created.ID+"/", nil, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/categories/"+created.ID+"/", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodDelete, "/api/categories/"+created.ID+"/", nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestProductValidationAndFilters(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app)
	soaps := createCategory(t, app, token, "Soaps")
	accessories := createCategory(t, app, token, "Accessories")

	// Negative price is rejected before persistence.
	resp := doRequest(t, app, http.MethodPost, "/api/products/", map[string]interface{}{
		"name":        "Bad Soap",
		"category_id": soaps.ID,
		"unit_price":  "-1",
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var bad struct {
		Errors map[string]string `json:"errors"`
	}
	decode(t, resp, &bad)
	assert.Contains(t, bad.Errors, "unit_price")

	// Dangling category reference is a validation error, not a 500.
	resp = doRequest(t, app, http.MethodPost, "/api/products/", map[string]interface{}{
		"name":        "Orphan Soap",
		"category_id": uuid.New().String(),
		"unit_price":  "2.50",
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &bad)
	assert.Contains(t, bad.Errors, "category_id")

	// Anonymous writes are rejected, anonymous reads succeed.
	resp = doRequest(t, app, http.MethodPost, "/api/products/", map[string]interface{}{
		"name":        "Bar Soap",
		"category_id": soaps.ID,
		"unit_price":  "2.50",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	barSoap := createProduct(t, app, token, soaps.ID, "Bar Soap", "2.50")
	assert.Equal(t, 0, barSoap.CurrentStock)
	// The read shape embeds the full category object.
	assert.Equal(t, soaps.ID, barSoap.Category.ID)
	assert.Equal(t, "Soaps", barSoap.Category.Name)

	createProduct(t, app, token, soaps.ID, "Liquid Soap", "4.00")
	createProduct(t, app, token, accessories.ID, "Soap Dish", "3.25")
	createProduct(t, app, token, accessories.ID, "Towel", "9.99")

	var products []handlers.ProductResponse

	// Substring search over name/description, case-insensitive.
	resp = doRequest(t, app, http.MethodGet, "/api/products/?search=soap", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &products)
	assert.Len(t, products, 3)
	for _, p := range products {
		assert.Contains(t, p.Name, "Soap")
	}

	// Filter by category.
	resp = doRequest(t, app, http.MethodGet, "/api/products/?category="+accessories.ID, nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &products)
	assert.Len(t, products, 2)
	for _, p := range products {
		assert.Equal(t, accessories.ID, p.Category.ID)
	}

	// Filter by exact stock.
	resp = doRequest(t, app, http.MethodGet, "/api/products/?current_stock=0", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &products)
	assert.Len(t, products, 4)

	resp = doRequest(t, app, http.MethodGet, "/api/products/?current_stock=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Ordering by unit_price descending.
	resp = doRequest(t, app, http.MethodGet, "/api/products/?ordering=-unit_price", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &products)
	assert.Len(t, products, 4)
	assert.Equal(t, "Towel", products[0].Name)
	assert.Equal(t, "Bar Soap", products[3].Name)

	// Default ordering is alphabetical by name.
	resp = doRequest(t, app, http.MethodGet, "/api/products/", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &products)
	assert.Equal(t, "Bar Soap", products[0].Name)

	// Partial update: move a product to another category.
	resp = doRequest(t, app, http.MethodPatch, "/api/products/"+barSoap.ID+"/", map[string]interface{}{
		"category_id": accessories.ID,
	}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var patched handlers.ProductResponse
	decode(t, resp, &patched)
	assert.Equal(t, accessories.ID, patched.Category.ID)
	assert.Equal(t, "Bar Soap", patched.Name)

	// Full update with a dangling category fails.
	resp = doRequest(t, app, http.MethodPut, "/api/products/"+barSoap.ID+"/", map[string]interface{}{
		"name":        "Bar Soap",
		"category_id": uuid.New().String(),
		"unit_price":  "2.50",
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Delete.
	resp = doRequest(t, app, http.MethodDelete, "/api/products/"+barSoap.ID+"/", nil, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/products/"+barSoap.ID+"/", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestInventoryFlow(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app)
	soaps := createCategory(t, app, token, "Soaps")
	product := createProduct(t, app, token, soaps.ID, "Bar Soap", "2.50")
	assert.Equal(t, 0, product.CurrentStock)

	// Inventory reads require authentication.
	resp := doRequest(t, app, http.MethodGet, "/api/inventory/", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// quantity below 1 is rejected.
	resp = doRequest(t, app, http.MethodPost, "/api/inventory/", map[string]interface{}{
		"product_id": product.ID,
		"quantity":   0,
		"unit_cost":  "1.00",
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var bad struct {
		Errors map[string]string `json:"errors"`
	}
	decode(t, resp, &bad)
	assert.Contains(t, bad.Errors, "quantity")

	// Unknown product is a validation error.
	resp = doRequest(t, app, http.MethodPost, "/api/inventory/", map[string]interface{}{
		"product_id": uuid.New().String(),
		"quantity":   5,
		"unit_cost":  "1.00",
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &bad)
	assert.Contains(t, bad.Errors, "product_id")

	// Creating a receipt increments the product's stock. A client-supplied
	// entry_date is ignored; the server assigns today's date.
	resp = doRequest(t, app, http.MethodPost, "/api/inventory/", map[string]interface{}{
		"product_id": product.ID,
		"quantity":   10,
		"unit_cost":  "1.00",
		"entry_date": "1999-01-01",
	}, token)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var entry handlers.InventoryResponse
	decode(t, resp, &entry)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), entry.EntryDate)
	assert.Equal(t, 10, entry.Quantity)
	// The read shape embeds the product, which embeds the category.
	assert.Equal(t, product.ID, entry.Product.ID)
	assert.Equal(t, soaps.ID, entry.Product.Category.ID)
	assert.Equal(t, 10, entry.Product.CurrentStock)

	fetchStock := func() int {
		resp := doRequest(t, app, http.MethodGet, "/api/products/"+product.ID+"/", nil, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var p handlers.ProductResponse
		decode(t, resp, &p)
		return p.CurrentStock
	}
	assert.Equal(t, 10, fetchStock())

	// Re-reading the entry does not apply the increment again.
	resp = doRequest(t, app, http.MethodGet, "/api/inventory/"+entry.ID+"/", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, 10, fetchStock())

	// Editing a receipt never re-applies the increment.
	resp = doRequest(t, app, http.MethodPatch, "/api/inventory/"+entry.ID+"/", map[string]interface{}{
		"quantity": 99,
	}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated handlers.InventoryResponse
	decode(t, resp, &updated)
	assert.Equal(t, 99, updated.Quantity)
	assert.Equal(t, entry.EntryDate, updated.EntryDate)
	assert.Equal(t, 10, fetchStock())

	// Deleting a receipt does not reverse the increment.
	resp = doRequest(t, app, http.MethodDelete, "/api/inventory/"+entry.ID+"/", nil, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, 10, fetchStock())

	// A second receipt stacks on top.
	resp = doRequest(t, app, http.MethodPost, "/api/inventory/", map[string]interface{}{
		"product_id": product.ID,
		"quantity":   5,
		"unit_cost":  "0.80",
	}, token)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, 15, fetchStock())
}

func TestInventoryListFilters(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app)
	soaps := createCategory(t, app, token, "Soaps")
	barSoap := createProduct(t, app, token, soaps.ID, "Bar Soap", "2.50")
	towel := createProduct(t, app, token, soaps.ID, "Towel", "9.99")

	for _, receipt := range []struct {
		productID string
		quantity  int
		cost      string
	}{
		{barSoap.ID, 10, "1.00"},
		{barSoap.ID, 3, "1.10"},
		{towel.ID, 7, "5.00"},
	} {
		resp := doRequest(t, app, http.MethodPost, "/api/inventory/", map[string]interface{}{
			"product_id": receipt.productID,
			"quantity":   receipt.quantity,
			"unit_cost":  receipt.cost,
		}, token)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	var entries []handlers.InventoryResponse

	resp := doRequest(t, app, http.MethodGet, "/api/inventory/", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &entries)
	assert.Len(t, entries, 3)

	// Filter by product.
	resp = doRequest(t, app, http.MethodGet, "/api/inventory/?product="+barSoap.ID, nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &entries)
	assert.Len(t, entries, 2)

	// Filter by entry date: everything was recorded today.
	today := time.Now().UTC().Format("2006-01-02")
	resp = doRequest(t, app, http.MethodGet, "/api/inventory/?entry_date="+today, nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &entries)
	assert.Len(t, entries, 3)

	resp = doRequest(t, app, http.MethodGet, "/api/inventory/?entry_date=1999-01-01", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &entries)
	assert.Len(t, entries, 0)

	resp = doRequest(t, app, http.MethodGet, "/api/inventory/?entry_date=not-a-date", nil, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Search over the related product's name.
	resp = doRequest(t, app, http.MethodGet, "/api/inventory/?search=towel", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &entries)
	assert.Len(t, entries, 1)
	assert.Equal(t, towel.ID, entries[0].Product.ID)

	// Ordering by quantity.
	resp = doRequest(t, app, http.MethodGet, "/api/inventory/?ordering=quantity", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &entries)
	assert.Len(t, entries, 3)
	assert.Equal(t, 3, entries[0].Quantity)
	assert.Equal(t, 10, entries[2].Quantity)
}

func TestCategoryCascadeDelete(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app)
	soaps := createCategory(t, app, token, "Soaps")
	other := createCategory(t, app, token, "Accessories")
	doomed := createProduct(t, app, token, soaps.ID, "Bar Soap", "2.50")
	survivor := createProduct(t, app, token, other.ID, "Towel", "9.99")

	resp := doRequest(t, app, http.MethodPost, "/api/inventory/", map[string]interface{}{
		"product_id": doomed.ID,
		"quantity":   4,
		"unit_cost":  "1.00",
	}, token)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var entry handlers.InventoryResponse
	decode(t, resp, &entry)

	resp = doRequest(t, app, http.MethodDelete, "/api/categories/"+soaps.ID+"/", nil, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// The product and its receipts are gone with the category.
	resp = doRequest(t, app, http.MethodGet, "/api/products/"+doomed.ID+"/", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/inventory/"+entry.ID+"/", nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Products in other categories are untouched.
	resp = doRequest(t, app, http.MethodGet, "/api/products/"+survivor.ID+"/", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestFullStockScenario(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app)

	category := createCategory(t, app, token, "Soaps")
	product := createProduct(t, app, token, category.ID, "Bar Soap", "2.50")
	assert.Equal(t, 0, product.CurrentStock)

	resp := doRequest(t, app, http.MethodPost, "/api/inventory/", map[string]interface{}{
		"product_id": product.ID,
		"quantity":   10,
		"unit_cost":  "1.00",
	}, token)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/products/"+product.ID+"/", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var restocked handlers.ProductResponse
	decode(t, resp, &restocked)
	assert.Equal(t, 10, restocked.CurrentStock)
}
