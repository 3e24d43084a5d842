package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"stockroom/internal/handlers"
	"stockroom/internal/middleware"
	"stockroom/internal/models"
	"stockroom/internal/repositories"
	"stockroom/internal/services"
	"stockroom/pkg/rabbitmq"
)

// NewApp migrates the schema and wires repositories, services, handlers and
// routes into a Fiber application. publisher may be nil to disable
// stock-movement events (tests run without a broker).
func NewApp(db *gorm.DB, publisher services.StockEventPublisher, jwtSecret string) (*fiber.App, error) {
	err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Inventory{},
		&models.User{},
		&models.RevokedToken{},
	)
	if err != nil {
		return nil, err
	}

	// Repositories
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	inventoryRepo := repositories.NewGORMInventoryRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	tokenRepo := repositories.NewGORMTokenRepository(db)

	// Services
	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo, categoryRepo)
	inventoryService := services.NewInventoryService(inventoryRepo, productRepo, publisher)
	authService := services.NewAuthService(userRepo, tokenRepo, jwtSecret)

	// Handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	authHandler := handlers.NewAuthHandler(authService)

	app := fiber.New()
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
		})
	})

	api := app.Group("/api")
	auth := middleware.AuthRequired(authService)

	authHandler.RegisterRoutes(api, auth)
	categoryHandler.RegisterRoutes(api, auth)
	productHandler.RegisterRoutes(api, auth)
	inventoryHandler.RegisterRoutes(api, auth)

	// Bootstrap a staff account when configured and absent, since the API has
	// no other way to mint the first credentials.
	if username := viper.GetString("ADMIN_USERNAME"); username != "" {
		if _, err := userRepo.GetByUsername(username); errors.Is(err, repositories.ErrNotFound) {
			admin := models.User{
				Username: username,
				Email:    viper.GetString("ADMIN_EMAIL"),
				Password: viper.GetString("ADMIN_PASSWORD"),
				IsStaff:  true,
			}
			if err := authService.RegisterUser(&admin); err != nil {
				log.Printf("Failed to bootstrap admin user %s: %v", username, err)
			} else {
				log.Printf("Bootstrapped admin user %s", username)
			}
		}
	}

	return app, nil
}

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=stockroom port=5432 sslmode=disable")
	viper.SetDefault("JWT_SECRET", "change_me")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Database ---
	db, err := gorm.Open(postgres.Open(viper.GetString("DATABASE_DSN")), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var publisher services.StockEventPublisher
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	}

	app, err := NewApp(db, publisher, viper.GetString("JWT_SECRET"))
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
