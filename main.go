package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/mail"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/payment"
	"storefront/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// --- Database ---
	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (mail queue + order events) ---
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
	}
	defer mqClient.Close() // Ensure the connection is closed on exit

	// --- External services ---
	mailer := mail.NewQueueMailer(mqClient, cfg.MailQueue)
	processor := payment.NewHTTPClient(cfg.PaymentAPIURL, cfg.PaymentAPIKey)

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	itemRepo := repositories.NewGORMItemRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, mailer, cfg.JWTSecret, cfg.MailFrom, cfg.AppURL, cfg.ResetTokenTTL)
	itemService := services.NewItemService(itemRepo, userRepo)
	cartService := services.NewCartService(cartRepo, itemRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, userRepo, processor, mqClient, cfg.Currency)
	userService := services.NewUserService(userRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	itemHandler := handlers.NewItemHandler(itemService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	userHandler := handlers.NewUserHandler(userService)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(logger.New()) // Request logger

	apiV1 := app.Group("/api/v1")

	// Public routes
	authHandler.RegisterRoutes(apiV1)
	itemHandler.RegisterPublicRoutes(apiV1)

	// Protected routes (require JWT authentication)
	protected := apiV1.Group("", middleware.AuthRequired(authService))
	itemHandler.RegisterRoutes(protected)
	cartHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)
	userHandler.RegisterRoutes(protected)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase opens the configured database. Postgres in production,
// SQLite for local development by default.
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(cfg.DatabaseDSN), &gorm.Config{})
	}
}
