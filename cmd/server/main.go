package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"zenith-backend/internal/config"
	"zenith-backend/internal/handlers"
	"zenith-backend/internal/mediastore"
	"zenith-backend/internal/middleware"
	"zenith-backend/internal/repositories"
	"zenith-backend/internal/services"
	"zenith-backend/pkg/database"
	"zenith-backend/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.NewConfigFromEnv()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Initialize database
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// Run migrations
	if err := repositories.AutoMigrate(db); err != nil {
		log.Fatalf("Migration error: %v", err)
	}

	// Initialize repositories
	repo := repositories.NewRepository(db)

	// Initialize media store
	store, err := mediastore.NewCloudinaryClient(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		log.Fatalf("Media store error: %v", err)
	}

	// Initialize services
	authSvc := services.NewAuthService(repo, cfg)
	eventSvc := services.NewEventService(repo, cfg)
	registrationSvc := services.NewRegistrationService(repo, cfg)
	marathonSvc := services.NewMarathonService(repo, cfg)
	mediaSvc := services.NewMediaService(repo, store, cfg)

	// Initialize handlers
	handler := handlers.NewHandler(authSvc, eventSvc, registrationSvc, marathonSvc, mediaSvc, cfg)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Zenith API",
		BodyLimit:    int(cfg.MaxVideoSize),
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendURL,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(middleware.GlobalRateLimiter(cfg))

	// Create upload directories
	for _, dir := range []string{"documents", "qrcodes"} {
		if err := os.MkdirAll(filepath.Join(cfg.UploadDir, dir), 0755); err != nil {
			log.Fatalf("Failed to create upload directory: %v", err)
		}
	}

	// Static file serving
	app.Static("/uploads", cfg.UploadDir)

	// Register routes
	api := app.Group("/api")
	handler.RegisterRoutes(api)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("🚀 Server starting on %s", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped gracefully")
}
