package main

import (
	"log"

	"zenith-backend/internal/config"
	"zenith-backend/internal/models"
	"zenith-backend/internal/repositories"
	"zenith-backend/internal/utils"
	"zenith-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

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

	log.Println("✅ Database migrations completed successfully")

	// Create default super admin if not exists
	if err := createDefaultAdmin(db); err != nil {
		log.Fatalf("Failed to create default admin: %v", err)
	}

	log.Println("🎉 Migration process completed!")
}

func createDefaultAdmin(db *gorm.DB) error {
	adminUsername := "admin"
	adminEmail := "admin@zenith.local"
	adminPassword := "zenith@2026"

	// Check if admin already exists
	var existing models.Admin
	if err := db.Where("username = ?", adminUsername).First(&existing).Error; err == nil {
		log.Println("ℹ️  Default admin user already exists")
		return nil
	}

	// Hash password
	hashedPassword, err := utils.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	// Create super admin
	admin := &models.Admin{
		ID:       uuid.New(),
		Username: adminUsername,
		Email:    adminEmail,
		Password: hashedPassword,
		Role:     "super_admin",
		IsActive: true,
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Default admin user created:")
	log.Printf("   Username: %s", adminUsername)
	log.Printf("   Email: %s", adminEmail)
	log.Printf("   Password: %s", adminPassword)
	log.Printf("   Role: %s", admin.Role)

	return nil
}
