package repositories

import (
	"time"

	"zenith-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository struct {
	DB               *gorm.DB
	AdminRepo        AdminRepository
	EventRepo        EventRepository
	RegistrationRepo RegistrationRepository
	MarathonRepo     MarathonRepository
	MediaRepo        MediaRepository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:               db,
		AdminRepo:        NewAdminRepository(db),
		EventRepo:        NewEventRepository(db),
		RegistrationRepo: NewRegistrationRepository(db),
		MarathonRepo:     NewMarathonRepository(db),
		MediaRepo:        NewMediaRepository(db),
	}
}

func AutoMigrate(db *gorm.DB) error {
	// Enable UUID extension
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return err
	}

	// Migrate models
	return db.AutoMigrate(
		&models.Admin{},
		&models.Event{},
		&models.Registration{},
		&models.Marathon{},
		&models.Media{},
		&models.SequenceCounter{},
	)
}

// NextSequence atomically increments and returns the counter for key. Runs as a
// single upsert so two concurrent transactions can never observe the same value.
func NextSequence(tx *gorm.DB, key string) (int64, error) {
	var counter models.SequenceCounter
	err := tx.Raw(
		`INSERT INTO sequence_counters (key, value, updated_at) VALUES (?, 1, ?)
		 ON CONFLICT (key) DO UPDATE SET value = sequence_counters.value + 1, updated_at = ?
		 RETURNING key, value, updated_at`,
		key, time.Now(), time.Now(),
	).Scan(&counter).Error
	if err != nil {
		return 0, err
	}
	return counter.Value, nil
}

// DashboardCounts feeds the admin overview in one sweep of count queries.
type DashboardCounts struct {
	Events        int64 `json:"events"`
	Registrations int64 `json:"registrations"`
	Marathons     int64 `json:"marathons"`
	Media         int64 `json:"media"`
}

func (r *Repository) DashboardCounts() (*DashboardCounts, error) {
	var counts DashboardCounts
	if err := r.DB.Model(&models.Event{}).Count(&counts.Events).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&models.Registration{}).Count(&counts.Registrations).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&models.Marathon{}).Count(&counts.Marathons).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&models.Media{}).Count(&counts.Media).Error; err != nil {
		return nil, err
	}
	return &counts, nil
}

// Interface definitions

type AdminRepository interface {
	GetAdminByUsernameOrEmail(login string) (*models.Admin, error)
	GetAdminByID(id string) (*models.Admin, error)
	CreateAdmin(admin *models.Admin) error
	UpdateAdmin(admin *models.Admin) error
	ListAdmins() ([]models.Admin, error)
	DeleteAdmin(id string) error
}

type EventRepository interface {
	CreateEvent(event *models.Event) error
	GetEventByID(id string) (*models.Event, error)
	FindEventByCategory(category string, excludeID *uuid.UUID) (*models.Event, error)
	ListEvents(offset, limit int, filters *EventFilters) ([]models.Event, int64, error)
	UpdateEvent(event *models.Event) error
	DeleteEvent(id string) error
}

type RegistrationRepository interface {
	CreateRegistration(tx *gorm.DB, reg *models.Registration) error
	GetRegistrationByID(id string) (*models.Registration, error)
	GetRegistrationByEventAndEmail(eventID, email string) (*models.Registration, error)
	CountRegistrationsByEvent(eventID string) (int64, error)
	CountActiveRegistrationsByEvent(eventID string) (int64, error)
	ListRegistrations(offset, limit int, filters *RegistrationFilters) ([]models.Registration, int64, error)
	FindRegistrationsForExport(eventID string, filters *RegistrationFilters) ([]models.Registration, error)
	UpdateRegistration(reg *models.Registration) error
	DeleteRegistration(id string) error

	StatusBreakdown(eventID string) ([]StatusCount, error)
	PaymentBreakdown(eventID string) ([]PaymentCount, error)
	TopInstitutions(eventID string, limit int) ([]NameCount, error)
	TopCities(eventID string, limit int) ([]NameCount, error)
	DailyCounts(eventID string) ([]DayCount, error)

	Transaction(txFunc func(*gorm.DB) error) error
}

type MarathonRepository interface {
	CreateMarathon(tx *gorm.DB, entry *models.Marathon) error
	GetMarathonByID(id string) (*models.Marathon, error)
	GetMarathonByEmail(email string) (*models.Marathon, error)
	ListMarathons(offset, limit int, filters *MarathonFilters) ([]models.Marathon, int64, error)
	FindMarathonsForExport(filters *MarathonFilters) ([]models.Marathon, error)
	CountMarathonsWhere(column, value string) (int64, error)
	CountMarathons() (int64, error)
	UpdateMarathon(entry *models.Marathon) error
	DeleteMarathon(id string) error
	Transaction(txFunc func(*gorm.DB) error) error
}

type MediaRepository interface {
	CreateMedia(tx *gorm.DB, media *models.Media) error
	GetMediaByID(id string) (*models.Media, error)
	ListMedia(offset, limit int, filters *MediaFilters, sortBy, sortDir string) ([]models.Media, int64, error)
	MaxDisplayOrder(tx *gorm.DB) (int, error)
	ReorderMedia(items []MediaOrder) (int64, error)
	UpdateMedia(media *models.Media) error
	DeleteMedia(id string) error
	Transaction(txFunc func(*gorm.DB) error) error
}

// Aggregation row shapes shared by repo and service.

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type PaymentCount struct {
	PaymentStatus string  `json:"payment_status"`
	Count         int64   `json:"count"`
	Amount        float64 `json:"amount"`
}

type NameCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type MediaOrder struct {
	ID    uuid.UUID `json:"id"`
	Order int       `json:"order"`
}
