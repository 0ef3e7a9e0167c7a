package repositories

import (
	"fmt"

	"zenith-backend/internal/models"

	"gorm.io/gorm"
)

type RegistrationFilters struct {
	Status        string
	PaymentStatus string
	Search        string
}

type registrationRepo struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepo{db: db}
}

// CreateRegistration inserts within the given transaction so the sequence
// increment and the row share one commit.
func (r *registrationRepo) CreateRegistration(tx *gorm.DB, reg *models.Registration) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(reg).Error
}

func (r *registrationRepo) GetRegistrationByID(id string) (*models.Registration, error) {
	var reg models.Registration
	if err := r.db.Preload("Event").Where("id = ?", id).First(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepo) GetRegistrationByEventAndEmail(eventID, email string) (*models.Registration, error) {
	var reg models.Registration
	if err := r.db.Where("event_id = ? AND LOWER(email) = LOWER(?)", eventID, email).First(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepo) CountRegistrationsByEvent(eventID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Registration{}).Where("event_id = ?", eventID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountActiveRegistrationsByEvent counts registrations that occupy a slot;
// cancelled and waitlisted entries do not.
func (r *registrationRepo) CountActiveRegistrationsByEvent(eventID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Registration{}).
		Where("event_id = ? AND status IN ?", eventID, []string{"pending", "confirmed"}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *registrationRepo) ListRegistrations(offset, limit int, filters *RegistrationFilters) ([]models.Registration, int64, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var regs []models.Registration
	var total int64

	query := r.db.Model(&models.Registration{})
	query = applyRegistrationFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count registrations: %w", err)
	}

	if err := query.
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&regs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list registrations: %w", err)
	}

	return regs, total, nil
}

func (r *registrationRepo) FindRegistrationsForExport(eventID string, filters *RegistrationFilters) ([]models.Registration, error) {
	var regs []models.Registration
	query := r.db.Where("event_id = ?", eventID)
	query = applyRegistrationFilters(query, filters)
	if err := query.Order("created_at ASC").Find(&regs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch registrations for export: %w", err)
	}
	return regs, nil
}

func applyRegistrationFilters(query *gorm.DB, filters *RegistrationFilters) *gorm.DB {
	if filters == nil {
		return query
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filters.PaymentStatus)
	}
	if filters.Search != "" {
		term := "%" + filters.Search + "%"
		query = query.Where(
			"name ILIKE ? OR email ILIKE ? OR institution ILIKE ? OR registration_number ILIKE ?",
			term, term, term, term,
		)
	}
	return query
}

func (r *registrationRepo) UpdateRegistration(reg *models.Registration) error {
	return r.db.Save(reg).Error
}

func (r *registrationRepo) DeleteRegistration(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Registration{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *registrationRepo) StatusBreakdown(eventID string) ([]StatusCount, error) {
	var rows []StatusCount
	if err := r.db.Model(&models.Registration{}).
		Select("status, COUNT(*) AS count").
		Where("event_id = ?", eventID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *registrationRepo) PaymentBreakdown(eventID string) ([]PaymentCount, error) {
	var rows []PaymentCount
	if err := r.db.Model(&models.Registration{}).
		Select("payment_status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Where("event_id = ?", eventID).
		Group("payment_status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *registrationRepo) TopInstitutions(eventID string, limit int) ([]NameCount, error) {
	var rows []NameCount
	if err := r.db.Model(&models.Registration{}).
		Select("institution AS name, COUNT(*) AS count").
		Where("event_id = ? AND institution != ''", eventID).
		Group("institution").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *registrationRepo) TopCities(eventID string, limit int) ([]NameCount, error) {
	var rows []NameCount
	if err := r.db.Model(&models.Registration{}).
		Select("city AS name, COUNT(*) AS count").
		Where("event_id = ? AND city != ''", eventID).
		Group("city").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DailyCounts buckets registrations by calendar date string for the signup
// time-series chart.
func (r *registrationRepo) DailyCounts(eventID string) ([]DayCount, error) {
	var rows []DayCount
	if err := r.db.Model(&models.Registration{}).
		Select("to_char(created_at, 'YYYY-MM-DD') AS date, COUNT(*) AS count").
		Where("event_id = ?", eventID).
		Group("to_char(created_at, 'YYYY-MM-DD')").
		Order("date ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *registrationRepo) Transaction(txFunc func(*gorm.DB) error) error {
	return r.db.Transaction(txFunc)
}
