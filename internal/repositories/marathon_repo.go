package repositories

import (
	"fmt"

	"zenith-backend/internal/models"

	"gorm.io/gorm"
)

type MarathonFilters struct {
	Category      string
	Gender        string
	Status        string
	PaymentStatus string
	Search        string
}

type marathonRepo struct {
	db *gorm.DB
}

func NewMarathonRepository(db *gorm.DB) MarathonRepository {
	return &marathonRepo{db: db}
}

func (r *marathonRepo) CreateMarathon(tx *gorm.DB, entry *models.Marathon) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(entry).Error
}

func (r *marathonRepo) GetMarathonByID(id string) (*models.Marathon, error) {
	var entry models.Marathon
	if err := r.db.Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *marathonRepo) GetMarathonByEmail(email string) (*models.Marathon, error) {
	var entry models.Marathon
	if err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *marathonRepo) ListMarathons(offset, limit int, filters *MarathonFilters) ([]models.Marathon, int64, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var entries []models.Marathon
	var total int64

	query := r.db.Model(&models.Marathon{})
	query = applyMarathonFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count marathon entries: %w", err)
	}

	if err := query.
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list marathon entries: %w", err)
	}

	return entries, total, nil
}

func (r *marathonRepo) FindMarathonsForExport(filters *MarathonFilters) ([]models.Marathon, error) {
	var entries []models.Marathon
	query := applyMarathonFilters(r.db.Model(&models.Marathon{}), filters)
	if err := query.Order("created_at ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch marathon entries for export: %w", err)
	}
	return entries, nil
}

func applyMarathonFilters(query *gorm.DB, filters *MarathonFilters) *gorm.DB {
	if filters == nil {
		return query
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Gender != "" {
		query = query.Where("gender = ?", filters.Gender)
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
			"name ILIKE ? OR email ILIKE ? OR registration_number ILIKE ?",
			term, term, term,
		)
	}
	return query
}

// CountMarathonsWhere counts rows matching one column filter. The stats endpoint
// issues one of these per bucket.
func (r *marathonRepo) CountMarathonsWhere(column, value string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Marathon{}).
		Where(fmt.Sprintf("%s = ?", column), value).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *marathonRepo) CountMarathons() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Marathon{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *marathonRepo) UpdateMarathon(entry *models.Marathon) error {
	return r.db.Save(entry).Error
}

func (r *marathonRepo) DeleteMarathon(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Marathon{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *marathonRepo) Transaction(txFunc func(*gorm.DB) error) error {
	return r.db.Transaction(txFunc)
}
