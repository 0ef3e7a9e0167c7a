package repositories

import (
	"fmt"

	"zenith-backend/internal/models"

	"gorm.io/gorm"
)

type MediaFilters struct {
	Type     string
	Category string
	IsActive *bool
	Tag      string
	Search   string
}

type mediaRepo struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepo{db: db}
}

func (r *mediaRepo) CreateMedia(tx *gorm.DB, media *models.Media) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(media).Error
}

func (r *mediaRepo) GetMediaByID(id string) (*models.Media, error) {
	var media models.Media
	if err := r.db.Where("id = ?", id).First(&media).Error; err != nil {
		return nil, err
	}
	return &media, nil
}

var mediaSortColumns = map[string]string{
	"order":      "display_order",
	"created_at": "created_at",
	"title":      "title",
	"size":       "size",
}

func (r *mediaRepo) ListMedia(offset, limit int, filters *MediaFilters, sortBy, sortDir string) ([]models.Media, int64, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	column, ok := mediaSortColumns[sortBy]
	if !ok {
		column = "display_order"
	}
	if sortDir != "desc" {
		sortDir = "asc"
	}

	var items []models.Media
	var total int64

	query := r.db.Model(&models.Media{})

	if filters != nil {
		if filters.Type != "" {
			query = query.Where("type = ?", filters.Type)
		}
		if filters.Category != "" {
			query = query.Where("category = ?", filters.Category)
		}
		if filters.IsActive != nil {
			query = query.Where("is_active = ?", *filters.IsActive)
		}
		if filters.Tag != "" {
			query = query.Where(
				"EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags::jsonb) AS t WHERE t = ?)",
				filters.Tag,
			)
		}
		if filters.Search != "" {
			term := "%" + filters.Search + "%"
			query = query.Where("title ILIKE ? OR description ILIKE ?", term, term)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count media: %w", err)
	}

	if err := query.
		Offset(offset).Limit(limit).
		Order(fmt.Sprintf("%s %s", column, sortDir)).
		Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list media: %w", err)
	}

	return items, total, nil
}

// MaxDisplayOrder takes a transaction-scoped advisory lock before reading;
// MAX() alone locks nothing under READ COMMITTED, so two concurrent appends
// could otherwise read the same maximum.
func (r *mediaRepo) MaxDisplayOrder(tx *gorm.DB) (int, error) {
	if tx == nil {
		tx = r.db
	}
	if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext('media_display_order'))").Error; err != nil {
		return 0, err
	}
	var max int
	if err := tx.Model(&models.Media{}).
		Select("COALESCE(MAX(display_order), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

// ReorderMedia applies per-id order updates in a single transaction and returns
// the number of rows actually modified.
func (r *mediaRepo) ReorderMedia(items []MediaOrder) (int64, error) {
	var modified int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			result := tx.Model(&models.Media{}).
				Where("id = ?", item.ID).
				Update("display_order", item.Order)
			if result.Error != nil {
				return result.Error
			}
			modified += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return modified, nil
}

func (r *mediaRepo) UpdateMedia(media *models.Media) error {
	return r.db.Save(media).Error
}

func (r *mediaRepo) DeleteMedia(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Media{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *mediaRepo) Transaction(txFunc func(*gorm.DB) error) error {
	return r.db.Transaction(txFunc)
}
