package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"zenith-backend/internal/config"
	"zenith-backend/internal/mediastore"
	"zenith-backend/internal/models"
	"zenith-backend/internal/repositories"
	"zenith-backend/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MediaService struct {
	repo  *repositories.Repository
	store mediastore.Client
	cfg   *config.Config
}

func NewMediaService(repo *repositories.Repository, store mediastore.Client, cfg *config.Config) *MediaService {
	return &MediaService{repo: repo, store: store, cfg: cfg}
}

var imageMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var videoMIMETypes = map[string]bool{
	"video/mp4":       true,
	"video/mpeg":      true,
	"video/quicktime": true,
	"video/webm":      true,
}

// ClassifyMediaType maps a MIME type onto the catalog's image/video split.
// Anything outside the allow-lists is rejected.
func ClassifyMediaType(contentType string) (string, error) {
	switch {
	case imageMIMETypes[contentType]:
		return "image", nil
	case videoMIMETypes[contentType]:
		return "video", nil
	default:
		return "", fmt.Errorf("unsupported file type: %s", contentType)
	}
}

// VideoThumbnailURL derives a thumbnail by swapping the file extension for .jpg.
// String-based, not content-based: Cloudinary serves a frame for the jpg variant.
func VideoThumbnailURL(secureURL string) string {
	idx := strings.LastIndex(secureURL, ".")
	if idx < 0 {
		return secureURL
	}
	return secureURL[:idx] + ".jpg"
}

var mediaCategories = map[string]bool{
	models.MediaCategoryEvents:   true,
	models.MediaCategorySports:   true,
	models.MediaCategoryCultural: true,
	models.MediaCategoryCampus:   true,
	models.MediaCategoryWinners:  true,
	models.MediaCategoryGeneral:  true,
}

type UploadMediaRequest struct {
	Title       string
	Description string
	Category    string
	Tags        []string
}

func (s *MediaService) UploadMedia(ctx context.Context, file *multipart.FileHeader, req UploadMediaRequest, uploaderID uuid.UUID) (*models.Media, error) {
	mediaType, err := ClassifyMediaType(file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	maxSize := s.cfg.MaxFileSize
	if mediaType == "video" {
		maxSize = s.cfg.MaxVideoSize
	}
	if file.Size > maxSize {
		return nil, fmt.Errorf("file exceeds maximum size of %d bytes", maxSize)
	}

	category := req.Category
	if category == "" {
		category = models.MediaCategoryGeneral
	}
	if !mediaCategories[category] {
		return nil, errors.New("invalid media category")
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Quality/format hints only; dimensions are preserved.
	result, err := s.store.Upload(ctx, src, mediastore.UploadParams{
		Folder:         "zenith/media",
		ResourceType:   mediaType,
		Transformation: "q_auto,f_auto",
	})
	if err != nil {
		return nil, err
	}

	tags := datatypes.JSON([]byte("[]"))
	if len(req.Tags) > 0 {
		encoded, err := json.Marshal(req.Tags)
		if err != nil {
			return nil, fmt.Errorf("failed to encode tags: %w", err)
		}
		tags = datatypes.JSON(encoded)
	}

	media := &models.Media{
		ID:           uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		Type:         mediaType,
		CloudinaryID: result.PublicID,
		URL:          result.URL,
		SecureURL:    result.SecureURL,
		PublicID:     result.PublicID,
		Format:       result.Format,
		ResourceType: result.ResourceType,
		Size:         result.Bytes,
		Width:        result.Width,
		Height:       result.Height,
		Tags:         tags,
		Category:     category,
		IsActive:     true,
		UploadedBy:   uploaderID,
	}
	if mediaType == "video" {
		media.ThumbnailURL = VideoThumbnailURL(result.SecureURL)
	}

	// Append position and insert share one transaction; the max read holds an
	// advisory lock until commit, so concurrent uploads cannot claim the same
	// slot.
	err = s.repo.MediaRepo.Transaction(func(tx *gorm.DB) error {
		max, err := s.repo.MediaRepo.MaxDisplayOrder(tx)
		if err != nil {
			return err
		}
		media.DisplayOrder = max + 1
		return s.repo.MediaRepo.CreateMedia(tx, media)
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"type":      mediaType,
		"public_id": result.PublicID,
	}).Info("media uploaded")

	return media, nil
}

func (s *MediaService) GetAllMedia(page, pageSize int, filters *repositories.MediaFilters, sortBy, sortDir string) ([]models.Media, int64, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	items, total, err := s.repo.MediaRepo.ListMedia(offset, pageSize, filters, sortBy, sortDir)
	if err != nil {
		return nil, 0, 0, err
	}

	totalPages := (int(total) + pageSize - 1) / pageSize
	return items, total, totalPages, nil
}

func (s *MediaService) ReorderMedia(items []repositories.MediaOrder) (int64, error) {
	if len(items) == 0 {
		return 0, errors.New("order list cannot be empty")
	}
	for _, item := range items {
		if item.ID == uuid.Nil {
			return 0, errors.New("each entry requires an id and an order")
		}
	}
	return s.repo.MediaRepo.ReorderMedia(items)
}

func (s *MediaService) ToggleMediaStatus(id string) (*models.Media, error) {
	media, err := s.repo.MediaRepo.GetMediaByID(id)
	if err != nil {
		return nil, ErrMediaNotFound
	}

	media.IsActive = !media.IsActive
	if err := s.repo.MediaRepo.UpdateMedia(media); err != nil {
		return nil, err
	}
	return media, nil
}

// DeleteMedia removes the remote asset first; the catalog row is only deleted
// once the store confirms. A failed remote delete blocks catalog cleanup.
func (s *MediaService) DeleteMedia(ctx context.Context, id string) error {
	media, err := s.repo.MediaRepo.GetMediaByID(id)
	if err != nil {
		return ErrMediaNotFound
	}

	if err := s.store.Destroy(ctx, media.PublicID, media.ResourceType); err != nil {
		return err
	}

	return s.repo.MediaRepo.DeleteMedia(id)
}
