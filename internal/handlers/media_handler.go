package handlers

import (
	"strconv"
	"strings"

	"zenith-backend/internal/middleware"
	"zenith-backend/internal/repositories"
	"zenith-backend/internal/services"
	"zenith-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UploadMedia takes a single multipart file plus metadata fields.
func (h *Handler) UploadMedia(c *fiber.Ctx) error {
	adminID, err := adminUUID(c)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnauthorized)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.Error(c, "File is required", fiber.StatusBadRequest)
	}

	var tags []string
	if raw := c.FormValue("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	media, err := h.mediaSvc.UploadMedia(c.Context(), file, services.UploadMediaRequest{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Tags:        tags,
	}, adminID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return utils.Success(c, media, "Media uploaded successfully", fiber.StatusCreated)
}

func (h *Handler) GetAllMedia(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	filters := &repositories.MediaFilters{
		Type:     c.Query("type"),
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Search:   c.Query("search"),
	}

	if c.Locals("admin_id") == nil {
		active := true
		filters.IsActive = &active
	} else if v := c.Query("is_active"); v != "" {
		isActive := v == "true"
		filters.IsActive = &isActive
	}

	items, total, totalPages, err := h.mediaSvc.GetAllMedia(page, pageSize, filters, c.Query("sort_by", "order"), c.Query("sort_dir", "asc"))
	if err != nil {
		return utils.Error(c, "Failed to fetch media", fiber.StatusInternalServerError)
	}

	meta := &utils.Meta{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPages,
	}

	return utils.SuccessWithMeta(c, items, meta, "Media retrieved successfully")
}

type ReorderMediaRequest struct {
	Items []repositories.MediaOrder `json:"items" validate:"required,min=1,dive"`
}

// ReorderMedia persists a drag-and-drop ordering in one bulk write.
func (h *Handler) ReorderMedia(c *fiber.Ctx) error {
	var req ReorderMediaRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	modified, err := h.mediaSvc.ReorderMedia(req.Items)
	if err != nil {
		return mapServiceError(c, err)
	}

	return utils.Success(c, fiber.Map{"modified": modified}, "Media reordered successfully")
}

func (h *Handler) ToggleMediaStatus(c *fiber.Ctx) error {
	mediaID := c.Params("id")
	if _, err := uuid.Parse(mediaID); err != nil {
		return utils.Error(c, "Invalid media ID", fiber.StatusBadRequest)
	}

	media, err := h.mediaSvc.ToggleMediaStatus(mediaID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return utils.Success(c, media, "Media status updated successfully")
}

func (h *Handler) DeleteMedia(c *fiber.Ctx) error {
	mediaID := c.Params("id")
	if _, err := uuid.Parse(mediaID); err != nil {
		return utils.Error(c, "Invalid media ID", fiber.StatusBadRequest)
	}

	if err := h.mediaSvc.DeleteMedia(c.Context(), mediaID); err != nil {
		return mapServiceError(c, err)
	}

	return utils.Success(c, nil, "Media deleted successfully")
}
