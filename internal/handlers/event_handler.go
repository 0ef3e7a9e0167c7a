package handlers

import (
	"strconv"
	"time"

	"zenith-backend/internal/middleware"
	"zenith-backend/internal/repositories"
	"zenith-backend/internal/services"
	"zenith-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CreateEventRequest struct {
	Name                 string         `json:"name" validate:"required"`
	Description          string         `json:"description"`
	Category             string         `json:"category" validate:"required"`
	RegistrationDeadline string         `json:"registration_deadline" validate:"required"`
	EventDate            string         `json:"event_date" validate:"required"`
	MaxParticipants      *int           `json:"max_participants" validate:"omitempty,gt=0"`
	RegistrationFee      float64        `json:"registration_fee" validate:"gte=0"`
	IsPublished          bool           `json:"is_published"`
	CustomFields         datatypes.JSON `json:"custom_fields"`
	Coordinators         datatypes.JSON `json:"coordinators"`
}

type UpdateEventRequest struct {
	Name                 *string        `json:"name"`
	Description          *string        `json:"description"`
	Category             *string        `json:"category"`
	RegistrationDeadline *string        `json:"registration_deadline"`
	EventDate            *string        `json:"event_date"`
	MaxParticipants      *int           `json:"max_participants" validate:"omitempty,gt=0"`
	ClearMaxParticipants bool           `json:"clear_max_participants"`
	RegistrationFee      *float64       `json:"registration_fee" validate:"omitempty,gte=0"`
	IsPublished          *bool          `json:"is_published"`
	CustomFields         datatypes.JSON `json:"custom_fields"`
	Coordinators         datatypes.JSON `json:"coordinators"`
}

func (h *Handler) CreateEvent(c *fiber.Ctx) error {
	adminID, err := adminUUID(c)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnauthorized)
	}

	var req CreateEventRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	deadline, err := time.Parse(time.RFC3339, req.RegistrationDeadline)
	if err != nil {
		return utils.Error(c, "Invalid registration_deadline format", fiber.StatusBadRequest)
	}
	eventDate, err := time.Parse(time.RFC3339, req.EventDate)
	if err != nil {
		return utils.Error(c, "Invalid event_date format", fiber.StatusBadRequest)
	}

	event, err := h.eventSvc.CreateEvent(services.CreateEventRequest{
		Name:                 req.Name,
		Description:          req.Description,
		Category:             req.Category,
		RegistrationDeadline: deadline,
		EventDate:            eventDate,
		MaxParticipants:      req.MaxParticipants,
		RegistrationFee:      req.RegistrationFee,
		IsPublished:          req.IsPublished,
		CustomFields:         req.CustomFields,
		Coordinators:         req.Coordinators,
	}, adminID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return utils.Success(c, event, "Event created successfully", fiber.StatusCreated)
}

// ListEvents is public: unauthenticated callers only see published active events.
func (h *Handler) ListEvents(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	filters := &repositories.EventFilters{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	if c.Locals("admin_id") == nil {
		active := true
		published := true
		filters.IsActive = &active
		filters.IsPublished = &published
	} else if v := c.Query("is_active"); v != "" {
		isActive := v == "true"
		filters.IsActive = &isActive
	}

	events, total, totalPages, err := h.eventSvc.ListEvents(page, pageSize, filters)
	if err != nil {
		return utils.Error(c, "Failed to fetch events", fiber.StatusInternalServerError)
	}

	meta := &utils.Meta{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPages,
	}

	return utils.SuccessWithMeta(c, events, meta, "Events retrieved successfully")
}

func (h *Handler) GetEvent(c *fiber.Ctx) error {
	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	event, err := h.eventSvc.GetEvent(eventID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return utils.Success(c, event, "Event retrieved successfully")
}

func (h *Handler) UpdateEvent(c *fiber.Ctx) error {
	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	adminID, err := adminUUID(c)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnauthorized)
	}

	var req UpdateEventRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	svcReq := services.UpdateEventRequest{
		Name:                 req.Name,
		Description:          req.Description,
		Category:             req.Category,
		MaxParticipants:      req.MaxParticipants,
		ClearMaxParticipants: req.ClearMaxParticipants,
		RegistrationFee:      req.RegistrationFee,
		IsPublished:          req.IsPublished,
		CustomFields:         req.CustomFields,
		Coordinators:         req.Coordinators,
	}

	if req.RegistrationDeadline != nil {
		deadline, err := time.Parse(time.RFC3339, *req.RegistrationDeadline)
		if err != nil {
			return utils.Error(c, "Invalid registration_deadline format", fiber.StatusBadRequest)
		}
		svcReq.RegistrationDeadline = &deadline
	}
	if req.EventDate != nil {
		eventDate, err := time.Parse(time.RFC3339, *req.EventDate)
		if err != nil {
			return utils.Error(c, "Invalid event_date format", fiber.StatusBadRequest)
		}
		svcReq.EventDate = &eventDate
	}

	event, err := h.eventSvc.UpdateEvent(eventID, svcReq, adminID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return utils.Success(c, event, "Event updated successfully")
}

// DeleteEvent refuses while registrations reference the event.
func (h *Handler) DeleteEvent(c *fiber.Ctx) error {
	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	if err := h.eventSvc.DeleteEvent(eventID); err != nil {
		return mapServiceError(c, err)
	}

	return utils.Success(c, nil, "Event deleted successfully")
}

func (h *Handler) ToggleEventStatus(c *fiber.Ctx) error {
	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	adminID, err := adminUUID(c)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnauthorized)
	}

	event, err := h.eventSvc.ToggleEventStatus(eventID, adminID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return utils.Success(c, event, "Event status updated successfully")
}

func adminUUID(c *fiber.Ctx) (uuid.UUID, error) {
	adminID, err := middleware.GetAdminIDFromContext(c)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(adminID)
}
