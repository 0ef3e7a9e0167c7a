package handlers

import (
	"mime/multipart"
	"strconv"

	"zenith-backend/internal/middleware"
	"zenith-backend/internal/repositories"
	"zenith-backend/internal/services"
	"zenith-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateRegistration accepts the public multipart submission: an eventId field,
// formData as a JSON string, and three named document parts.
func (h *Handler) CreateRegistration(c *fiber.Ctx) error {
	eventID := c.FormValue("eventId")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	rawFormData := c.FormValue("formData")
	if rawFormData == "" {
		return utils.Error(c, "formData is required", fiber.StatusBadRequest)
	}

	files := services.DocumentFiles{
		PermissionLetter:   formFile(c, "permissionLetter"),
		TransactionReceipt: formFile(c, "transactionReceipt"),
		CaptainIDCard:      formFile(c, "captainIdCard"),
	}

	reg, err := h.registrationSvc.CreateRegistration(eventID, rawFormData, files, requestContext(c))
	if err != nil {
		return mapServiceError(c, err)
	}

	return utils.Success(c, reg, "Registration successful", fiber.StatusCreated)
}

func formFile(c *fiber.Ctx, name string) *multipart.FileHeader {
	file, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	return file
}

func (h *Handler) ListRegistrations(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	filters := &repositories.RegistrationFilters{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		Search:        c.Query("search"),
	}

	regs, total, totalPages, err := h.registrationSvc.ListRegistrations(page, pageSize, filters)
	if err != nil {
		return utils.Error(c, "Failed to fetch registrations", fiber.StatusInternalServerError)
	}

	meta := &utils.Meta{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPages,
	}

	return utils.SuccessWithMeta(c, regs, meta, "Registrations retrieved successfully")
}

func (h *Handler) GetRegistration(c *fiber.Ctx) error {
	regID := c.Params("id")
	if _, err := uuid.Parse(regID); err != nil {
		return utils.Error(c, "Invalid registration ID", fiber.StatusBadRequest)
	}

	reg, err := h.registrationSvc.GetRegistration(regID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return utils.Success(c, reg, "Registration retrieved successfully")
}

type UpdateRegistrationRequest struct {
	Status        string `json:"status" validate:"omitempty,oneof=pending confirmed cancelled waitlist"`
	PaymentStatus string `json:"payment_status" validate:"omitempty,oneof=pending completed failed not_required"`
}

func (h *Handler) UpdateRegistration(c *fiber.Ctx) error {
	regID := c.Params("id")
	if _, err := uuid.Parse(regID); err != nil {
		return utils.Error(c, "Invalid registration ID", fiber.StatusBadRequest)
	}

	var req UpdateRegistrationRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	reg, err := h.registrationSvc.UpdateRegistration(regID, req.Status, req.PaymentStatus)
	if err != nil {
		return mapServiceError(c, err)
	}

	return utils.Success(c, reg, "Registration updated successfully")
}

func (h *Handler) DeleteRegistration(c *fiber.Ctx) error {
	regID := c.Params("id")
	if _, err := uuid.Parse(regID); err != nil {
		return utils.Error(c, "Invalid registration ID", fiber.StatusBadRequest)
	}

	if err := h.registrationSvc.DeleteRegistration(regID); err != nil {
		return mapServiceError(c, err)
	}

	return utils.Success(c, nil, "Registration deleted successfully")
}

func (h *Handler) GetEventAnalytics(c *fiber.Ctx) error {
	eventID := c.Params("eventId")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	analytics, err := h.registrationSvc.GetEventAnalytics(eventID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return utils.Success(c, analytics, "Analytics retrieved successfully")
}

// ExportRegistrations streams the event's registrations as a CSV attachment.
func (h *Handler) ExportRegistrations(c *fiber.Ctx) error {
	eventID := c.Params("eventId")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	filters := &repositories.RegistrationFilters{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
	}

	data, filename, err := h.registrationSvc.ExportRegistrationsCSV(eventID, filters)
	if err != nil {
		return mapServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
