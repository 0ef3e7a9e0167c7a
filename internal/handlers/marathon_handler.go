package handlers

import (
	"strconv"

	"zenith-backend/internal/middleware"
	"zenith-backend/internal/repositories"
	"zenith-backend/internal/services"
	"zenith-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RegisterMarathonRequest struct {
	Name                  string `json:"name" validate:"required"`
	Email                 string `json:"email" validate:"required,email"`
	Phone                 string `json:"phone" validate:"required"`
	Age                   int    `json:"age" validate:"required,gte=10,lte=100"`
	Gender                string `json:"gender" validate:"required,oneof=male female other"`
	Category              string `json:"category" validate:"required,oneof=5k 10k half full"`
	Institution           string `json:"institution"`
	City                  string `json:"city"`
	EmergencyContactName  string `json:"emergency_contact_name" validate:"required"`
	EmergencyContactPhone string `json:"emergency_contact_phone" validate:"required"`
	BloodGroup            string `json:"blood_group"`
	TShirtSize            string `json:"t_shirt_size" validate:"omitempty,oneof=XS S M L XL XXL"`
}

func (h *Handler) RegisterMarathon(c *fiber.Ctx) error {
	var req RegisterMarathonRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	entry, err := h.marathonSvc.RegisterMarathon(services.RegisterMarathonRequest{
		Name:                  req.Name,
		Email:                 req.Email,
		Phone:                 req.Phone,
		Age:                   req.Age,
		Gender:                req.Gender,
		Category:              req.Category,
		Institution:           req.Institution,
		City:                  req.City,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		BloodGroup:            req.BloodGroup,
		TShirtSize:            req.TShirtSize,
	}, requestContext(c))
	if err != nil {
		return mapServiceError(c, err)
	}

	return utils.Success(c, entry, "Marathon registration successful", fiber.StatusCreated)
}

func (h *Handler) ListMarathons(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	filters := &repositories.MarathonFilters{
		Category:      c.Query("category"),
		Gender:        c.Query("gender"),
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		Search:        c.Query("search"),
	}

	entries, total, totalPages, err := h.marathonSvc.ListMarathons(page, pageSize, filters)
	if err != nil {
		return utils.Error(c, "Failed to fetch marathon registrations", fiber.StatusInternalServerError)
	}

	meta := &utils.Meta{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPages,
	}

	return utils.SuccessWithMeta(c, entries, meta, "Marathon registrations retrieved successfully")
}

func (h *Handler) GetMarathonStats(c *fiber.Ctx) error {
	stats, err := h.marathonSvc.GetStats()
	if err != nil {
		return utils.Error(c, "Failed to fetch marathon stats", fiber.StatusInternalServerError)
	}

	return utils.Success(c, stats, "Marathon stats retrieved successfully")
}

type UpdateMarathonRequest struct {
	Status        string `json:"status" validate:"omitempty,oneof=pending confirmed cancelled waitlist"`
	PaymentStatus string `json:"payment_status" validate:"omitempty,oneof=pending completed failed not_required"`
}

func (h *Handler) UpdateMarathon(c *fiber.Ctx) error {
	entryID := c.Params("id")
	if _, err := uuid.Parse(entryID); err != nil {
		return utils.Error(c, "Invalid marathon registration ID", fiber.StatusBadRequest)
	}

	var req UpdateMarathonRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	entry, err := h.marathonSvc.UpdateMarathon(entryID, req.Status, req.PaymentStatus)
	if err != nil {
		return mapServiceError(c, err)
	}

	return utils.Success(c, entry, "Marathon registration updated successfully")
}

func (h *Handler) DeleteMarathon(c *fiber.Ctx) error {
	entryID := c.Params("id")
	if _, err := uuid.Parse(entryID); err != nil {
		return utils.Error(c, "Invalid marathon registration ID", fiber.StatusBadRequest)
	}

	if err := h.marathonSvc.DeleteMarathon(entryID); err != nil {
		return mapServiceError(c, err)
	}

	return utils.Success(c, nil, "Marathon registration deleted successfully")
}

func (h *Handler) ExportMarathons(c *fiber.Ctx) error {
	filters := &repositories.MarathonFilters{
		Category: c.Query("category"),
		Status:   c.Query("status"),
	}

	data, filename, err := h.marathonSvc.ExportMarathonsCSV(filters)
	if err != nil {
		return utils.Error(c, "Failed to export marathon registrations", fiber.StatusInternalServerError)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
