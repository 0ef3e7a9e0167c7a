package handlers

import (
	"zenith-backend/internal/middleware"
	"zenith-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type CreateAdminRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=super_admin admin moderator"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// Login authenticates an admin by username or email and issues a bearer token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	loginResp, err := h.authSvc.Authenticate(req.Username, req.Password)
	if err != nil {
		return mapServiceError(c, err)
	}

	return utils.Success(c, loginResp, "Login successful")
}

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	adminID, err := middleware.GetAdminIDFromContext(c)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnauthorized)
	}

	admin, err := h.authSvc.GetAdminProfile(adminID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return utils.Success(c, admin, "Profile retrieved successfully")
}

func (h *Handler) ChangePassword(c *fiber.Ctx) error {
	adminID, err := middleware.GetAdminIDFromContext(c)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnauthorized)
	}

	var req ChangePasswordRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	if err := h.authSvc.ChangePassword(adminID, req.CurrentPassword, req.NewPassword); err != nil {
		return mapServiceError(c, err)
	}

	return utils.Success(c, nil, "Password changed successfully")
}

// CreateAdmin is restricted to super admins.
func (h *Handler) CreateAdmin(c *fiber.Ctx) error {
	var req CreateAdminRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	admin, err := h.authSvc.CreateAdmin(req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		return mapServiceError(c, err)
	}

	return utils.Success(c, admin, "Admin created successfully", fiber.StatusCreated)
}

func (h *Handler) ListAdmins(c *fiber.Ctx) error {
	admins, err := h.authSvc.ListAdmins()
	if err != nil {
		return utils.Error(c, "Failed to fetch admins", fiber.StatusInternalServerError)
	}

	return utils.Success(c, admins, "Admins retrieved successfully")
}

// DeleteAdmin refuses self-deletion.
func (h *Handler) DeleteAdmin(c *fiber.Ctx) error {
	targetID := c.Params("id")
	if _, err := uuid.Parse(targetID); err != nil {
		return utils.Error(c, "Invalid admin ID", fiber.StatusBadRequest)
	}

	callerID, err := middleware.GetAdminIDFromContext(c)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnauthorized)
	}

	if err := h.authSvc.DeleteAdmin(targetID, callerID); err != nil {
		return mapServiceError(c, err)
	}

	return utils.Success(c, nil, "Admin deleted successfully")
}

func (h *Handler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.authSvc.GetDashboardStats()
	if err != nil {
		return utils.Error(c, "Failed to fetch stats", fiber.StatusInternalServerError)
	}

	return utils.Success(c, stats, "Stats retrieved successfully")
}
