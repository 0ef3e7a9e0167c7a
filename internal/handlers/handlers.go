package handlers

import (
	"errors"

	"zenith-backend/internal/config"
	"zenith-backend/internal/middleware"
	"zenith-backend/internal/services"
	"zenith-backend/internal/utils"
	"zenith-backend/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	authSvc         *services.AuthService
	eventSvc        *services.EventService
	registrationSvc *services.RegistrationService
	marathonSvc     *services.MarathonService
	mediaSvc        *services.MediaService
	cfg             *config.Config
}

func NewHandler(
	authSvc *services.AuthService,
	eventSvc *services.EventService,
	registrationSvc *services.RegistrationService,
	marathonSvc *services.MarathonService,
	mediaSvc *services.MediaService,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authSvc:         authSvc,
		eventSvc:        eventSvc,
		registrationSvc: registrationSvc,
		marathonSvc:     marathonSvc,
		mediaSvc:        mediaSvc,
		cfg:             cfg,
	}
}

func (h *Handler) RegisterRoutes(router fiber.Router) {
	auth := router.Group("/auth")
	{
		auth.Post("/login", middleware.LoginRateLimiter(), h.Login)
		auth.Get("/profile", middleware.JWTMiddleware(h.cfg), h.GetProfile)
		auth.Put("/change-password", middleware.JWTMiddleware(h.cfg), h.ChangePassword)
	}

	events := router.Group("/events")
	{
		events.Get("/", middleware.OptionalJWT(h.cfg), h.ListEvents)
		events.Get("/:id", h.GetEvent)

		protected := events.Group("", middleware.JWTMiddleware(h.cfg))
		protected.Post("/", h.CreateEvent)
		protected.Put("/:id", h.UpdateEvent)
		protected.Delete("/:id", h.DeleteEvent)
		protected.Patch("/:id/toggle-status", h.ToggleEventStatus)
	}

	registrations := router.Group("/registrations")
	{
		registrations.Post("/", middleware.IntakeRateLimiter(), h.CreateRegistration)

		protected := registrations.Group("", middleware.JWTMiddleware(h.cfg))
		protected.Get("/", h.ListRegistrations)
		protected.Get("/event/:eventId/analytics", h.GetEventAnalytics)
		protected.Get("/event/:eventId/export", h.ExportRegistrations)
		protected.Get("/:id", h.GetRegistration)
		protected.Put("/:id", h.UpdateRegistration)
		protected.Delete("/:id", h.DeleteRegistration)
	}

	marathon := router.Group("/marathon")
	{
		marathon.Post("/register", middleware.IntakeRateLimiter(), h.RegisterMarathon)

		protected := marathon.Group("", middleware.JWTMiddleware(h.cfg))
		protected.Get("/", h.ListMarathons)
		protected.Get("/stats", h.GetMarathonStats)
		protected.Get("/export", h.ExportMarathons)
		protected.Put("/:id", h.UpdateMarathon)
		protected.Delete("/:id", h.DeleteMarathon)
	}

	media := router.Group("/media")
	{
		media.Get("/", middleware.OptionalJWT(h.cfg), h.GetAllMedia)

		protected := media.Group("", middleware.JWTMiddleware(h.cfg))
		protected.Post("/upload", h.UploadMedia)
		protected.Put("/reorder", h.ReorderMedia)
		protected.Patch("/:id/toggle", h.ToggleMediaStatus)
		protected.Delete("/:id", h.DeleteMedia)
	}

	admin := router.Group("/admin", middleware.JWTMiddleware(h.cfg))
	{
		admin.Get("/stats", h.GetDashboardStats)
		admin.Get("/admins", middleware.AdminOrAbove, h.ListAdmins)
		admin.Post("/admins", middleware.SuperAdminOnly, h.CreateAdmin)
		admin.Delete("/admins/:id", middleware.SuperAdminOnly, h.DeleteAdmin)
	}
}

// ErrorHandler handles global errors
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code >= 500 {
		logger.WithField("path", c.Path()).Error(err.Error())
	}

	return utils.Error(c, message, code)
}

// mapServiceError translates service errors onto the HTTP surface. Duplicate
// conflicts and category conflicts carry a reference to the existing resource.
func mapServiceError(c *fiber.Ctx, err error) error {
	var dup *services.DuplicateRegistrationError
	if errors.As(err, &dup) {
		data := fiber.Map{}
		if dup.RegistrationNumber != "" {
			data["registration_number"] = dup.RegistrationNumber
		}
		return utils.ErrorWithData(c, "Already registered", data, fiber.StatusBadRequest)
	}

	var conflict *services.CategoryConflictError
	if errors.As(err, &conflict) {
		return utils.ErrorWithData(c, err.Error(), fiber.Map{
			"event_id":   conflict.EventID,
			"event_name": conflict.EventName,
		}, fiber.StatusBadRequest)
	}

	switch {
	case errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrRegistrationNotFound),
		errors.Is(err, services.ErrMarathonNotFound),
		errors.Is(err, services.ErrMediaNotFound),
		errors.Is(err, services.ErrAdminNotFound):
		return utils.Error(c, err.Error(), fiber.StatusNotFound)
	case errors.Is(err, services.ErrInvalidCredentials):
		return utils.Error(c, err.Error(), fiber.StatusUnauthorized)
	case errors.Is(err, services.ErrAccountDeactivated):
		return utils.Error(c, err.Error(), fiber.StatusForbidden)
	default:
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}
}

func requestContext(c *fiber.Ctx) services.RequestContext {
	return services.RequestContext{
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}
}
