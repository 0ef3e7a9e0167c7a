package middleware

import (
	"zenith-backend/internal/config"
	"zenith-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
)

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(cfg.JWTSecret),
		ContextKey:   "jwt",
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token := c.Locals("jwt").(*jwt.Token)
			claims := token.Claims.(jwt.MapClaims)
			c.Locals("admin_id", claims["admin_id"])
			c.Locals("admin_role", claims["role"])
			return c.Next()
		},
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	return utils.Error(c, "Unauthorized", fiber.StatusUnauthorized)
}

// OptionalJWT parses a bearer token when one is present and exposes the admin
// claims, but lets unauthenticated requests through. Used on public listing
// routes whose responses widen for admins.
func OptionalJWT(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		ContextKey: "jwt",
		SuccessHandler: func(c *fiber.Ctx) error {
			token := c.Locals("jwt").(*jwt.Token)
			claims := token.Claims.(jwt.MapClaims)
			c.Locals("admin_id", claims["admin_id"])
			c.Locals("admin_role", claims["role"])
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return c.Next()
		},
	})
}

func SuperAdminOnly(c *fiber.Ctx) error {
	role, ok := c.Locals("admin_role").(string)
	if !ok || role != "super_admin" {
		return utils.Error(c, "Super admin access required", fiber.StatusForbidden)
	}
	return c.Next()
}

func AdminOrAbove(c *fiber.Ctx) error {
	role, ok := c.Locals("admin_role").(string)
	if !ok || (role != "super_admin" && role != "admin") {
		return utils.Error(c, "Admin access required", fiber.StatusForbidden)
	}
	return c.Next()
}

func GetAdminIDFromContext(c *fiber.Ctx) (string, error) {
	adminID, ok := c.Locals("admin_id").(string)
	if !ok || adminID == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Admin not authenticated")
	}
	return adminID, nil
}
