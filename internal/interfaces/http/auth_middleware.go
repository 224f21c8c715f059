package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Vitrina-api/internal/application/dto"
	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/pkg/jwt"
)

// Locals keys para TenantID y Snapshot en Fiber.
const (
	LocalTenantID = "tenant_id"
	LocalSnapshot = "entitlement_snapshot"
)

// AuthMiddleware valida el Bearer Token JWT y extrae TenantID y el snapshot
// de entitlement a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		tenantID, snap, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalTenantID, tenantID)
		c.Locals(LocalSnapshot, snap)
		return c.Next()
	}
}

// GetTenantID devuelve el TenantID del contexto (después del middleware de auth).
func GetTenantID(c *fiber.Ctx) string {
	v := c.Locals(LocalTenantID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetScope construye el Scope del tenant autenticado. Error si no hay tenant
// en el contexto (ruta mal registrada, sin AuthMiddleware).
func GetScope(c *fiber.Ctx) (domain.Scope, error) {
	return domain.NewScope(GetTenantID(c))
}

// GetSnapshot devuelve el snapshot de entitlement del token.
func GetSnapshot(c *fiber.Ctx) jwt.Snapshot {
	v := c.Locals(LocalSnapshot)
	if v == nil {
		return jwt.Snapshot{}
	}
	s, _ := v.(jwt.Snapshot)
	return s
}
