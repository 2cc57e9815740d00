package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Optica-api/internal/application/dto"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
)

// RequirePermission corta la petición si el operador del token no tiene el permiso.
// El rol admin pasa siempre. Debe usarse DESPUÉS de AuthMiddleware.
//
// Los casos de uso vuelven a verificar el permiso; este middleware solo evita
// trabajo inútil en rutas que lo exigen siempre.
func RequirePermission(perm entity.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := GetActor(c)
		if actor.UserID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "usuario no encontrado en el token",
			})
		}
		if !actor.Can(perm) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_DENIED",
				Message: "se requiere el permiso '" + string(perm) + "'",
			})
		}
		return c.Next()
	}
}
