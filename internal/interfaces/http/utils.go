package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

// statusOf traduce la clasificación de un error de negocio a su código HTTP
func statusOf(kind domain.ErrorKind) int {
	switch kind {
	case domain.ErrInvalidInput, domain.ErrInvalidStateTransition:
		return fiber.StatusBadRequest
	case domain.ErrNotAuthenticated:
		return fiber.StatusUnauthorized
	case domain.ErrNotAuthorized:
		return fiber.StatusForbidden
	case domain.ErrNotFound:
		return fiber.StatusNotFound
	case domain.ErrConflictAlreadyExists:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// handleError responde el error de negocio con su código HTTP y un cuerpo
// uniforme. Los errores no clasificados nunca exponen texto interno
func handleError(c *fiber.Ctx, err error) error {
	kind := domain.KindOf(err)
	return c.Status(statusOf(kind)).JSON(fiber.Map{
		"error": fiber.Map{
			"kind":    kind,
			"message": domain.MessageOf(err),
		},
	})
}

// sesionDe obtiene la sesión que el middleware de autenticación dejó en el
// contexto de la petición
func sesionDe(c *fiber.Ctx) *domain.Sesion {
	sesion, _ := c.Locals(sesionLocalKey).(*domain.Sesion)
	return sesion
}
