package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/application"
)

// ResenaRequest representa el payload para crear una reseña
type ResenaRequest struct {
	ItemID       int    `json:"itemId"`
	Calificacion int    `json:"calificacion"`
	Comentario   string `json:"comentario"`
}

type ResenaHandler struct {
	service *application.ResenaService
}

func NewResenaHandler(service *application.ResenaService) *ResenaHandler {
	return &ResenaHandler{
		service: service,
	}
}

// Create crea la reseña de un item del itinerario del cliente
func (h *ResenaHandler) Create(c *fiber.Ctx) error {
	var req ResenaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos"})
	}
	resena, err := h.service.CreateResena(c.Context(), sesionDe(c), req.ItemID, req.Calificacion, req.Comentario)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resena)
}

// GetByServicio lista las reseñas de todos los items de un servicio
func (h *ResenaHandler) GetByServicio(c *fiber.Ctx) error {
	servicioID, err := c.ParamsInt("servicioId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}
	resenas, err := h.service.GetResenasServicio(c.Context(), servicioID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resenas)
}
