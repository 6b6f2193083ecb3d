package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/application"
	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

// ReclamoRequest representa el payload para crear un reclamo
type ReclamoRequest struct {
	ItemID      int    `json:"itemId"`
	Titulo      string `json:"titulo"`
	Descripcion string `json:"descripcion"`
}

// ReclamoEstadoRequest representa el payload para avanzar el estado de un reclamo
type ReclamoEstadoRequest struct {
	Estado string `json:"estado"`
}

type ReclamoHandler struct {
	service *application.ReclamoService
}

func NewReclamoHandler(service *application.ReclamoService) *ReclamoHandler {
	return &ReclamoHandler{
		service: service,
	}
}

// Create crea un reclamo sobre un item del itinerario del cliente
func (h *ReclamoHandler) Create(c *fiber.Ctx) error {
	var req ReclamoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos"})
	}
	reclamo, err := h.service.CreateReclamo(c.Context(), sesionDe(c), req.ItemID, req.Titulo, req.Descripcion)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reclamo)
}

// UpdateEstado avanza el estado del reclamo
func (h *ReclamoHandler) UpdateEstado(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}
	var req ReclamoEstadoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos"})
	}
	if err := h.service.UpdateEstado(c.Context(), sesionDe(c), id, domain.EstadoReclamo(req.Estado)); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
