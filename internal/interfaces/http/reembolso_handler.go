package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/application"
)

// ReembolsoRequest representa el payload para ejecutar un reembolso
type ReembolsoRequest struct {
	CancelacionVoluntaria bool `json:"cancelacionVoluntaria"`
}

type ReembolsoHandler struct {
	service *application.ReembolsoService
}

func NewReembolsoHandler(service *application.ReembolsoService) *ReembolsoHandler {
	return &ReembolsoHandler{
		service: service,
	}
}

// Calcular calcula el reembolso de una venta pagada sin ejecutarlo
func (h *ReembolsoHandler) Calcular(c *fiber.Ctx) error {
	ventaID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}
	voluntaria := c.QueryBool("voluntaria")

	calculo, err := h.service.CalculateRefund(c.Context(), sesionDe(c), ventaID, voluntaria)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(calculo)
}

// Ejecutar ejecuta el reembolso y lleva la venta a su estado terminal
func (h *ReembolsoHandler) Ejecutar(c *fiber.Ctx) error {
	ventaID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}
	var req ReembolsoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos"})
	}

	reembolso, err := h.service.ExecuteRefund(c.Context(), sesionDe(c), ventaID, req.CancelacionVoluntaria)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reembolso)
}
