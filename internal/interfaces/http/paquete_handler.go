package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/application"
)

// ComprarPaqueteRequest representa el payload para comprar un paquete: una
// fecha de inicio por servicio del combo, en el mismo orden
type ComprarPaqueteRequest struct {
	FechasInicio []string `json:"fechasInicio"`
}

type PaqueteHandler struct {
	service *application.PaqueteService
}

func NewPaqueteHandler(service *application.PaqueteService) *PaqueteHandler {
	return &PaqueteHandler{
		service: service,
	}
}

// GetAllPaquetes lista los paquetes del catálogo
func (h *PaqueteHandler) GetAllPaquetes(c *fiber.Ctx) error {
	paquetes, err := h.service.GetAllPaquetes(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(paquetes)
}

// GetPaqueteByID obtiene un paquete con sus servicios y restricciones
func (h *PaqueteHandler) GetPaqueteByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}
	paquete, err := h.service.GetPaqueteByID(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(paquete)
}

// Comprar compra el paquete completo como una venta nueva
func (h *PaqueteHandler) Comprar(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}
	var req ComprarPaqueteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos"})
	}

	fechas := make([]time.Time, 0, len(req.FechasInicio))
	for _, valor := range req.FechasInicio {
		fecha, err := application.ParseFecha(valor, "fechasInicio")
		if err != nil {
			return handleError(c, err)
		}
		fechas = append(fechas, fecha)
	}

	venta, err := h.service.BuyPackage(c.Context(), sesionDe(c), id, fechas)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(venta)
}
