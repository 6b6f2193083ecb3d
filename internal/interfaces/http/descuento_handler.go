package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/application"
	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

// DescuentoRequest representa el payload para crear un descuento
type DescuentoRequest struct {
	ServicioID      int     `json:"servicioId"`
	Porcentaje      float64 `json:"porcentaje"`
	FechaExpiracion string  `json:"fechaExpiracion"`
}

type DescuentoHandler struct {
	service *application.PrecioService
}

func NewDescuentoHandler(service *application.PrecioService) *DescuentoHandler {
	return &DescuentoHandler{
		service: service,
	}
}

// Create crea un descuento para un servicio del proveedor
func (h *DescuentoHandler) Create(c *fiber.Ctx) error {
	var req DescuentoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos"})
	}

	expiracion, err := application.ParseFechaOpcional(req.FechaExpiracion, "fechaExpiracion")
	if err != nil {
		return handleError(c, err)
	}

	descuento := &domain.Descuento{
		ServicioID:      req.ServicioID,
		Porcentaje:      req.Porcentaje,
		FechaExpiracion: expiracion,
	}
	if err := h.service.CreateDescuento(c.Context(), sesionDe(c), descuento); err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(descuento)
}

// GetByServicio lista los descuentos de un servicio
func (h *DescuentoHandler) GetByServicio(c *fiber.Ctx) error {
	servicioID, err := c.ParamsInt("servicioId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}
	descuentos, err := h.service.GetDescuentosServicio(c.Context(), servicioID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(descuentos)
}

// GetPrecio resuelve el precio efectivo de un servicio con el descuento vigente
func (h *DescuentoHandler) GetPrecio(c *fiber.Ctx) error {
	servicioID, err := c.ParamsInt("servicioId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}
	conDescuento := c.QueryBool("descuento", true)

	precio, err := h.service.ResolvePrice(c.Context(), servicioID, conDescuento)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(precio)
}

// Delete elimina un descuento y repara las ventas pendientes afectadas
func (h *DescuentoHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}
	if err := h.service.DeleteDescuento(c.Context(), sesionDe(c), id); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
