package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/application"
)

// AddItemRequest representa el payload para agregar un item al itinerario
type AddItemRequest struct {
	ServicioID      int    `json:"servicioId"`
	FechaInicio     string `json:"fechaInicio"`
	FechaFin        string `json:"fechaFin"`
	AplicaDescuento bool   `json:"aplicaDescuento"`
}

type VentaHandler struct {
	service *application.VentaService
}

func NewVentaHandler(service *application.VentaService) *VentaHandler {
	return &VentaHandler{
		service: service,
	}
}

// CreateVenta crea una venta vacía en estado Pendiente
func (h *VentaHandler) CreateVenta(c *fiber.Ctx) error {
	venta, err := h.service.CreateVenta(c.Context(), sesionDe(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(venta)
}

// GetVenta obtiene una venta del cliente con sus items
func (h *VentaHandler) GetVenta(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}
	venta, err := h.service.GetVenta(c.Context(), sesionDe(c), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(venta)
}

// GetVentasCliente lista las ventas del cliente de la sesión
func (h *VentaHandler) GetVentasCliente(c *fiber.Ctx) error {
	ventas, err := h.service.GetVentasCliente(c.Context(), sesionDe(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(ventas)
}

// GetHistorial obtiene el historial de estados de una venta
func (h *VentaHandler) GetHistorial(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}
	historial, err := h.service.GetHistorial(c.Context(), sesionDe(c), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(historial)
}

// AddItem agrega un item de itinerario a la venta
func (h *VentaHandler) AddItem(c *fiber.Ctx) error {
	ventaID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos"})
	}

	fechaInicio, err := application.ParseFecha(req.FechaInicio, "fechaInicio")
	if err != nil {
		return handleError(c, err)
	}
	fechaFin, err := application.ParseFechaOpcional(req.FechaFin, "fechaFin")
	if err != nil {
		return handleError(c, err)
	}

	item, err := h.service.AddItem(c.Context(), sesionDe(c), ventaID, req.ServicioID, fechaInicio, fechaFin, req.AplicaDescuento)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// RemoveItem elimina un item del itinerario de la venta
func (h *VentaHandler) RemoveItem(c *fiber.Ctx) error {
	ventaID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}
	itemID, err := c.ParamsInt("itemId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de item inválido"})
	}
	if err := h.service.RemoveItem(c.Context(), sesionDe(c), ventaID, itemID); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteVenta elimina definitivamente una venta pendiente
func (h *VentaHandler) DeleteVenta(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}
	if err := h.service.DeleteVenta(c.Context(), sesionDe(c), id); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Pagar marca la venta como pagada
func (h *VentaHandler) Pagar(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}
	if err := h.service.MarcarPagada(c.Context(), sesionDe(c), id); err != nil {
		return handleError(c, err)
	}
	venta, err := h.service.GetVenta(c.Context(), sesionDe(c), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(venta)
}
