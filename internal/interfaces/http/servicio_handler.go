package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/application"
	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

// ServicioRequest representa el payload para crear/editar servicios
type ServicioRequest struct {
	Nombre            string  `json:"nombre"`
	Descripcion       string  `json:"descripcion"`
	Costo             float64 `json:"costo"`
	Moneda            string  `json:"moneda"`
	Millas            int     `json:"millas"`
	TipoServicio      string  `json:"tipoServicio"`
	MontoCompensacion float64 `json:"montoCompensacion"`
	LugarID           *int    `json:"lugarId"`
}

type ServicioHandler struct {
	service *application.ServicioService
}

func NewServicioHandler(service *application.ServicioService) *ServicioHandler {
	return &ServicioHandler{
		service: service,
	}
}

// GetAllServices lista los servicios activos del catálogo
func (h *ServicioHandler) GetAllServices(c *fiber.Ctx) error {
	servicios, err := h.service.GetAllServices(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(servicios)
}

// GetServicioByID obtiene un servicio por su ID
func (h *ServicioHandler) GetServicioByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}
	servicio, err := h.service.GetServicioByID(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(servicio)
}

// CreateService crea un servicio del proveedor de la sesión
func (h *ServicioHandler) CreateService(c *fiber.Ctx) error {
	var req ServicioRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos"})
	}
	servicio := &domain.Servicio{
		Nombre:            req.Nombre,
		Descripcion:       req.Descripcion,
		Costo:             req.Costo,
		Moneda:            domain.Moneda(req.Moneda),
		Millas:            req.Millas,
		TipoServicio:      req.TipoServicio,
		MontoCompensacion: req.MontoCompensacion,
		LugarID:           req.LugarID,
	}
	if servicio.Moneda == "" {
		servicio.Moneda = domain.MonedaBase
	}
	if err := h.service.CreateService(c.Context(), sesionDe(c), servicio); err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(servicio)
}

// UpdateService actualiza un servicio del proveedor de la sesión
func (h *ServicioHandler) UpdateService(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}
	var req ServicioRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos"})
	}
	servicio := &domain.Servicio{
		ID:                id,
		Nombre:            req.Nombre,
		Descripcion:       req.Descripcion,
		Costo:             req.Costo,
		Moneda:            domain.Moneda(req.Moneda),
		Millas:            req.Millas,
		TipoServicio:      req.TipoServicio,
		MontoCompensacion: req.MontoCompensacion,
		LugarID:           req.LugarID,
	}
	if err := h.service.UpdateService(c.Context(), sesionDe(c), servicio); err != nil {
		return handleError(c, err)
	}
	return c.JSON(servicio)
}

// DeleteService realiza la eliminación lógica de un servicio
func (h *ServicioHandler) DeleteService(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}
	if err := h.service.DeleteService(c.Context(), sesionDe(c), id); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadImagen sube la imagen del servicio y guarda su URL
func (h *ServicioHandler) UploadImagen(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}

	fileHeader, err := c.FormFile("imagen")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Se requiere el archivo 'imagen'"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No se pudo leer el archivo"})
	}

	url, err := h.service.UploadImagen(c.Context(), sesionDe(c), id, file, fileHeader)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(fiber.Map{"url": url})
}
