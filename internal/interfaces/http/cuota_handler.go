package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/application"
	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

// CrearPlanRequest representa el payload para crear un plan de cuotas
type CrearPlanRequest struct {
	TasaInteres float64             `json:"tasaInteres"`
	Cronograma  []CuotaInputRequest `json:"cronograma"`
}

// CuotaInputRequest es una cuota del cronograma propuesto
type CuotaInputRequest struct {
	Monto            float64 `json:"monto"`
	FechaVencimiento string  `json:"fechaVencimiento"`
}

// PagarCuotaRequest representa el payload para pagar una cuota
type PagarCuotaRequest struct {
	Monto        float64 `json:"monto"`
	Moneda       string  `json:"moneda"`
	MetodoPagoID int     `json:"metodoPagoId"`
}

type CuotaHandler struct {
	service *application.CuotaService
}

func NewCuotaHandler(service *application.CuotaService) *CuotaHandler {
	return &CuotaHandler{
		service: service,
	}
}

// CrearPlan crea el plan de cuotas de una venta pagada
func (h *CuotaHandler) CrearPlan(c *fiber.Ctx) error {
	ventaID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}
	var req CrearPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos"})
	}

	cronograma := make([]application.CuotaInput, 0, len(req.Cronograma))
	for _, cuota := range req.Cronograma {
		vencimiento, err := application.ParseFecha(cuota.FechaVencimiento, "fechaVencimiento")
		if err != nil {
			return handleError(c, err)
		}
		cronograma = append(cronograma, application.CuotaInput{
			Monto:            cuota.Monto,
			FechaVencimiento: vencimiento,
		})
	}

	plan, err := h.service.CreatePlan(c.Context(), sesionDe(c), ventaID, req.TasaInteres, cronograma)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

// GetPlan obtiene el plan de cuotas de una venta
func (h *CuotaHandler) GetPlan(c *fiber.Ctx) error {
	ventaID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}
	plan, err := h.service.GetPlan(c.Context(), sesionDe(c), ventaID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(plan)
}

// Pagar registra el pago exacto de una cuota pendiente
func (h *CuotaHandler) Pagar(c *fiber.Ctx) error {
	cuotaID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}
	var req PagarCuotaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos"})
	}

	moneda := domain.Moneda(req.Moneda)
	if moneda == "" {
		moneda = domain.MonedaBase
	}

	if err := h.service.PayInstallment(c.Context(), sesionDe(c), cuotaID, req.Monto, req.MetodoPagoID, moneda); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
