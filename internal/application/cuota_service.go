package application

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

// ToleranciaCuadreCuotas es la diferencia máxima de redondeo admitida entre la
// suma de las cuotas y el total financiado de la venta
const ToleranciaCuadreCuotas = 1.0

// CuotaInput es una cuota del cronograma propuesto al crear un plan
type CuotaInput struct {
	Monto            float64   `json:"monto"`
	FechaVencimiento time.Time `json:"fechaVencimiento"`
}

// CuotaService administra los planes de financiamiento de ventas pagadas y el
// pago de sus cuotas
type CuotaService struct {
	txRunner       domain.TxRunner
	planRepo       domain.PlanCuotasRepository
	ventaRepo      domain.VentaRepository
	metodoPagoRepo domain.MetodoPagoRepository
	moneda         *MonedaService
}

// NewCuotaService crea una nueva instancia del servicio de cuotas
func NewCuotaService(
	txRunner domain.TxRunner,
	planRepo domain.PlanCuotasRepository,
	ventaRepo domain.VentaRepository,
	metodoPagoRepo domain.MetodoPagoRepository,
	moneda *MonedaService,
) *CuotaService {
	return &CuotaService{
		txRunner:       txRunner,
		planRepo:       planRepo,
		ventaRepo:      ventaRepo,
		metodoPagoRepo: metodoPagoRepo,
		moneda:         moneda,
	}
}

// CreatePlan crea el plan de cuotas de una venta pagada del cliente. La suma
// del cronograma debe cuadrar con el total financiado (total de la venta más
// el interés) dentro de la tolerancia de redondeo
func (s *CuotaService) CreatePlan(
	ctx context.Context,
	sesion *domain.Sesion,
	ventaID int,
	tasaInteres float64,
	cronograma []CuotaInput,
) (*domain.PlanCuotas, error) {
	if !sesion.EsCliente() {
		return nil, domain.NewError(domain.ErrNotAuthorized, "solo un cliente puede financiar sus ventas")
	}
	if tasaInteres < 0 {
		return nil, domain.NewError(domain.ErrInvalidInput, "la tasa de interés no puede ser negativa")
	}
	if len(cronograma) == 0 {
		return nil, domain.NewError(domain.ErrInvalidInput, "el cronograma debe tener al menos una cuota")
	}
	for i, c := range cronograma {
		if c.Monto <= 0 {
			return nil, domain.NewError(domain.ErrInvalidInput, "el monto de la cuota %d debe ser mayor a 0", i+1)
		}
	}

	plan := &domain.PlanCuotas{
		VentaID:     ventaID,
		TasaInteres: tasaInteres,
	}
	for _, c := range cronograma {
		plan.Cuotas = append(plan.Cuotas, domain.Cuota{
			Monto:            c.Monto,
			FechaVencimiento: c.FechaVencimiento,
			Estado:           domain.CuotaPendiente,
		})
	}

	err := s.txRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		venta, err := s.ventaRepo.GetByIDForUpdate(ctx, tx, ventaID)
		if err != nil {
			return err
		}
		if venta == nil {
			return domain.NewError(domain.ErrNotFound, "venta con ID %d no encontrada", ventaID)
		}
		if venta.ClienteID != *sesion.ClienteID {
			return domain.NewError(domain.ErrNotAuthorized, "la venta no pertenece al cliente")
		}
		if venta.Estado != domain.VentaPagada {
			return domain.NewError(domain.ErrInvalidStateTransition,
				"la venta está %s; solo una venta pagada puede financiarse", venta.Estado)
		}

		existente, err := s.planRepo.GetByVentaID(ctx, ventaID)
		if err != nil {
			return err
		}
		if existente != nil {
			return domain.NewError(domain.ErrConflictAlreadyExists, "la venta %d ya tiene un plan de cuotas", ventaID)
		}

		financiado := venta.MontoTotal * (1 + tasaInteres/100)
		var suma float64
		for _, c := range plan.Cuotas {
			suma += c.Monto
		}
		if math.Abs(suma-financiado) > ToleranciaCuadreCuotas {
			return domain.NewError(domain.ErrInvalidInput,
				"el cronograma suma %.2f pero el total financiado es %.2f", suma, financiado)
		}

		if err := s.planRepo.Create(ctx, tx, plan); err != nil {
			return fmt.Errorf("error al crear plan de cuotas: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// GetPlan obtiene el plan de cuotas de una venta del cliente
func (s *CuotaService) GetPlan(ctx context.Context, sesion *domain.Sesion, ventaID int) (*domain.PlanCuotas, error) {
	if !sesion.EsCliente() {
		return nil, domain.NewError(domain.ErrNotAuthorized, "solo un cliente puede consultar sus planes")
	}
	venta, err := s.ventaRepo.GetByID(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	if venta == nil {
		return nil, domain.NewError(domain.ErrNotFound, "venta con ID %d no encontrada", ventaID)
	}
	if venta.ClienteID != *sesion.ClienteID {
		return nil, domain.NewError(domain.ErrNotAuthorized, "la venta no pertenece al cliente")
	}

	plan, err := s.planRepo.GetByVentaID(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.NewError(domain.ErrNotFound, "la venta %d no tiene plan de cuotas", ventaID)
	}
	return plan, nil
}

// PayInstallment paga una cuota pendiente. El monto debe coincidir exactamente
// con el monto programado de la cuota: no se admiten pagos parciales ni
// sobrepagos. El método de pago debe pertenecer al cliente que paga
func (s *CuotaService) PayInstallment(
	ctx context.Context,
	sesion *domain.Sesion,
	cuotaID int,
	monto float64,
	metodoPagoID int,
	moneda domain.Moneda,
) error {
	if !sesion.EsCliente() {
		return domain.NewError(domain.ErrNotAuthorized, "solo un cliente puede pagar cuotas")
	}

	ventaID, err := s.planRepo.VentaIDDeCuota(ctx, cuotaID)
	if err != nil {
		return err
	}
	if ventaID == 0 {
		return domain.NewError(domain.ErrNotFound, "cuota con ID %d no encontrada", cuotaID)
	}

	metodo, err := s.metodoPagoRepo.GetByID(ctx, metodoPagoID)
	if err != nil {
		return err
	}
	if metodo == nil {
		return domain.NewError(domain.ErrNotFound, "método de pago con ID %d no encontrado", metodoPagoID)
	}
	if metodo.ClienteID != *sesion.ClienteID {
		return domain.NewError(domain.ErrNotAuthorized, "el método de pago no pertenece al cliente")
	}

	montoEnBase, err := s.moneda.ToBaseCurrency(ctx, monto, moneda)
	if err != nil {
		return err
	}

	return s.txRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		venta, err := s.ventaRepo.GetByIDForUpdate(ctx, tx, ventaID)
		if err != nil {
			return err
		}
		if venta == nil {
			return domain.NewError(domain.ErrNotFound, "venta con ID %d no encontrada", ventaID)
		}
		if venta.ClienteID != *sesion.ClienteID {
			return domain.NewError(domain.ErrNotAuthorized, "la cuota no pertenece a una venta del cliente")
		}
		if venta.Estado != domain.VentaPagada {
			return domain.NewError(domain.ErrInvalidStateTransition,
				"la venta está %s y sus cuotas no admiten pagos", venta.Estado)
		}

		cuota, err := s.planRepo.GetCuotaForUpdate(ctx, tx, cuotaID)
		if err != nil {
			return err
		}
		if cuota == nil {
			return domain.NewError(domain.ErrNotFound, "cuota con ID %d no encontrada", cuotaID)
		}
		if cuota.Estado != domain.CuotaPendiente {
			return domain.NewError(domain.ErrInvalidStateTransition, "la cuota %d ya fue pagada", cuotaID)
		}
		if montoEnBase != cuota.Monto {
			return domain.NewError(domain.ErrInvalidInput,
				"el monto recibido (%.2f) no coincide con el monto programado de la cuota (%.2f)",
				montoEnBase, cuota.Monto)
		}

		if err := s.planRepo.RegistrarPago(ctx, tx, cuotaID, metodoPagoID, montoEnBase, domain.MonedaBase); err != nil {
			return fmt.Errorf("error al registrar pago de la cuota: %w", err)
		}
		if err := s.planRepo.TransitionEstado(ctx, tx, cuotaID, domain.CuotaPagada); err != nil {
			return fmt.Errorf("error al actualizar el estado de la cuota: %w", err)
		}
		return nil
	})
}
