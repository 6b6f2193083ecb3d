package application

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

// PaqueteService expone el catálogo de paquetes y la compra atómica de un
// paquete completo: una venta nueva con un item por servicio del combo
type PaqueteService struct {
	txRunner     domain.TxRunner
	paqueteRepo  domain.PaqueteRepository
	ventaRepo    domain.VentaRepository
	servicioRepo domain.ServicioRepository
	clienteRepo  domain.ClienteRepository
	moneda       *MonedaService
}

// NewPaqueteService crea una nueva instancia del servicio de paquetes
func NewPaqueteService(
	txRunner domain.TxRunner,
	paqueteRepo domain.PaqueteRepository,
	ventaRepo domain.VentaRepository,
	servicioRepo domain.ServicioRepository,
	clienteRepo domain.ClienteRepository,
	moneda *MonedaService,
) *PaqueteService {
	return &PaqueteService{
		txRunner:     txRunner,
		paqueteRepo:  paqueteRepo,
		ventaRepo:    ventaRepo,
		servicioRepo: servicioRepo,
		clienteRepo:  clienteRepo,
		moneda:       moneda,
	}
}

// GetAllPaquetes retorna todos los paquetes
func (s *PaqueteService) GetAllPaquetes(ctx context.Context) ([]domain.Paquete, error) {
	return s.paqueteRepo.GetAll(ctx)
}

// GetPaqueteByID obtiene un paquete por su ID
func (s *PaqueteService) GetPaqueteByID(ctx context.Context, id int) (*domain.Paquete, error) {
	paquete, err := s.paqueteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if paquete == nil {
		return nil, domain.NewError(domain.ErrNotFound, "paquete con ID %d no encontrado", id)
	}
	return paquete, nil
}

// BuyPackage compra un paquete completo: valida que haya una fecha de inicio
// por servicio y que el cliente cumpla todas las restricciones del paquete,
// y crea la venta con sus items en una sola transacción. Si cualquier
// precondición falla no queda ninguna venta parcial
func (s *PaqueteService) BuyPackage(
	ctx context.Context,
	sesion *domain.Sesion,
	paqueteID int,
	fechasInicio []time.Time,
) (*domain.Venta, error) {
	if !sesion.EsCliente() {
		return nil, domain.NewError(domain.ErrNotAuthorized, "solo un cliente puede comprar paquetes")
	}

	paquete, err := s.GetPaqueteByID(ctx, paqueteID)
	if err != nil {
		return nil, err
	}

	if len(fechasInicio) != len(paquete.ServicioIDs) {
		return nil, domain.NewError(domain.ErrInvalidInput,
			"el paquete tiene %d servicios pero se recibieron %d fechas de inicio",
			len(paquete.ServicioIDs), len(fechasInicio))
	}

	hoy := time.Now().Truncate(24 * time.Hour)
	for _, fecha := range fechasInicio {
		if fecha.Before(hoy) {
			return nil, domain.NewError(domain.ErrInvalidInput, "las fechas de inicio no pueden estar en el pasado")
		}
	}

	cliente, err := s.clienteRepo.GetByID(ctx, *sesion.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.NewError(domain.ErrNotFound, "cliente con ID %d no encontrado", *sesion.ClienteID)
	}

	for _, restriccion := range paquete.Restricciones {
		cumple, err := restriccion.Cumple(cliente, time.Now())
		if err != nil {
			return nil, domain.WrapError(domain.ErrUnexpected, err, "no se pudo evaluar una restricción del paquete")
		}
		if !cumple {
			return nil, domain.NewError(domain.ErrNotAuthorized,
				"el cliente no cumple la restricción del paquete: %s %s %s",
				restriccion.Atributo, restriccion.Operador, restriccion.Valor)
		}
	}

	venta := &domain.Venta{
		ClienteID: *sesion.ClienteID,
		Estado:    domain.VentaPendiente,
	}
	err = s.txRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		if err := s.ventaRepo.Create(ctx, tx, venta); err != nil {
			return fmt.Errorf("error al crear venta del paquete: %w", err)
		}
		for i, servicioID := range paquete.ServicioIDs {
			item := &domain.ItemItinerario{
				VentaID:     venta.ID,
				ServicioID:  servicioID,
				FechaInicio: fechasInicio[i],
			}
			if err := s.ventaRepo.AddItem(ctx, tx, item); err != nil {
				return fmt.Errorf("error al agregar el servicio %d del paquete: %w", servicioID, err)
			}
		}
		return recalcularTotales(ctx, tx, venta.ID, s.ventaRepo, s.servicioRepo, s.moneda)
	})
	if err != nil {
		return nil, err
	}

	return s.ventaRepo.GetByID(ctx, venta.ID)
}
