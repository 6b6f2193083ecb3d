package application

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/email"
)

// VentaService gobierna el ciclo de vida de las ventas y la mutación de sus
// items de itinerario. Toda lectura-modificación sobre una venta ocurre dentro
// de una transacción que bloquea la fila de la venta, de modo que dos
// mutaciones concurrentes sobre la misma venta se serializan
type VentaService struct {
	txRunner     domain.TxRunner
	ventaRepo    domain.VentaRepository
	servicioRepo domain.ServicioRepository
	clienteRepo  domain.ClienteRepository
	precio       *PrecioService
	moneda       *MonedaService
	emailClient  *email.Client
	logger       *zap.Logger
}

// NewVentaService crea una nueva instancia del servicio de ventas
func NewVentaService(
	txRunner domain.TxRunner,
	ventaRepo domain.VentaRepository,
	servicioRepo domain.ServicioRepository,
	clienteRepo domain.ClienteRepository,
	precio *PrecioService,
	moneda *MonedaService,
	emailClient *email.Client,
	logger *zap.Logger,
) *VentaService {
	return &VentaService{
		txRunner:     txRunner,
		ventaRepo:    ventaRepo,
		servicioRepo: servicioRepo,
		clienteRepo:  clienteRepo,
		precio:       precio,
		moneda:       moneda,
		emailClient:  emailClient,
		logger:       logger,
	}
}

// recalcularTotales reconstruye desde cero los totales de la venta sumando la
// contribución de cada item actual: costo especial si existe, si no el precio
// vivo del servicio, normalizado a la moneda base. La compensación suma el
// monto de compensación del viaje de cada servicio, independiente de la moneda
func recalcularTotales(
	ctx context.Context,
	tx *sql.Tx,
	ventaID int,
	ventaRepo domain.VentaRepository,
	servicioRepo domain.ServicioRepository,
	moneda *MonedaService,
) error {
	items, err := ventaRepo.GetItems(ctx, tx, ventaID)
	if err != nil {
		return fmt.Errorf("error al obtener items de la venta %d: %w", ventaID, err)
	}

	var montoTotal, montoCompensacion float64
	for _, item := range items {
		servicio, err := servicioRepo.GetByID(ctx, item.ServicioID)
		if err != nil {
			return err
		}
		if servicio == nil {
			return domain.NewError(domain.ErrNotFound, "servicio con ID %d no encontrado", item.ServicioID)
		}

		unitario := servicio.Costo
		if item.CostoEspecial != nil {
			unitario = *item.CostoEspecial
		}

		enBase, err := moneda.ToBaseCurrency(ctx, unitario, servicio.Moneda)
		if err != nil {
			return err
		}

		montoTotal += enBase
		montoCompensacion += servicio.MontoCompensacion
	}

	if err := ventaRepo.UpdateTotales(ctx, tx, ventaID, montoTotal, montoCompensacion); err != nil {
		return fmt.Errorf("error al actualizar totales de la venta %d: %w", ventaID, err)
	}
	return nil
}

// CreateVenta crea una nueva venta vacía en estado Pendiente para el cliente.
// Cada llamada crea una venta nueva: un cliente puede mantener varios
// itinerarios en borrador a la vez
func (s *VentaService) CreateVenta(ctx context.Context, sesion *domain.Sesion) (*domain.Venta, error) {
	if !sesion.EsCliente() {
		return nil, domain.NewError(domain.ErrNotAuthorized, "solo un cliente puede crear ventas")
	}

	venta := &domain.Venta{
		ClienteID: *sesion.ClienteID,
		Estado:    domain.VentaPendiente,
	}
	if err := s.ventaRepo.Create(ctx, nil, venta); err != nil {
		return nil, fmt.Errorf("error al crear venta: %w", err)
	}
	return venta, nil
}

// GetVenta obtiene una venta del cliente con sus items
func (s *VentaService) GetVenta(ctx context.Context, sesion *domain.Sesion, ventaID int) (*domain.Venta, error) {
	venta, err := s.ventaRepo.GetByID(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	if venta == nil {
		return nil, domain.NewError(domain.ErrNotFound, "venta con ID %d no encontrada", ventaID)
	}
	if !sesion.EsCliente() || venta.ClienteID != *sesion.ClienteID {
		return nil, domain.NewError(domain.ErrNotAuthorized, "la venta no pertenece al cliente")
	}
	return venta, nil
}

// GetVentasCliente obtiene todas las ventas del cliente de la sesión
func (s *VentaService) GetVentasCliente(ctx context.Context, sesion *domain.Sesion) ([]domain.Venta, error) {
	if !sesion.EsCliente() {
		return nil, domain.NewError(domain.ErrNotAuthorized, "solo un cliente puede listar sus ventas")
	}
	return s.ventaRepo.GetVentasCliente(ctx, *sesion.ClienteID)
}

// GetHistorial obtiene el historial de estados de una venta del cliente
func (s *VentaService) GetHistorial(ctx context.Context, sesion *domain.Sesion, ventaID int) ([]domain.EstadoHistorial, error) {
	if _, err := s.GetVenta(ctx, sesion, ventaID); err != nil {
		return nil, err
	}
	return s.ventaRepo.GetHistorial(ctx, ventaID)
}

// AddItem agrega un item de itinerario a una venta Pendiente del cliente y
// recalcula los totales. Con applyDiscount el precio con descuento vigente se
// congela como costo especial del item; sin applyDiscount el item no guarda
// snapshot y sigue el precio vivo del servicio hasta que la venta se pague
func (s *VentaService) AddItem(
	ctx context.Context,
	sesion *domain.Sesion,
	ventaID, servicioID int,
	fechaInicio time.Time,
	fechaFin *time.Time,
	applyDiscount bool,
) (*domain.ItemItinerario, error) {
	if !sesion.EsCliente() {
		return nil, domain.NewError(domain.ErrNotAuthorized, "solo un cliente puede modificar su itinerario")
	}

	hoy := time.Now().Truncate(24 * time.Hour)
	if fechaInicio.Before(hoy) {
		return nil, domain.NewError(domain.ErrInvalidInput, "la fecha de inicio del servicio no puede estar en el pasado")
	}
	if fechaFin != nil && fechaFin.Before(fechaInicio) {
		return nil, domain.NewError(domain.ErrInvalidInput, "la fecha de fin debe ser posterior a la fecha de inicio")
	}

	precio, err := s.precio.ResolvePrice(ctx, servicioID, applyDiscount)
	if err != nil {
		return nil, err
	}

	item := &domain.ItemItinerario{
		VentaID:     ventaID,
		ServicioID:  servicioID,
		FechaInicio: fechaInicio,
		FechaFin:    fechaFin,
	}
	if applyDiscount && precio.DescuentoAplicado != nil {
		costo := precio.PrecioUnitario
		item.CostoEspecial = &costo
		item.DescuentoID = &precio.DescuentoAplicado.ID
	}

	err = s.txRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		if err := s.ventaPendienteDelCliente(ctx, tx, sesion, ventaID); err != nil {
			return err
		}
		if err := s.ventaRepo.AddItem(ctx, tx, item); err != nil {
			return fmt.Errorf("error al agregar item: %w", err)
		}
		return recalcularTotales(ctx, tx, ventaID, s.ventaRepo, s.servicioRepo, s.moneda)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem elimina un item del itinerario de una venta Pendiente del cliente
// y recalcula los totales
func (s *VentaService) RemoveItem(ctx context.Context, sesion *domain.Sesion, ventaID, itemID int) error {
	if !sesion.EsCliente() {
		return domain.NewError(domain.ErrNotAuthorized, "solo un cliente puede modificar su itinerario")
	}

	item, err := s.ventaRepo.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil || item.VentaID != ventaID {
		return domain.NewError(domain.ErrNotFound, "item con ID %d no encontrado en la venta %d", itemID, ventaID)
	}

	return s.txRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		if err := s.ventaPendienteDelCliente(ctx, tx, sesion, ventaID); err != nil {
			return err
		}
		if err := s.ventaRepo.RemoveItem(ctx, tx, itemID); err != nil {
			return fmt.Errorf("error al eliminar item: %w", err)
		}
		return recalcularTotales(ctx, tx, ventaID, s.ventaRepo, s.servicioRepo, s.moneda)
	})
}

// DeleteVenta elimina definitivamente una venta Pendiente del cliente junto con
// sus items y su historial. Es la vía de escape para carritos abandonados,
// distinta de la cancelación de una venta pagada
func (s *VentaService) DeleteVenta(ctx context.Context, sesion *domain.Sesion, ventaID int) error {
	if !sesion.EsCliente() {
		return domain.NewError(domain.ErrNotAuthorized, "solo un cliente puede eliminar sus ventas")
	}

	return s.txRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		if err := s.ventaPendienteDelCliente(ctx, tx, sesion, ventaID); err != nil {
			return err
		}
		if err := s.ventaRepo.Delete(ctx, tx, ventaID); err != nil {
			return fmt.Errorf("error al eliminar venta: %w", err)
		}
		return nil
	})
}

// MarcarPagada registra el pago de la venta transicionando Pendiente → Pagada.
// El cobro en sí es responsabilidad del colaborador de pagos; aquí solo se
// consuma la transición con la disciplina de historial
func (s *VentaService) MarcarPagada(ctx context.Context, sesion *domain.Sesion, ventaID int) error {
	if !sesion.EsCliente() {
		return domain.NewError(domain.ErrNotAuthorized, "solo un cliente puede pagar sus ventas")
	}

	var venta *domain.Venta
	err := s.txRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		var err error
		venta, err = s.ventaRepo.GetByIDForUpdate(ctx, tx, ventaID)
		if err != nil {
			return err
		}
		if venta == nil {
			return domain.NewError(domain.ErrNotFound, "venta con ID %d no encontrada", ventaID)
		}
		if venta.ClienteID != *sesion.ClienteID {
			return domain.NewError(domain.ErrNotAuthorized, "la venta no pertenece al cliente")
		}
		if !domain.TransicionValida(venta.Estado, domain.VentaPagada) {
			return domain.NewError(domain.ErrInvalidStateTransition,
				"la venta está %s y no puede marcarse como pagada", venta.Estado)
		}
		return s.ventaRepo.TransitionEstado(ctx, tx, ventaID, domain.VentaPagada)
	})
	if err != nil {
		return err
	}

	s.notificarCompra(ctx, venta)
	return nil
}

// PurgeAbandonadas elimina las ventas que siguen Pendiente desde antes del
// corte indicado. Retorna cuántas se eliminaron
func (s *VentaService) PurgeAbandonadas(ctx context.Context, antiguedad time.Duration) (int, error) {
	corte := time.Now().Add(-antiguedad)
	ids, err := s.ventaRepo.VentasPendientesAbandonadas(ctx, corte)
	if err != nil {
		return 0, fmt.Errorf("error al buscar ventas abandonadas: %w", err)
	}

	eliminadas := 0
	for _, id := range ids {
		borrada := false
		err := s.txRunner.RunInTx(ctx, func(tx *sql.Tx) error {
			venta, err := s.ventaRepo.GetByIDForUpdate(ctx, tx, id)
			if err != nil {
				return err
			}
			// Pudo haber cambiado de estado entre la lista y el bloqueo
			if venta == nil || venta.Estado != domain.VentaPendiente {
				return nil
			}
			if err := s.ventaRepo.Delete(ctx, tx, id); err != nil {
				return err
			}
			borrada = true
			return nil
		})
		if err != nil {
			s.logger.Warn("no se pudo eliminar venta abandonada", zap.Int("ventaId", id), zap.Error(err))
			continue
		}
		if borrada {
			eliminadas++
		}
	}
	return eliminadas, nil
}

// ventaPendienteDelCliente bloquea la venta y verifica existencia, propiedad y
// que siga en estado Pendiente, el único que admite mutaciones
func (s *VentaService) ventaPendienteDelCliente(ctx context.Context, tx *sql.Tx, sesion *domain.Sesion, ventaID int) error {
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
	if venta.Estado != domain.VentaPendiente {
		return domain.NewError(domain.ErrInvalidStateTransition,
			"la venta ya no está pendiente; cambie su estado primero")
	}
	return nil
}

// notificarCompra envía el correo de confirmación de compra. Cualquier fallo se
// registra sin propagarse: la transición ya fue confirmada
func (s *VentaService) notificarCompra(ctx context.Context, venta *domain.Venta) {
	if s.emailClient == nil || venta == nil {
		return
	}

	cliente, err := s.clienteRepo.GetByID(ctx, venta.ClienteID)
	if err != nil || cliente == nil || cliente.Email == "" {
		s.logger.Warn("no se pudo obtener el email del cliente para notificar compra",
			zap.Int("ventaId", venta.ID), zap.Error(err))
		return
	}

	info := email.VentaInfo{
		ID:                venta.ID,
		MontoTotal:        venta.MontoTotal,
		MontoCompensacion: venta.MontoCompensacion,
		Fecha:             time.Now(),
	}
	if err := s.emailClient.SendCompraConfirmacion(cliente.Email, info); err != nil {
		s.logger.Warn("error al enviar correo de confirmación de compra",
			zap.Int("ventaId", venta.ID), zap.Error(err))
	}
}
