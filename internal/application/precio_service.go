package application

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

// PrecioResuelto es el resultado de resolver el precio efectivo de un servicio
type PrecioResuelto struct {
	PrecioUnitario    float64           `json:"precioUnitario"`
	DescuentoAplicado *domain.Descuento `json:"descuentoAplicado,omitempty"`
}

// PrecioService resuelve precios efectivos aplicando el descuento activo de
// mayor porcentaje, y mantiene la integridad de las ventas pendientes cuando
// un descuento se elimina
type PrecioService struct {
	txRunner      domain.TxRunner
	descuentoRepo domain.DescuentoRepository
	servicioRepo  domain.ServicioRepository
	ventaRepo     domain.VentaRepository
	moneda        *MonedaService
}

// NewPrecioService crea una nueva instancia del servicio de precios
func NewPrecioService(
	txRunner domain.TxRunner,
	descuentoRepo domain.DescuentoRepository,
	servicioRepo domain.ServicioRepository,
	ventaRepo domain.VentaRepository,
	moneda *MonedaService,
) *PrecioService {
	return &PrecioService{
		txRunner:      txRunner,
		descuentoRepo: descuentoRepo,
		servicioRepo:  servicioRepo,
		ventaRepo:     ventaRepo,
		moneda:        moneda,
	}
}

// PrecioConDescuento aplica el porcentaje al precio base con redondeo entero:
// los precios no manejan fracciones de unidad monetaria
func PrecioConDescuento(precioBase, porcentaje float64) float64 {
	return math.Round(precioBase * (1 - porcentaje/100))
}

// DescuentoActivo elige entre los descuentos del servicio el vigente de mayor
// porcentaje; en empate gana el creado más recientemente. Retorna nil si no
// hay ninguno vigente
func DescuentoActivo(descuentos []domain.Descuento, hoy time.Time) *domain.Descuento {
	var ganador *domain.Descuento
	for i := range descuentos {
		d := &descuentos[i]
		if !d.Activo(hoy) {
			continue
		}
		if ganador == nil ||
			d.Porcentaje > ganador.Porcentaje ||
			(d.Porcentaje == ganador.Porcentaje && d.FechaCreacion.After(ganador.FechaCreacion)) {
			ganador = d
		}
	}
	return ganador
}

// ResolvePrice obtiene el precio unitario efectivo del servicio. Con
// wantDiscount en falso se retorna el precio de lista sin considerar descuentos
func (s *PrecioService) ResolvePrice(ctx context.Context, servicioID int, wantDiscount bool) (*PrecioResuelto, error) {
	servicio, err := s.servicioRepo.GetByID(ctx, servicioID)
	if err != nil {
		return nil, err
	}
	if servicio == nil {
		return nil, domain.NewError(domain.ErrNotFound, "servicio con ID %d no encontrado", servicioID)
	}

	if !wantDiscount {
		return &PrecioResuelto{PrecioUnitario: servicio.Costo}, nil
	}

	descuentos, err := s.descuentoRepo.GetByServicio(ctx, servicioID)
	if err != nil {
		return nil, fmt.Errorf("error al obtener descuentos del servicio %d: %w", servicioID, err)
	}

	activo := DescuentoActivo(descuentos, time.Now())
	if activo == nil {
		return &PrecioResuelto{PrecioUnitario: servicio.Costo}, nil
	}

	return &PrecioResuelto{
		PrecioUnitario:    PrecioConDescuento(servicio.Costo, activo.Porcentaje),
		DescuentoAplicado: activo,
	}, nil
}

// CreateDescuento crea un descuento para un servicio del proveedor
func (s *PrecioService) CreateDescuento(ctx context.Context, sesion *domain.Sesion, descuento *domain.Descuento) error {
	if !sesion.EsProveedor() {
		return domain.NewError(domain.ErrNotAuthorized, "solo un proveedor puede crear descuentos")
	}
	if descuento.Porcentaje < 0 || descuento.Porcentaje > 100 {
		return domain.NewError(domain.ErrInvalidInput, "el porcentaje de descuento debe estar entre 0 y 100")
	}

	servicio, err := s.servicioRepo.GetByID(ctx, descuento.ServicioID)
	if err != nil {
		return err
	}
	if servicio == nil {
		return domain.NewError(domain.ErrNotFound, "servicio con ID %d no encontrado", descuento.ServicioID)
	}
	if servicio.ProveedorID == nil || *servicio.ProveedorID != *sesion.ProveedorID {
		return domain.NewError(domain.ErrNotAuthorized, "el servicio no pertenece al proveedor")
	}

	descuento.FechaCreacion = time.Now()
	if err := s.descuentoRepo.Create(ctx, descuento); err != nil {
		return fmt.Errorf("error al crear descuento: %w", err)
	}
	return nil
}

// GetDescuentosServicio obtiene los descuentos de un servicio
func (s *PrecioService) GetDescuentosServicio(ctx context.Context, servicioID int) ([]domain.Descuento, error) {
	return s.descuentoRepo.GetByServicio(ctx, servicioID)
}

// DeleteDescuento elimina un descuento y repara las ventas pendientes que
// capturaron su efecto: limpia los costos especiales ligados al descuento y
// recalcula desde cero los totales de cada venta afectada. Todo ocurre en una
// sola transacción; omitir la reparación dejaría totales silenciosamente
// incorrectos
func (s *PrecioService) DeleteDescuento(ctx context.Context, sesion *domain.Sesion, descuentoID int) error {
	if !sesion.EsProveedor() {
		return domain.NewError(domain.ErrNotAuthorized, "solo un proveedor puede eliminar descuentos")
	}

	descuento, err := s.descuentoRepo.GetByID(ctx, descuentoID)
	if err != nil {
		return err
	}
	if descuento == nil {
		return domain.NewError(domain.ErrNotFound, "descuento con ID %d no encontrado", descuentoID)
	}

	servicio, err := s.servicioRepo.GetByID(ctx, descuento.ServicioID)
	if err != nil {
		return err
	}
	if servicio == nil || servicio.ProveedorID == nil || *servicio.ProveedorID != *sesion.ProveedorID {
		return domain.NewError(domain.ErrNotAuthorized, "el descuento no pertenece a un servicio del proveedor")
	}

	return s.txRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		afectadas, err := s.ventaRepo.VentasPendientesConDescuento(ctx, tx, descuentoID)
		if err != nil {
			return fmt.Errorf("error al buscar ventas afectadas por el descuento: %w", err)
		}

		for _, ventaID := range afectadas {
			// Bloquear la venta antes de reescribir sus items y totales
			venta, err := s.ventaRepo.GetByIDForUpdate(ctx, tx, ventaID)
			if err != nil {
				return err
			}
			// El estado pudo cambiar entre el listado y el bloqueo; una venta que
			// dejó de estar pendiente conserva su snapshot intacto
			if venta == nil || venta.Estado != domain.VentaPendiente {
				continue
			}
			if err := s.ventaRepo.ClearCostoEspecial(ctx, tx, ventaID, descuentoID); err != nil {
				return fmt.Errorf("error al limpiar costos especiales de la venta %d: %w", ventaID, err)
			}
			if err := recalcularTotales(ctx, tx, ventaID, s.ventaRepo, s.servicioRepo, s.moneda); err != nil {
				return err
			}
		}

		if err := s.descuentoRepo.Delete(ctx, tx, descuentoID); err != nil {
			return fmt.Errorf("error al eliminar descuento: %w", err)
		}
		return nil
	})
}
