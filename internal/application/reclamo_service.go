package application

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

// ReclamoService administra los reclamos de los clientes sobre items de su
// itinerario
type ReclamoService struct {
	txRunner    domain.TxRunner
	reclamoRepo domain.ReclamoRepository
	ventaRepo   domain.VentaRepository
}

// NewReclamoService crea una nueva instancia del servicio de reclamos
func NewReclamoService(txRunner domain.TxRunner, reclamoRepo domain.ReclamoRepository, ventaRepo domain.VentaRepository) *ReclamoService {
	return &ReclamoService{txRunner: txRunner, reclamoRepo: reclamoRepo, ventaRepo: ventaRepo}
}

// CreateReclamo crea un reclamo sobre un item de una venta del cliente
func (s *ReclamoService) CreateReclamo(ctx context.Context, sesion *domain.Sesion, itemID int, titulo, descripcion string) (*domain.Reclamo, error) {
	if !sesion.EsCliente() {
		return nil, domain.NewError(domain.ErrNotAuthorized, "solo un cliente puede crear reclamos")
	}
	if titulo == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "el título del reclamo es requerido")
	}

	item, err := s.ventaRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NewError(domain.ErrNotFound, "item con ID %d no encontrado", itemID)
	}
	venta, err := s.ventaRepo.GetByID(ctx, item.VentaID)
	if err != nil {
		return nil, err
	}
	if venta == nil || venta.ClienteID != *sesion.ClienteID {
		return nil, domain.NewError(domain.ErrNotAuthorized, "el item no pertenece a una venta del cliente")
	}

	reclamo := &domain.Reclamo{
		ItemID:      itemID,
		ClienteID:   *sesion.ClienteID,
		Titulo:      titulo,
		Descripcion: descripcion,
		Estado:      domain.ReclamoAbierto,
		Fecha:       time.Now(),
	}
	if err := s.reclamoRepo.Create(ctx, reclamo); err != nil {
		return nil, fmt.Errorf("error al crear reclamo: %w", err)
	}
	return reclamo, nil
}

// UpdateEstado avanza el estado de un reclamo con la misma disciplina de
// historial que la venta: cerrar la fila abierta e insertar la nueva
func (s *ReclamoService) UpdateEstado(ctx context.Context, sesion *domain.Sesion, reclamoID int, estado domain.EstadoReclamo) error {
	reclamo, err := s.reclamoRepo.GetByID(ctx, reclamoID)
	if err != nil {
		return err
	}
	if reclamo == nil {
		return domain.NewError(domain.ErrNotFound, "reclamo con ID %d no encontrado", reclamoID)
	}
	// El cliente dueño puede resolver su propio reclamo; el resto de cambios
	// queda para el personal administrativo
	switch {
	case sesion.EsCliente():
		if reclamo.ClienteID != *sesion.ClienteID {
			return domain.NewError(domain.ErrNotAuthorized, "el reclamo no pertenece al cliente")
		}
	case !sesion.EsAdministrador():
		return domain.NewError(domain.ErrNotAuthorized, "solo el personal administrativo puede gestionar reclamos de otros")
	}
	if !domain.TransicionReclamoValida(reclamo.Estado, estado) {
		return domain.NewError(domain.ErrInvalidStateTransition,
			"el reclamo está %s y no puede pasar a %s", reclamo.Estado, estado)
	}

	return s.txRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		return s.reclamoRepo.TransitionEstado(ctx, tx, reclamoID, estado)
	})
}
