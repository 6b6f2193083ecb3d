package application

import (
	"context"
	"fmt"
	"time"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

// ResenaService administra las reseñas de los clientes sobre items de su
// itinerario, a lo sumo una por item
type ResenaService struct {
	resenaRepo domain.ResenaRepository
	ventaRepo  domain.VentaRepository
}

// NewResenaService crea una nueva instancia del servicio de reseñas
func NewResenaService(resenaRepo domain.ResenaRepository, ventaRepo domain.VentaRepository) *ResenaService {
	return &ResenaService{resenaRepo: resenaRepo, ventaRepo: ventaRepo}
}

// CreateResena crea la reseña de un item de una venta del cliente
func (s *ResenaService) CreateResena(ctx context.Context, sesion *domain.Sesion, itemID, calificacion int, comentario string) (*domain.Resena, error) {
	if !sesion.EsCliente() {
		return nil, domain.NewError(domain.ErrNotAuthorized, "solo un cliente puede crear reseñas")
	}
	if calificacion < 1 || calificacion > 5 {
		return nil, domain.NewError(domain.ErrInvalidInput, "la calificación debe estar entre 1 y 5")
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

	existe, err := s.resenaRepo.ExistsForItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, domain.NewError(domain.ErrConflictAlreadyExists, "el item %d ya tiene una reseña", itemID)
	}

	resena := &domain.Resena{
		ItemID:       itemID,
		ClienteID:    *sesion.ClienteID,
		Calificacion: calificacion,
		Comentario:   comentario,
		Fecha:        time.Now(),
	}
	if err := s.resenaRepo.Create(ctx, resena); err != nil {
		return nil, fmt.Errorf("error al crear reseña: %w", err)
	}
	return resena, nil
}

// GetResenasServicio obtiene las reseñas de todos los items de un servicio
func (s *ResenaService) GetResenasServicio(ctx context.Context, servicioID int) ([]domain.Resena, error) {
	return s.resenaRepo.GetByServicio(ctx, servicioID)
}
