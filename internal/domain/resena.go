package domain

import (
	"context"
	"time"
)

// Resena representa la reseña de un cliente sobre un item de su itinerario.
// A lo sumo una por item
type Resena struct {
	ID           int       `json:"id"`
	ItemID       int       `json:"itemId"`
	ClienteID    int       `json:"clienteId"`
	Calificacion int       `json:"calificacion"` // 1 a 5
	Comentario   string    `json:"comentario"`
	Fecha        time.Time `json:"fecha"`
}

// ResenaRepository define las operaciones con reseñas
type ResenaRepository interface {
	// Create inserta la reseña
	Create(ctx context.Context, resena *Resena) error
	// ExistsForItem verifica si el item ya tiene reseña
	ExistsForItem(ctx context.Context, itemID int) (bool, error)
	// GetByServicio obtiene las reseñas de todos los items de un servicio
	GetByServicio(ctx context.Context, servicioID int) ([]Resena, error)
}
