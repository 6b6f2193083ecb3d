package domain

import (
	"context"
	"database/sql"
	"time"
)

type EstadoReclamo string

const (
	ReclamoAbierto   EstadoReclamo = "Abierto"
	ReclamoEnProceso EstadoReclamo = "EnProceso"
	ReclamoResuelto  EstadoReclamo = "Resuelto"
)

// TransicionReclamoValida indica si el cambio de estado del reclamo es válido:
// Abierto → EnProceso → Resuelto (Abierto → Resuelto también se permite)
func TransicionReclamoValida(desde, hacia EstadoReclamo) bool {
	switch desde {
	case ReclamoAbierto:
		return hacia == ReclamoEnProceso || hacia == ReclamoResuelto
	case ReclamoEnProceso:
		return hacia == ReclamoResuelto
	}
	return false
}

// Reclamo representa una queja del cliente sobre un item de su itinerario,
// con historial de estados análogo al de la venta
type Reclamo struct {
	ID          int           `json:"id"`
	ItemID      int           `json:"itemId"`
	ClienteID   int           `json:"clienteId"`
	Titulo      string        `json:"titulo"`
	Descripcion string        `json:"descripcion"`
	Estado      EstadoReclamo `json:"estado"`
	Fecha       time.Time     `json:"fecha"`
}

// ReclamoRepository define las operaciones con reclamos
type ReclamoRepository interface {
	// Create inserta el reclamo con su fila inicial de historial Abierto
	Create(ctx context.Context, reclamo *Reclamo) error
	// GetByID obtiene un reclamo con su estado actual
	GetByID(ctx context.Context, id int) (*Reclamo, error)
	// TransitionEstado cierra la fila abierta del historial e inserta la nueva
	TransitionEstado(ctx context.Context, tx *sql.Tx, id int, estado EstadoReclamo) error
}
