package domain

import (
	"context"
	"database/sql"
	"time"
)

// Descuento representa una rebaja porcentual sobre un servicio, con expiración
// opcional (nula = nunca expira)
type Descuento struct {
	ID              int        `json:"id"`
	ServicioID      int        `json:"servicioId"`
	Porcentaje      float64    `json:"porcentaje"`
	FechaExpiracion *time.Time `json:"fechaExpiracion,omitempty"`
	FechaCreacion   time.Time  `json:"fechaCreacion"`
}

// Activo indica si el descuento está vigente a la fecha dada. Un descuento que
// expira hoy sigue activo; uno que expiró ayer no
func (d *Descuento) Activo(hoy time.Time) bool {
	if d.FechaExpiracion == nil {
		return true
	}
	exp := d.FechaExpiracion.Truncate(24 * time.Hour)
	return !exp.Before(hoy.Truncate(24 * time.Hour))
}

// DescuentoRepository define las operaciones con descuentos
type DescuentoRepository interface {
	// Create crea un nuevo descuento
	Create(ctx context.Context, descuento *Descuento) error
	// GetByID obtiene un descuento por su ID
	GetByID(ctx context.Context, id int) (*Descuento, error)
	// GetByServicio obtiene todos los descuentos de un servicio
	GetByServicio(ctx context.Context, servicioID int) ([]Descuento, error)
	// Delete elimina el descuento dentro de la transacción de la cascada de
	// integridad sobre las ventas pendientes
	Delete(ctx context.Context, tx *sql.Tx, id int) error
}
