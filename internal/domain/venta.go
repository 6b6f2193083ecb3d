package domain

import (
	"context"
	"database/sql"
	"time"
)

type EstadoVenta string

const (
	VentaPendiente   EstadoVenta = "Pendiente"
	VentaPagada      EstadoVenta = "Pagada"
	VentaReembolsada EstadoVenta = "Reembolsada"
	VentaCancelada   EstadoVenta = "Cancelada"
)

// TransicionValida indica si el cambio de estado es uno de los permitidos por
// el ciclo de vida de la venta: Pendiente → Pagada → {Reembolsada, Cancelada}.
// Un carrito pendiente no transiciona a Cancelada: se elimina
func TransicionValida(desde, hacia EstadoVenta) bool {
	switch desde {
	case VentaPendiente:
		return hacia == VentaPagada
	case VentaPagada:
		return hacia == VentaReembolsada || hacia == VentaCancelada
	}
	return false
}

// Venta representa el carrito/orden de un cliente con sus items de itinerario
type Venta struct {
	ID                int              `json:"id"`
	ClienteID         int              `json:"clienteId"`
	MontoTotal        float64          `json:"montoTotal"`
	MontoCompensacion float64          `json:"montoCompensacion"`
	Estado            EstadoVenta      `json:"estado"`
	FechaEstado       time.Time        `json:"fechaEstado"`
	Items             []ItemItinerario `json:"items"`
}

// EstadoHistorial es una fila del historial de estados. La fila con FechaFin
// nula es el estado actual; debe existir exactamente una por venta
type EstadoHistorial struct {
	Estado      string     `json:"estado"`
	FechaInicio time.Time  `json:"fechaInicio"`
	FechaFin    *time.Time `json:"fechaFin,omitempty"`
}

// ItemItinerario representa una línea de la venta: un servicio agendado en una
// fecha, con un costo especial opcional que congela el precio con descuento
type ItemItinerario struct {
	ID            int        `json:"id"`
	VentaID       int        `json:"ventaId"`
	ServicioID    int        `json:"servicioId"`
	CostoEspecial *float64   `json:"costoEspecial,omitempty"`
	DescuentoID   *int       `json:"descuentoId,omitempty"`
	FechaInicio   time.Time  `json:"fechaInicio"`
	FechaFin      *time.Time `json:"fechaFin,omitempty"`
}

// VentaRepository define las operaciones de persistencia de ventas. Los métodos
// que reciben una transacción participan de la sección crítica sobre la fila de
// la venta; el resto son lecturas sueltas
type VentaRepository interface {
	// Create inserta la venta con sus totales en cero y la fila inicial del
	// historial en estado Pendiente. Con tx nula opera fuera de transacción
	Create(ctx context.Context, tx *sql.Tx, venta *Venta) error
	// GetByID obtiene una venta con su estado actual y sus items
	GetByID(ctx context.Context, id int) (*Venta, error)
	// GetByIDForUpdate obtiene la venta bloqueando su fila dentro de la transacción
	GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id int) (*Venta, error)
	// GetVentasCliente obtiene todas las ventas de un cliente
	GetVentasCliente(ctx context.Context, clienteID int) ([]Venta, error)
	// GetHistorial obtiene el historial completo de estados de una venta
	GetHistorial(ctx context.Context, ventaID int) ([]EstadoHistorial, error)
	// UpdateTotales sobrescribe los totales de la venta
	UpdateTotales(ctx context.Context, tx *sql.Tx, id int, montoTotal, montoCompensacion float64) error
	// TransitionEstado cierra la fila abierta del historial e inserta la nueva,
	// ambas dentro de la transacción
	TransitionEstado(ctx context.Context, tx *sql.Tx, id int, estado EstadoVenta) error
	// Delete elimina la venta en cascada: items, historial y la venta misma
	Delete(ctx context.Context, tx *sql.Tx, id int) error

	// AddItem inserta un item de itinerario
	AddItem(ctx context.Context, tx *sql.Tx, item *ItemItinerario) error
	// RemoveItem elimina un item de itinerario
	RemoveItem(ctx context.Context, tx *sql.Tx, itemID int) error
	// GetItem obtiene un item por su ID
	GetItem(ctx context.Context, itemID int) (*ItemItinerario, error)
	// GetItems obtiene los items actuales de una venta; con tx lee dentro de la
	// sección crítica
	GetItems(ctx context.Context, tx *sql.Tx, ventaID int) ([]ItemItinerario, error)

	// VentasPendientesConDescuento obtiene los IDs de ventas Pendiente con algún
	// item cuyo costo especial proviene del descuento indicado
	VentasPendientesConDescuento(ctx context.Context, tx *sql.Tx, descuentoID int) ([]int, error)
	// ClearCostoEspecial limpia el costo especial de los items de la venta
	// ligados al descuento indicado
	ClearCostoEspecial(ctx context.Context, tx *sql.Tx, ventaID, descuentoID int) error
	// VentasPendientesAbandonadas obtiene los IDs de ventas que siguen Pendiente
	// desde antes de la fecha de corte
	VentasPendientesAbandonadas(ctx context.Context, corte time.Time) ([]int, error)
}
