package domain

import (
	"context"
	"database/sql"
	"time"
)

// Reembolso registra la devolución del monto de una venta pagada. A lo sumo
// existe uno por venta
type Reembolso struct {
	ID               int       `json:"id"`
	VentaID          int       `json:"ventaId"`
	MontoOriginal    float64   `json:"montoOriginal"`
	Penalizacion     float64   `json:"penalizacion"`
	MontoReembolsado float64   `json:"montoReembolsado"`
	Fecha            time.Time `json:"fecha"`
}

// ReembolsoRepository define las operaciones con reembolsos
type ReembolsoRepository interface {
	// Create inserta el reembolso dentro de la transacción de la venta
	Create(ctx context.Context, tx *sql.Tx, reembolso *Reembolso) error
	// GetByVentaID obtiene el reembolso de una venta, o nil si no existe
	GetByVentaID(ctx context.Context, ventaID int) (*Reembolso, error)
	// ExistsForVenta verifica dentro de la transacción si la venta ya tiene reembolso
	ExistsForVenta(ctx context.Context, tx *sql.Tx, ventaID int) (bool, error)
}
