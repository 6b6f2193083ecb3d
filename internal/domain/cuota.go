package domain

import (
	"context"
	"database/sql"
	"time"
)

type EstadoCuota string

const (
	CuotaPendiente EstadoCuota = "Pendiente"
	CuotaPagada    EstadoCuota = "Pagada"
)

// PlanCuotas representa el financiamiento de una venta pagada: un cronograma de
// cuotas con interés, adjunto 1:1 a la venta
type PlanCuotas struct {
	ID          int     `json:"id"`
	VentaID     int     `json:"ventaId"`
	TasaInteres float64 `json:"tasaInteres"`
	Cuotas      []Cuota `json:"cuotas"`
}

// Cuota es un pago programado del plan, con su propio ciclo de vida
// Pendiente → Pagada registrado con el mismo patrón de historial que la venta
type Cuota struct {
	ID               int         `json:"id"`
	PlanID           int         `json:"planId"`
	Monto            float64     `json:"monto"`
	FechaVencimiento time.Time   `json:"fechaVencimiento"`
	Estado           EstadoCuota `json:"estado"`
}

// PlanCuotasRepository define las operaciones con planes de cuotas
type PlanCuotasRepository interface {
	// Create inserta el plan y sus cuotas con la fila inicial de historial
	// Pendiente para cada cuota, en la transacción dada
	Create(ctx context.Context, tx *sql.Tx, plan *PlanCuotas) error
	// GetByVentaID obtiene el plan de una venta, o nil si no existe
	GetByVentaID(ctx context.Context, ventaID int) (*PlanCuotas, error)
	// GetCuota obtiene una cuota con su estado actual
	GetCuota(ctx context.Context, cuotaID int) (*Cuota, error)
	// GetCuotaForUpdate obtiene la cuota bloqueando su fila en la transacción
	GetCuotaForUpdate(ctx context.Context, tx *sql.Tx, cuotaID int) (*Cuota, error)
	// VentaIDDeCuota obtiene el ID de la venta dueña de la cuota
	VentaIDDeCuota(ctx context.Context, cuotaID int) (int, error)
	// TransitionEstado cierra la fila abierta del historial de la cuota e
	// inserta la nueva, dentro de la transacción
	TransitionEstado(ctx context.Context, tx *sql.Tx, cuotaID int, estado EstadoCuota) error
	// RegistrarPago registra el pago de la cuota con el método indicado
	RegistrarPago(ctx context.Context, tx *sql.Tx, cuotaID, metodoPagoID int, monto float64, moneda Moneda) error
}
