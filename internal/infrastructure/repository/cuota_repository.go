package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

type planCuotasRepository struct {
	db *sql.DB
}

// NewPlanCuotasRepository crea una nueva instancia del repositorio de planes de cuotas
func NewPlanCuotasRepository(db *sql.DB) domain.PlanCuotasRepository {
	return &planCuotasRepository{db: db}
}

// Create inserta el plan, sus cuotas y la fila inicial de historial Pendiente
// de cada cuota, todo dentro de la transacción dada
func (r *planCuotasRepository) Create(ctx context.Context, tx *sql.Tx, plan *domain.PlanCuotas) error {
	err := tx.QueryRowContext(
		ctx,
		`INSERT INTO installment_plan (sale_id, interest_rate) VALUES ($1, $2) RETURNING plan_id`,
		plan.VentaID,
		plan.TasaInteres,
	).Scan(&plan.ID)
	if err != nil {
		return fmt.Errorf("error al crear plan de cuotas: %w", err)
	}

	for i := range plan.Cuotas {
		cuota := &plan.Cuotas[i]
		err := tx.QueryRowContext(
			ctx,
			`INSERT INTO installment (plan_id, amount, due_date) VALUES ($1, $2, $3) RETURNING installment_id`,
			plan.ID,
			cuota.Monto,
			cuota.FechaVencimiento,
		).Scan(&cuota.ID)
		if err != nil {
			return fmt.Errorf("error al crear cuota: %w", err)
		}
		cuota.PlanID = plan.ID
		cuota.Estado = domain.CuotaPendiente

		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO installment_status (installment_id, status, start_date, end_date) VALUES ($1, $2, NOW(), NULL)`,
			cuota.ID,
			domain.CuotaPendiente,
		)
		if err != nil {
			return fmt.Errorf("error al crear estado inicial de la cuota: %w", err)
		}
	}
	return nil
}

const cuotaSelect = `
	SELECT
		i.installment_id,
		i.plan_id,
		i.amount,
		i.due_date,
		ist.status
	FROM installment i
	INNER JOIN installment_status ist ON ist.installment_id = i.installment_id AND ist.end_date IS NULL
`

// GetByVentaID obtiene el plan de una venta con sus cuotas. Retorna nil si no
// existe
func (r *planCuotasRepository) GetByVentaID(ctx context.Context, ventaID int) (*domain.PlanCuotas, error) {
	plan := &domain.PlanCuotas{}
	err := r.db.QueryRowContext(
		ctx,
		`SELECT plan_id, sale_id, interest_rate FROM installment_plan WHERE sale_id = $1`,
		ventaID,
	).Scan(&plan.ID, &plan.VentaID, &plan.TasaInteres)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al obtener plan de cuotas: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, cuotaSelect+` WHERE i.plan_id = $1 ORDER BY i.due_date`, plan.ID)
	if err != nil {
		return nil, fmt.Errorf("error al obtener cuotas del plan: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cuota domain.Cuota
		err := rows.Scan(&cuota.ID, &cuota.PlanID, &cuota.Monto, &cuota.FechaVencimiento, &cuota.Estado)
		if err != nil {
			return nil, fmt.Errorf("error al escanear cuota: %w", err)
		}
		plan.Cuotas = append(plan.Cuotas, cuota)
	}
	return plan, rows.Err()
}

// GetCuota obtiene una cuota con su estado actual. Retorna nil si no existe
func (r *planCuotasRepository) GetCuota(ctx context.Context, cuotaID int) (*domain.Cuota, error) {
	return r.scanCuota(r.db.QueryRowContext(ctx, cuotaSelect+` WHERE i.installment_id = $1`, cuotaID))
}

// GetCuotaForUpdate obtiene la cuota bloqueando su fila en la transacción
func (r *planCuotasRepository) GetCuotaForUpdate(ctx context.Context, tx *sql.Tx, cuotaID int) (*domain.Cuota, error) {
	query := cuotaSelect + ` WHERE i.installment_id = $1 FOR UPDATE OF i`
	return r.scanCuota(tx.QueryRowContext(ctx, query, cuotaID))
}

func (r *planCuotasRepository) scanCuota(row *sql.Row) (*domain.Cuota, error) {
	cuota := &domain.Cuota{}
	err := row.Scan(&cuota.ID, &cuota.PlanID, &cuota.Monto, &cuota.FechaVencimiento, &cuota.Estado)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al obtener cuota: %w", err)
	}
	return cuota, nil
}

// VentaIDDeCuota obtiene el ID de la venta dueña de la cuota. Retorna 0 si la
// cuota no existe
func (r *planCuotasRepository) VentaIDDeCuota(ctx context.Context, cuotaID int) (int, error) {
	var ventaID int
	query := `
		SELECT p.sale_id
		FROM installment i
		INNER JOIN installment_plan p ON p.plan_id = i.plan_id
		WHERE i.installment_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, cuotaID).Scan(&ventaID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("error al obtener la venta de la cuota: %w", err)
	}
	return ventaID, nil
}

// TransitionEstado cierra la fila abierta del historial de la cuota e inserta
// la nueva, con la misma disciplina que el historial de la venta
func (r *planCuotasRepository) TransitionEstado(ctx context.Context, tx *sql.Tx, cuotaID int, estado domain.EstadoCuota) error {
	result, err := tx.ExecContext(
		ctx,
		`UPDATE installment_status SET end_date = NOW() WHERE installment_id = $1 AND end_date IS NULL`,
		cuotaID,
	)
	if err != nil {
		return fmt.Errorf("error al cerrar el estado actual de la cuota: %w", err)
	}
	cerradas, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar filas afectadas: %w", err)
	}
	if cerradas != 1 {
		return fmt.Errorf("la cuota %d tenía %d estados abiertos en lugar de 1", cuotaID, cerradas)
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO installment_status (installment_id, status, start_date, end_date) VALUES ($1, $2, NOW(), NULL)`,
		cuotaID,
		estado,
	)
	if err != nil {
		return fmt.Errorf("error al insertar el nuevo estado de la cuota: %w", err)
	}
	return nil
}

// RegistrarPago registra el pago de la cuota con el método indicado
func (r *planCuotasRepository) RegistrarPago(ctx context.Context, tx *sql.Tx, cuotaID, metodoPagoID int, monto float64, moneda domain.Moneda) error {
	_, err := tx.ExecContext(
		ctx,
		`INSERT INTO installment_payment (installment_id, payment_method_id, amount, currency, paid_at) VALUES ($1, $2, $3, $4, NOW())`,
		cuotaID,
		metodoPagoID,
		monto,
		moneda,
	)
	if err != nil {
		return fmt.Errorf("error al registrar pago de la cuota: %w", err)
	}
	return nil
}
