package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

type reembolsoRepository struct {
	db *sql.DB
}

// NewReembolsoRepository crea una nueva instancia del repositorio de reembolsos
func NewReembolsoRepository(db *sql.DB) domain.ReembolsoRepository {
	return &reembolsoRepository{db: db}
}

// Create inserta el reembolso dentro de la transacción de la venta
func (r *reembolsoRepository) Create(ctx context.Context, tx *sql.Tx, reembolso *domain.Reembolso) error {
	query := `
		INSERT INTO refund (sale_id, original_amount, penalty, refunded_amount, refund_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING refund_id
	`
	err := tx.QueryRowContext(
		ctx,
		query,
		reembolso.VentaID,
		reembolso.MontoOriginal,
		reembolso.Penalizacion,
		reembolso.MontoReembolsado,
		reembolso.Fecha,
	).Scan(&reembolso.ID)
	if err != nil {
		return fmt.Errorf("error al crear reembolso: %w", err)
	}
	return nil
}

// GetByVentaID obtiene el reembolso de una venta. Retorna nil si no existe
func (r *reembolsoRepository) GetByVentaID(ctx context.Context, ventaID int) (*domain.Reembolso, error) {
	reembolso := &domain.Reembolso{}
	query := `
		SELECT refund_id, sale_id, original_amount, penalty, refunded_amount, refund_date
		FROM refund
		WHERE sale_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, ventaID).Scan(
		&reembolso.ID,
		&reembolso.VentaID,
		&reembolso.MontoOriginal,
		&reembolso.Penalizacion,
		&reembolso.MontoReembolsado,
		&reembolso.Fecha,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al obtener reembolso: %w", err)
	}
	return reembolso, nil
}

// ExistsForVenta verifica dentro de la transacción si la venta ya tiene
// reembolso
func (r *reembolsoRepository) ExistsForVenta(ctx context.Context, tx *sql.Tx, ventaID int) (bool, error) {
	var existe bool
	err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM refund WHERE sale_id = $1)`, ventaID).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("error al verificar reembolso existente: %w", err)
	}
	return existe, nil
}
