package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

type reclamoRepository struct {
	db *sql.DB
}

// NewReclamoRepository crea una nueva instancia del repositorio de reclamos
func NewReclamoRepository(db *sql.DB) domain.ReclamoRepository {
	return &reclamoRepository{db: db}
}

// Create inserta el reclamo con su fila inicial de historial Abierto
func (r *reclamoRepository) Create(ctx context.Context, reclamo *domain.Reclamo) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error al iniciar transacción: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(
		ctx,
		`INSERT INTO claim (item_id, client_id, title, description, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING claim_id`,
		reclamo.ItemID,
		reclamo.ClienteID,
		reclamo.Titulo,
		reclamo.Descripcion,
		reclamo.Fecha,
	).Scan(&reclamo.ID)
	if err != nil {
		return fmt.Errorf("error al crear reclamo: %w", err)
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO claim_status (claim_id, status, start_date, end_date) VALUES ($1, $2, NOW(), NULL)`,
		reclamo.ID,
		domain.ReclamoAbierto,
	)
	if err != nil {
		return fmt.Errorf("error al crear estado inicial del reclamo: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error al confirmar transacción: %w", err)
	}
	return nil
}

// GetByID obtiene un reclamo con su estado actual. Retorna nil si no existe
func (r *reclamoRepository) GetByID(ctx context.Context, id int) (*domain.Reclamo, error) {
	reclamo := &domain.Reclamo{}
	query := `
		SELECT
			c.claim_id,
			c.item_id,
			c.client_id,
			c.title,
			c.description,
			cs.status,
			c.created_at
		FROM claim c
		INNER JOIN claim_status cs ON cs.claim_id = c.claim_id AND cs.end_date IS NULL
		WHERE c.claim_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&reclamo.ID,
		&reclamo.ItemID,
		&reclamo.ClienteID,
		&reclamo.Titulo,
		&reclamo.Descripcion,
		&reclamo.Estado,
		&reclamo.Fecha,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al obtener reclamo: %w", err)
	}
	return reclamo, nil
}

// TransitionEstado cierra la fila abierta del historial del reclamo e inserta
// la nueva
func (r *reclamoRepository) TransitionEstado(ctx context.Context, tx *sql.Tx, id int, estado domain.EstadoReclamo) error {
	result, err := tx.ExecContext(
		ctx,
		`UPDATE claim_status SET end_date = NOW() WHERE claim_id = $1 AND end_date IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("error al cerrar el estado actual del reclamo: %w", err)
	}
	cerradas, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar filas afectadas: %w", err)
	}
	if cerradas != 1 {
		return fmt.Errorf("el reclamo %d tenía %d estados abiertos en lugar de 1", id, cerradas)
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO claim_status (claim_id, status, start_date, end_date) VALUES ($1, $2, NOW(), NULL)`,
		id,
		estado,
	)
	if err != nil {
		return fmt.Errorf("error al insertar el nuevo estado del reclamo: %w", err)
	}
	return nil
}
