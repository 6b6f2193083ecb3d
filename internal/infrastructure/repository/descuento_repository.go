package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

type descuentoRepository struct {
	db *sql.DB
}

// NewDescuentoRepository crea una nueva instancia del repositorio de descuentos
func NewDescuentoRepository(db *sql.DB) domain.DescuentoRepository {
	return &descuentoRepository{db: db}
}

const descuentoSelect = `
	SELECT discount_id, service_id, percentage, expiration_date, created_at
	FROM discount
`

// Create crea un nuevo descuento
func (r *descuentoRepository) Create(ctx context.Context, descuento *domain.Descuento) error {
	query := `
		INSERT INTO discount (service_id, percentage, expiration_date, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING discount_id
	`
	err := r.db.QueryRowContext(
		ctx,
		query,
		descuento.ServicioID,
		descuento.Porcentaje,
		descuento.FechaExpiracion,
		descuento.FechaCreacion,
	).Scan(&descuento.ID)
	if err != nil {
		return fmt.Errorf("error al crear descuento: %w", err)
	}
	return nil
}

// GetByID obtiene un descuento por su ID. Retorna nil si no existe
func (r *descuentoRepository) GetByID(ctx context.Context, id int) (*domain.Descuento, error) {
	descuento := &domain.Descuento{}
	err := r.db.QueryRowContext(ctx, descuentoSelect+` WHERE discount_id = $1`, id).Scan(
		&descuento.ID,
		&descuento.ServicioID,
		&descuento.Porcentaje,
		&descuento.FechaExpiracion,
		&descuento.FechaCreacion,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al obtener descuento: %w", err)
	}
	return descuento, nil
}

// GetByServicio obtiene todos los descuentos de un servicio
func (r *descuentoRepository) GetByServicio(ctx context.Context, servicioID int) ([]domain.Descuento, error) {
	rows, err := r.db.QueryContext(ctx, descuentoSelect+` WHERE service_id = $1 ORDER BY created_at DESC`, servicioID)
	if err != nil {
		return nil, fmt.Errorf("error al obtener descuentos del servicio: %w", err)
	}
	defer rows.Close()

	var descuentos []domain.Descuento
	for rows.Next() {
		var d domain.Descuento
		err := rows.Scan(&d.ID, &d.ServicioID, &d.Porcentaje, &d.FechaExpiracion, &d.FechaCreacion)
		if err != nil {
			return nil, fmt.Errorf("error al escanear descuento: %w", err)
		}
		descuentos = append(descuentos, d)
	}
	return descuentos, rows.Err()
}

// Delete elimina el descuento dentro de la transacción de la cascada de
// integridad
func (r *descuentoRepository) Delete(ctx context.Context, tx *sql.Tx, id int) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM discount WHERE discount_id = $1`, id)
	if err != nil {
		return fmt.Errorf("error al eliminar descuento: %w", err)
	}
	afectadas, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar filas afectadas: %w", err)
	}
	if afectadas == 0 {
		return fmt.Errorf("descuento con ID %d no encontrado", id)
	}
	return nil
}
