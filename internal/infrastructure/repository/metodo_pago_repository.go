package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

type metodoPagoRepository struct {
	db *sql.DB
}

// NewMetodoPagoRepository crea una nueva instancia del repositorio de métodos de pago
func NewMetodoPagoRepository(db *sql.DB) domain.MetodoPagoRepository {
	return &metodoPagoRepository{db: db}
}

// GetByID obtiene un método de pago por su ID. Retorna nil si no existe
func (r *metodoPagoRepository) GetByID(ctx context.Context, id int) (*domain.MetodoPago, error) {
	metodo := &domain.MetodoPago{}
	query := `
		SELECT payment_method_id, client_id, method_type, description
		FROM payment_method
		WHERE payment_method_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&metodo.ID,
		&metodo.ClienteID,
		&metodo.Tipo,
		&metodo.Descripcion,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al obtener método de pago: %w", err)
	}
	return metodo, nil
}
