package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

type tipoCambioRepository struct {
	db *sql.DB
}

// NewTipoCambioRepository crea una nueva instancia del repositorio de tasas de cambio
func NewTipoCambioRepository(db *sql.DB) domain.TipoCambioRepository {
	return &tipoCambioRepository{db: db}
}

// GetTasaActiva obtiene la tasa abierta más reciente para la moneda: la fila
// con end_date nula y start_date más alta. Retorna false si no hay ninguna
func (r *tipoCambioRepository) GetTasaActiva(ctx context.Context, moneda domain.Moneda) (float64, bool, error) {
	var tasa float64
	query := `
		SELECT rate
		FROM exchange_rate
		WHERE currency = $1 AND end_date IS NULL
		ORDER BY start_date DESC
		LIMIT 1
	`
	err := r.db.QueryRowContext(ctx, query, moneda).Scan(&tasa)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("error al obtener tasa de cambio: %w", err)
	}
	return tasa, true, nil
}
