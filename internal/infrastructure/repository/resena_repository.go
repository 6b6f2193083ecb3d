package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

type resenaRepository struct {
	db *sql.DB
}

// NewResenaRepository crea una nueva instancia del repositorio de reseñas
func NewResenaRepository(db *sql.DB) domain.ResenaRepository {
	return &resenaRepository{db: db}
}

// Create inserta la reseña
func (r *resenaRepository) Create(ctx context.Context, resena *domain.Resena) error {
	err := r.db.QueryRowContext(
		ctx,
		`INSERT INTO review (item_id, client_id, rating, comment, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING review_id`,
		resena.ItemID,
		resena.ClienteID,
		resena.Calificacion,
		resena.Comentario,
		resena.Fecha,
	).Scan(&resena.ID)
	if err != nil {
		return fmt.Errorf("error al crear reseña: %w", err)
	}
	return nil
}

// ExistsForItem verifica si el item ya tiene reseña
func (r *resenaRepository) ExistsForItem(ctx context.Context, itemID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM review WHERE item_id = $1)`,
		itemID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error al verificar reseña existente: %w", err)
	}
	return exists, nil
}

// GetByServicio obtiene las reseñas de todos los items de un servicio
func (r *resenaRepository) GetByServicio(ctx context.Context, servicioID int) ([]domain.Resena, error) {
	query := `
		SELECT
			rv.review_id,
			rv.item_id,
			rv.client_id,
			rv.rating,
			rv.comment,
			rv.created_at
		FROM review rv
		INNER JOIN itinerary_item ii ON ii.item_id = rv.item_id
		WHERE ii.service_id = $1
		ORDER BY rv.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, servicioID)
	if err != nil {
		return nil, fmt.Errorf("error al obtener reseñas del servicio: %w", err)
	}
	defer rows.Close()

	var resenas []domain.Resena
	for rows.Next() {
		var resena domain.Resena
		err := rows.Scan(
			&resena.ID,
			&resena.ItemID,
			&resena.ClienteID,
			&resena.Calificacion,
			&resena.Comentario,
			&resena.Fecha,
		)
		if err != nil {
			return nil, fmt.Errorf("error al leer reseña: %w", err)
		}
		resenas = append(resenas, resena)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error al recorrer reseñas: %w", err)
	}
	return resenas, nil
}
