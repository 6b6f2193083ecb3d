package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

type paqueteRepository struct {
	db *sql.DB
}

// NewPaqueteRepository crea una nueva instancia del repositorio de paquetes
func NewPaqueteRepository(db *sql.DB) domain.PaqueteRepository {
	return &paqueteRepository{db: db}
}

// GetAll retorna todos los paquetes con sus servicios y restricciones
func (r *paqueteRepository) GetAll(ctx context.Context) ([]domain.Paquete, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT package_id, name, description FROM package ORDER BY package_id`)
	if err != nil {
		return nil, fmt.Errorf("error al obtener paquetes: %w", err)
	}
	defer rows.Close()

	var paquetes []domain.Paquete
	for rows.Next() {
		var p domain.Paquete
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Descripcion); err != nil {
			return nil, fmt.Errorf("error al escanear paquete: %w", err)
		}
		paquetes = append(paquetes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error al recorrer paquetes: %w", err)
	}

	for i := range paquetes {
		if err := r.cargarDetalle(ctx, &paquetes[i]); err != nil {
			return nil, err
		}
	}
	return paquetes, nil
}

// GetByID obtiene un paquete con sus servicios en orden y sus restricciones.
// Retorna nil si no existe
func (r *paqueteRepository) GetByID(ctx context.Context, id int) (*domain.Paquete, error) {
	paquete := &domain.Paquete{}
	err := r.db.QueryRowContext(
		ctx,
		`SELECT package_id, name, description FROM package WHERE package_id = $1`,
		id,
	).Scan(&paquete.ID, &paquete.Nombre, &paquete.Descripcion)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al obtener paquete: %w", err)
	}

	if err := r.cargarDetalle(ctx, paquete); err != nil {
		return nil, err
	}
	return paquete, nil
}

func (r *paqueteRepository) cargarDetalle(ctx context.Context, paquete *domain.Paquete) error {
	serviciosQuery := `
		SELECT service_id
		FROM package_service
		WHERE package_id = $1
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, serviciosQuery, paquete.ID)
	if err != nil {
		return fmt.Errorf("error al obtener servicios del paquete: %w", err)
	}
	defer rows.Close()

	paquete.ServicioIDs = nil
	for rows.Next() {
		var servicioID int
		if err := rows.Scan(&servicioID); err != nil {
			return fmt.Errorf("error al escanear servicio del paquete: %w", err)
		}
		paquete.ServicioIDs = append(paquete.ServicioIDs, servicioID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error al recorrer servicios del paquete: %w", err)
	}

	restriccionesQuery := `
		SELECT restriction_id, attribute, operator, value
		FROM package_restriction
		WHERE package_id = $1
		ORDER BY restriction_id
	`
	resRows, err := r.db.QueryContext(ctx, restriccionesQuery, paquete.ID)
	if err != nil {
		return fmt.Errorf("error al obtener restricciones del paquete: %w", err)
	}
	defer resRows.Close()

	paquete.Restricciones = nil
	for resRows.Next() {
		var restriccion domain.Restriccion
		err := resRows.Scan(&restriccion.ID, &restriccion.Atributo, &restriccion.Operador, &restriccion.Valor)
		if err != nil {
			return fmt.Errorf("error al escanear restricción: %w", err)
		}
		paquete.Restricciones = append(paquete.Restricciones, restriccion)
	}
	return resRows.Err()
}

// Create crea un paquete con sus servicios y restricciones. El identificador
// lo asigna la secuencia de la tabla, nunca un max(id)+1 bajo bloqueo
func (r *paqueteRepository) Create(ctx context.Context, paquete *domain.Paquete) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error al iniciar transacción: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(
		ctx,
		`INSERT INTO package (name, description) VALUES ($1, $2) RETURNING package_id`,
		paquete.Nombre,
		paquete.Descripcion,
	).Scan(&paquete.ID)
	if err != nil {
		return fmt.Errorf("error al crear paquete: %w", err)
	}

	for i, servicioID := range paquete.ServicioIDs {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO package_service (package_id, service_id, position) VALUES ($1, $2, $3)`,
			paquete.ID,
			servicioID,
			i,
		)
		if err != nil {
			return fmt.Errorf("error al asociar servicio al paquete: %w", err)
		}
	}

	for _, restriccion := range paquete.Restricciones {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO package_restriction (package_id, attribute, operator, value) VALUES ($1, $2, $3, $4)`,
			paquete.ID,
			restriccion.Atributo,
			restriccion.Operador,
			restriccion.Valor,
		)
		if err != nil {
			return fmt.Errorf("error al crear restricción del paquete: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error al confirmar transacción: %w", err)
	}
	return nil
}
