package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

type servicioRepository struct {
	db *sql.DB
}

// NewServicioRepository crea una nueva instancia del repositorio de servicios
func NewServicioRepository(db *sql.DB) domain.ServicioRepository {
	return &servicioRepository{db: db}
}

const servicioSelect = `
	SELECT
		service_id,
		name,
		description,
		price,
		currency,
		miles,
		service_type,
		compensation_amount,
		provider_id,
		place_id,
		image_url,
		status
	FROM service
`

// GetAllServices retorna todos los servicios activos
func (r *servicioRepository) GetAllServices(ctx context.Context) ([]domain.Servicio, error) {
	rows, err := r.db.QueryContext(ctx, servicioSelect+` WHERE status = 1 ORDER BY service_id`)
	if err != nil {
		return nil, fmt.Errorf("error al obtener servicios: %w", err)
	}
	defer rows.Close()

	var servicios []domain.Servicio
	for rows.Next() {
		servicio, err := scanServicio(rows)
		if err != nil {
			return nil, err
		}
		servicios = append(servicios, *servicio)
	}
	return servicios, rows.Err()
}

// GetByID obtiene un servicio por su ID. Retorna nil si no existe
func (r *servicioRepository) GetByID(ctx context.Context, id int) (*domain.Servicio, error) {
	rows, err := r.db.QueryContext(ctx, servicioSelect+` WHERE service_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("error al obtener servicio: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanServicio(rows)
}

func scanServicio(rows *sql.Rows) (*domain.Servicio, error) {
	servicio := &domain.Servicio{}
	err := rows.Scan(
		&servicio.ID,
		&servicio.Nombre,
		&servicio.Descripcion,
		&servicio.Costo,
		&servicio.Moneda,
		&servicio.Millas,
		&servicio.TipoServicio,
		&servicio.MontoCompensacion,
		&servicio.ProveedorID,
		&servicio.LugarID,
		&servicio.ImagenURL,
		&servicio.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("error al escanear servicio: %w", err)
	}
	return servicio, nil
}

// CreateService crea un nuevo servicio
func (r *servicioRepository) CreateService(ctx context.Context, servicio *domain.Servicio) error {
	query := `
		INSERT INTO service (name, description, price, currency, miles, service_type, compensation_amount, provider_id, place_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING service_id
	`
	err := r.db.QueryRowContext(
		ctx,
		query,
		servicio.Nombre,
		servicio.Descripcion,
		servicio.Costo,
		servicio.Moneda,
		servicio.Millas,
		servicio.TipoServicio,
		servicio.MontoCompensacion,
		servicio.ProveedorID,
		servicio.LugarID,
		servicio.Status,
	).Scan(&servicio.ID)
	if err != nil {
		return fmt.Errorf("error al crear servicio: %w", err)
	}
	return nil
}

// UpdateService actualiza un servicio existente
func (r *servicioRepository) UpdateService(ctx context.Context, servicio *domain.Servicio) error {
	query := `
		UPDATE service
		SET name = $1, description = $2, price = $3, currency = $4, miles = $5, service_type = $6, compensation_amount = $7
		WHERE service_id = $8
	`
	result, err := r.db.ExecContext(
		ctx,
		query,
		servicio.Nombre,
		servicio.Descripcion,
		servicio.Costo,
		servicio.Moneda,
		servicio.Millas,
		servicio.TipoServicio,
		servicio.MontoCompensacion,
		servicio.ID,
	)
	if err != nil {
		return fmt.Errorf("error al actualizar servicio: %w", err)
	}
	afectadas, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar filas afectadas: %w", err)
	}
	if afectadas == 0 {
		return fmt.Errorf("servicio con ID %d no encontrado", servicio.ID)
	}
	return nil
}

// UpdateImagenURL actualiza la URL de la imagen del servicio
func (r *servicioRepository) UpdateImagenURL(ctx context.Context, id int, url string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE service SET image_url = $1 WHERE service_id = $2`, url, id)
	if err != nil {
		return fmt.Errorf("error al actualizar imagen del servicio: %w", err)
	}
	return nil
}

// DeleteService realiza una eliminación lógica (status=0)
func (r *servicioRepository) DeleteService(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE service SET status = 0 WHERE service_id = $1`, id)
	if err != nil {
		return fmt.Errorf("error al eliminar servicio: %w", err)
	}
	afectadas, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar filas afectadas: %w", err)
	}
	if afectadas == 0 {
		return fmt.Errorf("servicio con ID %d no encontrado", id)
	}
	return nil
}
