package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

type ventaRepository struct {
	db *sql.DB
}

// NewVentaRepository crea una nueva instancia del repositorio de ventas
func NewVentaRepository(db *sql.DB) domain.VentaRepository {
	return &ventaRepository{db: db}
}

func (r *ventaRepository) q(tx *sql.Tx) queryer {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create inserta la venta con totales en cero y la fila inicial del historial
// en estado Pendiente. Ambas inserciones van en la misma transacción si se
// proporcionó una
func (r *ventaRepository) Create(ctx context.Context, tx *sql.Tx, venta *domain.Venta) error {
	run := func(tx *sql.Tx) error {
		query := `
			INSERT INTO sale (client_id, total_amount, total_compensation)
			VALUES ($1, 0, 0)
			RETURNING sale_id
		`
		if err := tx.QueryRowContext(ctx, query, venta.ClienteID).Scan(&venta.ID); err != nil {
			return fmt.Errorf("error al crear venta: %w", err)
		}

		estadoQuery := `
			INSERT INTO sale_status (sale_id, status, start_date, end_date)
			VALUES ($1, $2, NOW(), NULL)
		`
		if _, err := tx.ExecContext(ctx, estadoQuery, venta.ID, domain.VentaPendiente); err != nil {
			return fmt.Errorf("error al crear estado inicial de la venta: %w", err)
		}

		venta.Estado = domain.VentaPendiente
		venta.FechaEstado = time.Now()
		return nil
	}

	if tx != nil {
		return run(tx)
	}

	propia, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error al iniciar transacción: %w", err)
	}
	defer propia.Rollback()
	if err := run(propia); err != nil {
		return err
	}
	if err := propia.Commit(); err != nil {
		return fmt.Errorf("error al confirmar transacción: %w", err)
	}
	return nil
}

const ventaSelect = `
	SELECT
		s.sale_id,
		s.client_id,
		s.total_amount,
		s.total_compensation,
		ss.status,
		ss.start_date
	FROM sale s
	INNER JOIN sale_status ss ON ss.sale_id = s.sale_id AND ss.end_date IS NULL
`

// GetByID obtiene una venta con su estado actual y sus items. Retorna nil si
// no existe
func (r *ventaRepository) GetByID(ctx context.Context, id int) (*domain.Venta, error) {
	venta, err := r.scanVenta(r.db.QueryRowContext(ctx, ventaSelect+` WHERE s.sale_id = $1`, id))
	if err != nil || venta == nil {
		return venta, err
	}

	items, err := r.GetItems(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	venta.Items = items
	return venta, nil
}

// GetByIDForUpdate obtiene la venta bloqueando su fila dentro de la
// transacción. El bloqueo serializa a los mutadores concurrentes de la misma
// venta
func (r *ventaRepository) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id int) (*domain.Venta, error) {
	// FOR UPDATE OF s bloquea solo la fila de la venta, no la del historial
	query := ventaSelect + ` WHERE s.sale_id = $1 FOR UPDATE OF s`
	return r.scanVenta(tx.QueryRowContext(ctx, query, id))
}

func (r *ventaRepository) scanVenta(row *sql.Row) (*domain.Venta, error) {
	venta := &domain.Venta{}
	err := row.Scan(
		&venta.ID,
		&venta.ClienteID,
		&venta.MontoTotal,
		&venta.MontoCompensacion,
		&venta.Estado,
		&venta.FechaEstado,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al obtener venta: %w", err)
	}
	return venta, nil
}

// GetVentasCliente obtiene todas las ventas de un cliente con sus items
func (r *ventaRepository) GetVentasCliente(ctx context.Context, clienteID int) ([]domain.Venta, error) {
	query := ventaSelect + ` WHERE s.client_id = $1 ORDER BY s.sale_id DESC`

	rows, err := r.db.QueryContext(ctx, query, clienteID)
	if err != nil {
		return nil, fmt.Errorf("error al obtener ventas del cliente: %w", err)
	}
	defer rows.Close()

	var ventas []domain.Venta
	for rows.Next() {
		var venta domain.Venta
		err := rows.Scan(
			&venta.ID,
			&venta.ClienteID,
			&venta.MontoTotal,
			&venta.MontoCompensacion,
			&venta.Estado,
			&venta.FechaEstado,
		)
		if err != nil {
			return nil, fmt.Errorf("error al escanear venta: %w", err)
		}
		ventas = append(ventas, venta)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error al recorrer ventas: %w", err)
	}

	for i := range ventas {
		items, err := r.GetItems(ctx, nil, ventas[i].ID)
		if err != nil {
			return nil, err
		}
		ventas[i].Items = items
	}
	return ventas, nil
}

// GetHistorial obtiene el historial completo de estados de una venta en orden
// cronológico
func (r *ventaRepository) GetHistorial(ctx context.Context, ventaID int) ([]domain.EstadoHistorial, error) {
	query := `
		SELECT status, start_date, end_date
		FROM sale_status
		WHERE sale_id = $1
		ORDER BY start_date
	`

	rows, err := r.db.QueryContext(ctx, query, ventaID)
	if err != nil {
		return nil, fmt.Errorf("error al obtener historial de la venta: %w", err)
	}
	defer rows.Close()

	var historial []domain.EstadoHistorial
	for rows.Next() {
		var h domain.EstadoHistorial
		if err := rows.Scan(&h.Estado, &h.FechaInicio, &h.FechaFin); err != nil {
			return nil, fmt.Errorf("error al escanear historial: %w", err)
		}
		historial = append(historial, h)
	}
	return historial, rows.Err()
}

// UpdateTotales sobrescribe los totales de la venta
func (r *ventaRepository) UpdateTotales(ctx context.Context, tx *sql.Tx, id int, montoTotal, montoCompensacion float64) error {
	query := `
		UPDATE sale
		SET total_amount = $1, total_compensation = $2
		WHERE sale_id = $3
	`
	result, err := r.q(tx).ExecContext(ctx, query, montoTotal, montoCompensacion, id)
	if err != nil {
		return fmt.Errorf("error al actualizar totales de la venta: %w", err)
	}
	afectadas, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar filas afectadas: %w", err)
	}
	if afectadas == 0 {
		return fmt.Errorf("venta con ID %d no encontrada", id)
	}
	return nil
}

// TransitionEstado cierra la fila abierta del historial e inserta la nueva.
// Nunca quedan cero ni dos filas abiertas: ambos pasos van en la transacción
func (r *ventaRepository) TransitionEstado(ctx context.Context, tx *sql.Tx, id int, estado domain.EstadoVenta) error {
	cerrar := `
		UPDATE sale_status
		SET end_date = NOW()
		WHERE sale_id = $1 AND end_date IS NULL
	`
	result, err := tx.ExecContext(ctx, cerrar, id)
	if err != nil {
		return fmt.Errorf("error al cerrar el estado actual de la venta: %w", err)
	}
	cerradas, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar filas afectadas: %w", err)
	}
	if cerradas != 1 {
		return fmt.Errorf("la venta %d tenía %d estados abiertos en lugar de 1", id, cerradas)
	}

	abrir := `
		INSERT INTO sale_status (sale_id, status, start_date, end_date)
		VALUES ($1, $2, NOW(), NULL)
	`
	if _, err := tx.ExecContext(ctx, abrir, id, estado); err != nil {
		return fmt.Errorf("error al insertar el nuevo estado de la venta: %w", err)
	}
	return nil
}

// Delete elimina la venta en cascada: primero sus items, luego su historial y
// por último la venta misma
func (r *ventaRepository) Delete(ctx context.Context, tx *sql.Tx, id int) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM itinerary_item WHERE sale_id = $1`, id); err != nil {
		return fmt.Errorf("error al eliminar items de la venta: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sale_status WHERE sale_id = $1`, id); err != nil {
		return fmt.Errorf("error al eliminar historial de la venta: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sale WHERE sale_id = $1`, id); err != nil {
		return fmt.Errorf("error al eliminar venta: %w", err)
	}
	return nil
}

// AddItem inserta un item de itinerario
func (r *ventaRepository) AddItem(ctx context.Context, tx *sql.Tx, item *domain.ItemItinerario) error {
	query := `
		INSERT INTO itinerary_item (sale_id, service_id, special_cost, discount_id, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING item_id
	`
	err := tx.QueryRowContext(
		ctx,
		query,
		item.VentaID,
		item.ServicioID,
		item.CostoEspecial,
		item.DescuentoID,
		item.FechaInicio,
		item.FechaFin,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("error al crear item de itinerario: %w", err)
	}
	return nil
}

// RemoveItem elimina un item de itinerario
func (r *ventaRepository) RemoveItem(ctx context.Context, tx *sql.Tx, itemID int) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM itinerary_item WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("error al eliminar item: %w", err)
	}
	afectadas, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar filas afectadas: %w", err)
	}
	if afectadas == 0 {
		return fmt.Errorf("item con ID %d no encontrado", itemID)
	}
	return nil
}

const itemSelect = `
	SELECT item_id, sale_id, service_id, special_cost, discount_id, start_date, end_date
	FROM itinerary_item
`

// GetItem obtiene un item por su ID. Retorna nil si no existe
func (r *ventaRepository) GetItem(ctx context.Context, itemID int) (*domain.ItemItinerario, error) {
	item := &domain.ItemItinerario{}
	err := r.db.QueryRowContext(ctx, itemSelect+` WHERE item_id = $1`, itemID).Scan(
		&item.ID,
		&item.VentaID,
		&item.ServicioID,
		&item.CostoEspecial,
		&item.DescuentoID,
		&item.FechaInicio,
		&item.FechaFin,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al obtener item: %w", err)
	}
	return item, nil
}

// GetItems obtiene los items actuales de una venta
func (r *ventaRepository) GetItems(ctx context.Context, tx *sql.Tx, ventaID int) ([]domain.ItemItinerario, error) {
	rows, err := r.q(tx).QueryContext(ctx, itemSelect+` WHERE sale_id = $1 ORDER BY item_id`, ventaID)
	if err != nil {
		return nil, fmt.Errorf("error al obtener items de la venta: %w", err)
	}
	defer rows.Close()

	var items []domain.ItemItinerario
	for rows.Next() {
		var item domain.ItemItinerario
		err := rows.Scan(
			&item.ID,
			&item.VentaID,
			&item.ServicioID,
			&item.CostoEspecial,
			&item.DescuentoID,
			&item.FechaInicio,
			&item.FechaFin,
		)
		if err != nil {
			return nil, fmt.Errorf("error al escanear item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// VentasPendientesConDescuento obtiene los IDs de ventas Pendiente con algún
// item cuyo costo especial proviene del descuento indicado
func (r *ventaRepository) VentasPendientesConDescuento(ctx context.Context, tx *sql.Tx, descuentoID int) ([]int, error) {
	query := `
		SELECT DISTINCT i.sale_id
		FROM itinerary_item i
		INNER JOIN sale_status ss ON ss.sale_id = i.sale_id AND ss.end_date IS NULL
		WHERE i.discount_id = $1 AND ss.status = $2
		ORDER BY i.sale_id
	`
	rows, err := r.q(tx).QueryContext(ctx, query, descuentoID, domain.VentaPendiente)
	if err != nil {
		return nil, fmt.Errorf("error al buscar ventas con el descuento: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error al escanear venta afectada: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ClearCostoEspecial limpia el costo especial de los items de la venta ligados
// al descuento: el item vuelve a seguir el precio vivo del servicio
func (r *ventaRepository) ClearCostoEspecial(ctx context.Context, tx *sql.Tx, ventaID, descuentoID int) error {
	query := `
		UPDATE itinerary_item
		SET special_cost = NULL, discount_id = NULL
		WHERE sale_id = $1 AND discount_id = $2
	`
	if _, err := tx.ExecContext(ctx, query, ventaID, descuentoID); err != nil {
		return fmt.Errorf("error al limpiar costos especiales: %w", err)
	}
	return nil
}

// VentasPendientesAbandonadas obtiene los IDs de ventas cuyo estado Pendiente
// está abierto desde antes de la fecha de corte
func (r *ventaRepository) VentasPendientesAbandonadas(ctx context.Context, corte time.Time) ([]int, error) {
	query := `
		SELECT sale_id
		FROM sale_status
		WHERE status = $1 AND end_date IS NULL AND start_date < $2
		ORDER BY sale_id
	`
	rows, err := r.db.QueryContext(ctx, query, domain.VentaPendiente, corte)
	if err != nil {
		return nil, fmt.Errorf("error al buscar ventas abandonadas: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error al escanear venta abandonada: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
