package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

type clienteRepository struct {
	db *sql.DB
}

// NewClienteRepository crea una nueva instancia del repositorio de clientes
func NewClienteRepository(db *sql.DB) domain.ClienteRepository {
	return &clienteRepository{db: db}
}

// GetByID obtiene un cliente con los datos de su persona. Retorna nil si no
// existe
func (r *clienteRepository) GetByID(ctx context.Context, id int) (*domain.Cliente, error) {
	cliente := &domain.Cliente{}
	query := `
		SELECT
			c.client_id,
			c.person_id,
			p.birth_date,
			p.marital_status,
			p.email
		FROM client c
		INNER JOIN person p ON p.person_id = c.person_id
		WHERE c.client_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&cliente.ID,
		&cliente.PersonaID,
		&cliente.FechaNacimiento,
		&cliente.EstadoCivil,
		&cliente.Email,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al obtener cliente: %w", err)
	}
	return cliente, nil
}
