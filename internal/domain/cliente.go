package domain

import (
	"context"
	"time"
)

// Cliente representa un cliente de la agencia
type Cliente struct {
	ID              int       `json:"id"`
	PersonaID       int       `json:"personaId"`
	FechaNacimiento time.Time `json:"fechaNacimiento"`
	EstadoCivil     string    `json:"estadoCivil"`
	Email           string    `json:"email"`
}

// Edad calcula la edad del cliente a la fecha dada
func (c *Cliente) Edad(hoy time.Time) int {
	edad := hoy.Year() - c.FechaNacimiento.Year()
	cumple := time.Date(hoy.Year(), c.FechaNacimiento.Month(), c.FechaNacimiento.Day(), 0, 0, 0, 0, hoy.Location())
	if hoy.Before(cumple) {
		edad--
	}
	return edad
}

// ClienteRepository define las operaciones con clientes
type ClienteRepository interface {
	// GetByID obtiene un cliente por su ID
	GetByID(ctx context.Context, id int) (*Cliente, error)
}
