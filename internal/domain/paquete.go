package domain

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Paquete representa un combo de servicios con restricciones de elegibilidad.
// No tiene precio propio: su precio es la suma de sus servicios
type Paquete struct {
	ID            int           `json:"id"`
	Nombre        string        `json:"nombre"`
	Descripcion   string        `json:"descripcion"`
	ServicioIDs   []int         `json:"servicioIds"`
	Restricciones []Restriccion `json:"restricciones,omitempty"`
}

// Restriccion es un predicado de elegibilidad sobre el cliente comprador,
// por ejemplo edad > 18 o estado_civil = Soltero
type Restriccion struct {
	ID       int    `json:"id"`
	Atributo string `json:"atributo"` // edad | estado_civil
	Operador string `json:"operador"` // > | >= | < | <= | =
	Valor    string `json:"valor"`
}

// Cumple evalúa la restricción contra el cliente a la fecha dada
func (r *Restriccion) Cumple(cliente *Cliente, hoy time.Time) (bool, error) {
	switch r.Atributo {
	case "edad":
		limite, err := strconv.Atoi(r.Valor)
		if err != nil {
			return false, fmt.Errorf("valor de restricción de edad inválido: %q", r.Valor)
		}
		return comparaInt(cliente.Edad(hoy), r.Operador, limite)
	case "estado_civil":
		switch r.Operador {
		case "=":
			return cliente.EstadoCivil == r.Valor, nil
		case "<>", "!=":
			return cliente.EstadoCivil != r.Valor, nil
		}
		return false, fmt.Errorf("operador %q no aplicable a estado_civil", r.Operador)
	}
	return false, fmt.Errorf("atributo de restricción desconocido: %q", r.Atributo)
}

func comparaInt(a int, op string, b int) (bool, error) {
	switch op {
	case ">":
		return a > b, nil
	case ">=":
		return a >= b, nil
	case "<":
		return a < b, nil
	case "<=":
		return a <= b, nil
	case "=":
		return a == b, nil
	}
	return false, fmt.Errorf("operador de comparación desconocido: %q", op)
}

// PaqueteRepository define las operaciones con paquetes
type PaqueteRepository interface {
	// GetAll retorna todos los paquetes con sus servicios y restricciones
	GetAll(ctx context.Context) ([]Paquete, error)
	// GetByID obtiene un paquete con sus servicios en orden y sus restricciones
	GetByID(ctx context.Context, id int) (*Paquete, error)
	// Create crea un paquete; el identificador lo asigna la secuencia de la tabla
	Create(ctx context.Context, paquete *Paquete) error
}
