package domain

import (
	"context"
	"time"
)

// Moneda es el código de la denominación en que está expresado un precio
type Moneda string

// MonedaBase es la moneda local en la que se normalizan todos los totales
const MonedaBase Moneda = "Bs"

// TipoCambio representa una tasa de cambio vigente entre una moneda y la base.
// La fila con FechaFin nula y FechaInicio más reciente es la tasa activa
type TipoCambio struct {
	ID          int        `json:"id"`
	Moneda      Moneda     `json:"moneda"`
	Tasa        float64    `json:"tasa"`
	FechaInicio time.Time  `json:"fechaInicio"`
	FechaFin    *time.Time `json:"fechaFin,omitempty"`
}

// TipoCambioRepository define las operaciones con tasas de cambio
type TipoCambioRepository interface {
	// GetTasaActiva obtiene la tasa abierta más reciente para la moneda.
	// Retorna false si no existe ninguna tasa registrada
	GetTasaActiva(ctx context.Context, moneda Moneda) (float64, bool, error)
}
