package application

import (
	"context"
	"fmt"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

// MonedaService normaliza montos en moneda extranjera a la moneda base usando
// la tasa de cambio activa
type MonedaService struct {
	tipoCambioRepo domain.TipoCambioRepository
}

// NewMonedaService crea una nueva instancia del servicio de monedas
func NewMonedaService(tipoCambioRepo domain.TipoCambioRepository) *MonedaService {
	return &MonedaService{tipoCambioRepo: tipoCambioRepo}
}

// ToBaseCurrency convierte un monto expresado en la moneda dada a la moneda
// base. Si no existe tasa registrada para la moneda se asume tasa 1: el precio
// se muestra como si ya estuviera en la base en lugar de fallar
func (s *MonedaService) ToBaseCurrency(ctx context.Context, monto float64, moneda domain.Moneda) (float64, error) {
	if moneda == domain.MonedaBase || moneda == "" {
		return monto, nil
	}

	tasa, ok, err := s.tipoCambioRepo.GetTasaActiva(ctx, moneda)
	if err != nil {
		return 0, fmt.Errorf("error al obtener tasa de cambio de %s: %w", moneda, err)
	}
	if !ok {
		return monto, nil
	}

	return monto * tasa, nil
}
