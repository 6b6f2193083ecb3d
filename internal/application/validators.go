package application

import (
	"time"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

// FormatoFecha es el formato de fecha aceptado en las peticiones
const FormatoFecha = "2006-01-02"

// ParseFecha parsea una fecha YYYY-MM-DD de una petición
func ParseFecha(valor, campo string) (time.Time, error) {
	t, err := time.Parse(FormatoFecha, valor)
	if err != nil {
		return time.Time{}, domain.NewError(domain.ErrInvalidInput,
			"formato de %s inválido. Use YYYY-MM-DD", campo)
	}
	return t, nil
}

// ParseFechaOpcional parsea una fecha opcional; vacío retorna nil
func ParseFechaOpcional(valor, campo string) (*time.Time, error) {
	if valor == "" {
		return nil, nil
	}
	t, err := ParseFecha(valor, campo)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ValidatePositiveID valida un identificador de recurso
func ValidatePositiveID(id int, campo string) error {
	if id <= 0 {
		return domain.NewError(domain.ErrInvalidInput, "el %s debe ser un entero mayor a 0", campo)
	}
	return nil
}

// ValidateMonto valida un monto monetario de una petición
func ValidateMonto(monto float64, campo string) error {
	if monto <= 0 {
		return domain.NewError(domain.ErrInvalidInput, "el %s debe ser mayor a 0", campo)
	}
	return nil
}
