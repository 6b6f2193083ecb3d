package domain

import "context"

// MetodoPago representa un método de pago registrado por un cliente. El núcleo
// solo lo consulta para verificar propiedad al pagar una cuota
type MetodoPago struct {
	ID          int    `json:"id"`
	ClienteID   int    `json:"clienteId"`
	Tipo        string `json:"tipo"` // Tarjeta, Transferencia, Billetera
	Descripcion string `json:"descripcion"`
}

// MetodoPagoRepository define las operaciones con métodos de pago
type MetodoPagoRepository interface {
	// GetByID obtiene un método de pago por su ID
	GetByID(ctx context.Context, id int) (*MetodoPago, error)
}
