package domain

// Sesion es la identidad autenticada que el colaborador de autenticación
// resuelve a partir del token opaco de la cookie. Se pasa explícitamente a cada
// operación; nunca se consulta de un estado global
type Sesion struct {
	UserID      int  `json:"userId"`
	RolID       int  `json:"rolId"`
	ClienteID   *int `json:"clienteId,omitempty"`
	ProveedorID *int `json:"proveedorId,omitempty"`
}

// EsCliente indica si la sesión corresponde a un cliente capaz de operar sobre
// ventas, cuotas y reembolsos
func (s *Sesion) EsCliente() bool {
	return s.ClienteID != nil
}

// EsProveedor indica si la sesión corresponde a un proveedor de servicios
func (s *Sesion) EsProveedor() bool {
	return s.ProveedorID != nil
}

// RolAdministrador identifica al personal administrativo de la agencia
const RolAdministrador = 3

// EsAdministrador indica si la sesión corresponde al personal administrativo
func (s *Sesion) EsAdministrador() bool {
	return s.RolID == RolAdministrador
}
