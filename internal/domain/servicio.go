package domain

import "context"

// Servicio representa un servicio turístico comprable (vuelo, noche de hotel,
// tour, etc.). El catálogo es de solo lectura para el núcleo de ventas
type Servicio struct {
	ID                int     `json:"id"`
	Nombre            string  `json:"nombre"`
	Descripcion       string  `json:"descripcion"`
	Costo             float64 `json:"costo"`
	Moneda            Moneda  `json:"moneda"`
	Millas            int     `json:"millas"`
	TipoServicio      string  `json:"tipoServicio"`
	MontoCompensacion float64 `json:"montoCompensacion"`
	ProveedorID       *int    `json:"proveedorId,omitempty"`
	LugarID           *int    `json:"lugarId,omitempty"`
	ImagenURL         *string `json:"imagenUrl,omitempty"`
	Status            int     `json:"status"`
}

// ServicioRepository define la interfaz para operaciones de datos de servicios
type ServicioRepository interface {
	// GetAllServices retorna todos los servicios activos
	GetAllServices(ctx context.Context) ([]Servicio, error)
	// GetByID obtiene un servicio por su ID
	GetByID(ctx context.Context, id int) (*Servicio, error)
	// CreateService crea un nuevo servicio
	CreateService(ctx context.Context, servicio *Servicio) error
	// UpdateService actualiza un servicio existente
	UpdateService(ctx context.Context, servicio *Servicio) error
	// UpdateImagenURL actualiza la URL de la imagen de un servicio
	UpdateImagenURL(ctx context.Context, id int, url string) error
	// DeleteService realiza una eliminación lógica (status=0)
	DeleteService(ctx context.Context, id int) error
}
