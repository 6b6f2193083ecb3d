package application

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
	services "github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/service"
)

// ServicioService expone el catálogo de servicios y el mantenimiento que cada
// proveedor hace sobre los suyos
type ServicioService struct {
	repo  domain.ServicioRepository
	s3    *services.S3Service
	cache *CatalogoCache
}

// NewServicioService crea una nueva instancia del servicio de servicios
func NewServicioService(repo domain.ServicioRepository, s3 *services.S3Service, cache *CatalogoCache) *ServicioService {
	return &ServicioService{repo: repo, s3: s3, cache: cache}
}

// GetAllServices retorna todos los servicios activos del catálogo
func (s *ServicioService) GetAllServices(ctx context.Context) ([]domain.Servicio, error) {
	if s.cache != nil {
		if servicios, ok := s.cache.Get(); ok {
			return servicios, nil
		}
	}
	servicios, err := s.repo.GetAllServices(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(servicios)
	}
	return servicios, nil
}

// GetServicioByID obtiene un servicio por su ID
func (s *ServicioService) GetServicioByID(ctx context.Context, id int) (*domain.Servicio, error) {
	servicio, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if servicio == nil {
		return nil, domain.NewError(domain.ErrNotFound, "servicio con ID %d no encontrado", id)
	}
	return servicio, nil
}

// CreateService crea un servicio del proveedor de la sesión
func (s *ServicioService) CreateService(ctx context.Context, sesion *domain.Sesion, servicio *domain.Servicio) error {
	if !sesion.EsProveedor() {
		return domain.NewError(domain.ErrNotAuthorized, "solo un proveedor puede crear servicios")
	}
	if servicio.Nombre == "" {
		return domain.NewError(domain.ErrInvalidInput, "el nombre del servicio es requerido")
	}
	if servicio.Costo <= 0 {
		return domain.NewError(domain.ErrInvalidInput, "el costo del servicio debe ser mayor a 0")
	}
	servicio.ProveedorID = sesion.ProveedorID
	servicio.Status = 1
	if err := s.repo.CreateService(ctx, servicio); err != nil {
		return fmt.Errorf("error al crear servicio: %w", err)
	}
	s.invalidateCatalogo()
	return nil
}

// UpdateService actualiza un servicio del proveedor de la sesión
func (s *ServicioService) UpdateService(ctx context.Context, sesion *domain.Sesion, servicio *domain.Servicio) error {
	if err := s.servicioDelProveedor(ctx, sesion, servicio.ID); err != nil {
		return err
	}
	if servicio.Costo <= 0 {
		return domain.NewError(domain.ErrInvalidInput, "el costo del servicio debe ser mayor a 0")
	}
	if err := s.repo.UpdateService(ctx, servicio); err != nil {
		return fmt.Errorf("error al actualizar servicio: %w", err)
	}
	s.invalidateCatalogo()
	return nil
}

// DeleteService realiza la eliminación lógica de un servicio del proveedor
func (s *ServicioService) DeleteService(ctx context.Context, sesion *domain.Sesion, id int) error {
	if err := s.servicioDelProveedor(ctx, sesion, id); err != nil {
		return err
	}
	if err := s.repo.DeleteService(ctx, id); err != nil {
		return fmt.Errorf("error al eliminar servicio: %w", err)
	}
	s.invalidateCatalogo()
	return nil
}

// UploadImagen sube la imagen del servicio al bucket y guarda su URL
func (s *ServicioService) UploadImagen(
	ctx context.Context,
	sesion *domain.Sesion,
	id int,
	file multipart.File,
	fileHeader *multipart.FileHeader,
) (string, error) {
	if err := s.servicioDelProveedor(ctx, sesion, id); err != nil {
		return "", err
	}
	if s.s3 == nil {
		return "", domain.NewError(domain.ErrUnexpected, "el almacenamiento de imágenes no está disponible")
	}

	url, err := s.s3.UploadServicioImagen(ctx, id, file, fileHeader)
	if err != nil {
		return "", fmt.Errorf("error al subir imagen: %w", err)
	}
	if err := s.repo.UpdateImagenURL(ctx, id, url); err != nil {
		return "", fmt.Errorf("error al guardar la URL de la imagen: %w", err)
	}
	s.invalidateCatalogo()
	return url, nil
}

func (s *ServicioService) invalidateCatalogo() {
	if s.cache != nil {
		s.cache.Invalidate()
	}
}

func (s *ServicioService) servicioDelProveedor(ctx context.Context, sesion *domain.Sesion, id int) error {
	if !sesion.EsProveedor() {
		return domain.NewError(domain.ErrNotAuthorized, "solo un proveedor puede administrar servicios")
	}
	servicio, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if servicio == nil {
		return domain.NewError(domain.ErrNotFound, "servicio con ID %d no encontrado", id)
	}
	if servicio.ProveedorID == nil || *servicio.ProveedorID != *sesion.ProveedorID {
		return domain.NewError(domain.ErrNotAuthorized, "el servicio no pertenece al proveedor")
	}
	return nil
}
