package application

import (
	"sync"
	"time"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

// CatalogoCache implementa un caché simple en memoria para el catálogo de
// servicios. El catálogo se lee mucho más de lo que cambia, así que una copia
// con TTL evita golpear la base de datos en cada listado
type CatalogoCache struct {
	servicios []domain.Servicio
	timestamp time.Time
	mu        sync.RWMutex
	ttl       time.Duration
}

// NewCatalogoCache crea un nuevo caché del catálogo
func NewCatalogoCache(ttl time.Duration) *CatalogoCache {
	return &CatalogoCache{ttl: ttl}
}

// Get obtiene el catálogo del caché si existe y no ha expirado
func (cc *CatalogoCache) Get() ([]domain.Servicio, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	if cc.servicios == nil {
		return nil, false
	}

	// Verificar si ha expirado
	if time.Since(cc.timestamp) > cc.ttl {
		return nil, false
	}

	return cc.servicios, true
}

// Set guarda el catálogo en el caché
func (cc *CatalogoCache) Set(servicios []domain.Servicio) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	cc.servicios = servicios
	cc.timestamp = time.Now()
}

// Invalidate descarta la copia cacheada. Se llama cuando un proveedor crea,
// modifica o elimina un servicio
func (cc *CatalogoCache) Invalidate() {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	cc.servicios = nil
}
