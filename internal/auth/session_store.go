package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

// TTLSesion es el tiempo de vida de una sesión sin actividad
const TTLSesion = 24 * time.Hour

// SessionStore guarda las sesiones en Redis bajo la clave sesion:<token>.
// El token es un UUID opaco que viaja en la cookie del cliente
type SessionStore struct {
	rdb *redis.Client
}

// NewSessionStore crea un cliente de Redis y verifica la conexión
func NewSessionStore(ctx context.Context, addr, password string, db int) (*SessionStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &SessionStore{rdb: rdb}, nil
}

func sessionKey(token string) string {
	return "sesion:" + token
}

// Create guarda la sesión y retorna el token opaco para la cookie
func (s *SessionStore) Create(ctx context.Context, sesion *domain.Sesion) (string, error) {
	token := uuid.NewString()

	data, err := json.Marshal(sesion)
	if err != nil {
		return "", fmt.Errorf("error al serializar sesión: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKey(token), data, TTLSesion).Err(); err != nil {
		return "", fmt.Errorf("error al guardar sesión: %w", err)
	}
	return token, nil
}

// Get resuelve el token a su sesión. Retorna nil si el token no existe o
// expiró
func (s *SessionStore) Get(ctx context.Context, token string) (*domain.Sesion, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, nil
	}

	data, err := s.rdb.Get(ctx, sessionKey(token)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error al leer sesión: %w", err)
	}

	var sesion domain.Sesion
	if err := json.Unmarshal(data, &sesion); err != nil {
		return nil, fmt.Errorf("error al deserializar sesión: %w", err)
	}

	// Renovar el TTL con cada acceso
	s.rdb.Expire(ctx, sessionKey(token), TTLSesion)

	return &sesion, nil
}

// Delete invalida el token
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("error al eliminar sesión: %w", err)
	}
	return nil
}

// Close cierra la conexión con Redis
func (s *SessionStore) Close() error {
	return s.rdb.Close()
}
