package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/application"
	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/auth"
)

// sesionLocalKey es la clave bajo la que el middleware deja la sesión resuelta
const sesionLocalKey = "sesion"

// CookieSesion es el nombre de la cookie que transporta el token opaco
const CookieSesion = "sesion_token"

// NewAuthMiddleware resuelve el token de la cookie a su sesión y la deja en el
// contexto de la petición. Sin token válido la petición se rechaza con 401
func NewAuthMiddleware(store *auth.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(CookieSesion)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": fiber.Map{
					"kind":    "NotAuthenticated",
					"message": "se requiere iniciar sesión",
				},
			})
		}

		sesion, err := store.Get(c.Context(), token)
		if err != nil {
			return handleError(c, err)
		}
		if sesion == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": fiber.Map{
					"kind":    "NotAuthenticated",
					"message": "la sesión expiró, inicie sesión nuevamente",
				},
			})
		}

		c.Locals(sesionLocalKey, sesion)
		return c.Next()
	}
}

// NewRequestLogger registra cada petición con su latencia y código de estado
func NewRequestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}

// NewRateLimitMiddleware limita las mutaciones por cliente. Las peticiones sin
// sesión de cliente se limitan por IP
func NewRateLimitMiddleware(limiter *application.RateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := c.IP()
		if sesion := sesionDe(c); sesion != nil && sesion.ClienteID != nil {
			identifier = "cliente:" + strconv.Itoa(*sesion.ClienteID)
		}

		allowed, err := limiter.Allow(identifier)
		if !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": fiber.Map{
					"kind":    "TooManyRequests",
					"message": err.Error(),
				},
			})
		}

		c.Set("X-RateLimit-Remaining", strconv.Itoa(limiter.GetRemaining(identifier)))
		return c.Next()
	}
}
