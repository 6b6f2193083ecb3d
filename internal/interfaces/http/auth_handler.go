package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/auth"
	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

// SesionRequest representa la identidad ya verificada por el subsistema de
// usuarios, a partir de la cual se emite el token de sesión
type SesionRequest struct {
	UserID      int  `json:"userId"`
	RolID       int  `json:"rolId"`
	ClienteID   *int `json:"clienteId"`
	ProveedorID *int `json:"proveedorId"`
}

type AuthHandler struct {
	store *auth.SessionStore
}

func NewAuthHandler(store *auth.SessionStore) *AuthHandler {
	return &AuthHandler{
		store: store,
	}
}

// CreateSesion emite un token de sesión y lo deja en la cookie
func (h *AuthHandler) CreateSesion(c *fiber.Ctx) error {
	var req SesionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos inválidos"})
	}
	if req.UserID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "userId es requerido"})
	}

	sesion := &domain.Sesion{
		UserID:      req.UserID,
		RolID:       req.RolID,
		ClienteID:   req.ClienteID,
		ProveedorID: req.ProveedorID,
	}
	token, err := h.store.Create(c.Context(), sesion)
	if err != nil {
		return handleError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieSesion,
		Value:    token,
		Expires:  time.Now().Add(auth.TTLSesion),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": token})
}

// DeleteSesion invalida el token de la cookie
func (h *AuthHandler) DeleteSesion(c *fiber.Ctx) error {
	token := c.Cookies(CookieSesion)
	if token != "" {
		if err := h.store.Delete(c.Context(), token); err != nil {
			return handleError(c, err)
		}
	}
	c.ClearCookie(CookieSesion)
	return c.SendStatus(fiber.StatusNoContent)
}
