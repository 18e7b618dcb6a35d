package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/SJellen/fetch-rewards/internal/application/auth"
	"github.com/SJellen/fetch-rewards/internal/application/dto"
	"github.com/SJellen/fetch-rewards/internal/domain"
)

// SessionHandler maneja login, logout y estado de sesión.
type SessionHandler struct {
	uc *auth.SessionUseCase
}

// NewSessionHandler construye el handler de sesión.
func NewSessionHandler(uc *auth.SessionUseCase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión en el catálogo
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "name, email"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/session/login [post]
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y email son requeridos"})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Vacía favoritos y reinicia la búsqueda aunque el logout remoto falle.
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session/logout [post]
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(h.uc.Logout(c.UserContext()))
}

// Current godoc
// @Summary      Estado de la sesión local
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session [get]
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	out, err := h.uc.Current(c.UserContext())
	if errors.Is(err, domain.ErrNotLoggedIn) {
		return c.JSON(dto.SessionResponse{IsLoggedIn: false})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
