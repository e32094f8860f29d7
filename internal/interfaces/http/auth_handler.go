package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nahuelmangano/speedtest/internal/application/auth"
	"github.com/nahuelmangano/speedtest/internal/application/dto"
	"github.com/nahuelmangano/speedtest/internal/domain"
	"github.com/nahuelmangano/speedtest/internal/domain/entity"
)

// AuthHandler maneja registro, login y logout con formularios.
type AuthHandler struct {
	uc *auth.AuthUseCase
	v  *views
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, v *views) *AuthHandler {
	return &AuthHandler{uc: uc, v: v}
}

// LoginForm muestra el formulario de ingreso.
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return h.v.render(c, fiber.StatusOK, "login", fiber.Map{"Titulo": "Ingresar"})
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "usuario"
// @Param        password  formData  string  true  "contraseña"
// @Success      302  "redirige a /dashboard; si falla, a /login con aviso"
// @Failure      429  {object}  dto.ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		h.v.flash(c, entity.FlashError, "Formulario inválido.")
		return c.Redirect("/login")
	}
	sid, err := rotateSession(c)
	if err != nil {
		return err
	}
	identity, err := h.uc.Login(c.Context(), sid, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			h.v.flash(c, entity.FlashError, "Usuario o contraseña incorrectos.")
		case errors.Is(err, domain.ErrValidation):
			h.v.flash(c, entity.FlashError, "Completá usuario y contraseña.")
		default:
			return err
		}
		return c.Redirect("/login")
	}
	h.v.flash(c, entity.FlashSuccess, "Bienvenido, "+identity.Username+".")
	return c.Redirect("/dashboard")
}

// RegisterForm muestra el formulario de registro.
func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return h.v.render(c, fiber.StatusOK, "register", fiber.Map{"Titulo": "Registrarse"})
}

// Register godoc
// @Summary      Registrar usuario
// @Description  Crea la cuenta con el rol "user".
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "usuario (único)"
// @Param        password  formData  string  true  "contraseña"
// @Success      302  "redirige a /login; si falla, a /register con aviso"
// @Router       /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		h.v.flash(c, entity.FlashError, "Formulario inválido.")
		return c.Redirect("/register")
	}
	if _, err := h.uc.Register(c.Context(), in); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateUsername):
			h.v.flash(c, entity.FlashError, "El usuario ya existe.")
		case errors.Is(err, domain.ErrValidation):
			h.v.flash(c, entity.FlashError, "Usuario o contraseña inválidos.")
		default:
			return err
		}
		return c.Redirect("/register")
	}
	h.v.flash(c, entity.FlashSuccess, "Cuenta creada. Ya podés ingresar.")
	return c.Redirect("/login")
}

// Logout cierra la sesión (idempotente) y vuelve a /login.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(GetSessionID(c)); err != nil {
		return err
	}
	h.v.flash(c, entity.FlashInfo, "Sesión cerrada.")
	return c.Redirect("/login")
}
