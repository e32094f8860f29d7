package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nahuelmangano/speedtest/internal/application/auth"
	"github.com/nahuelmangano/speedtest/internal/application/dto"
	"github.com/nahuelmangano/speedtest/internal/application/ports"
	"github.com/nahuelmangano/speedtest/internal/domain"
	"github.com/nahuelmangano/speedtest/internal/domain/entity"
	"github.com/nahuelmangano/speedtest/pkg/jwt"
	"github.com/nahuelmangano/speedtest/pkg/logger"
)

// SessionCookie nombre de la cookie que transporta el token de sesión.
const SessionCookie = "session"

// Locals keys en Fiber.
const (
	LocalSessionID = "session_id"
	LocalIdentity  = "identity"
)

// SessionConfig firma y vida de la cookie de sesión.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
	Secure bool // solo HTTPS; false en desarrollo
}

// sessionToucher lo implementan los stores con vencimiento deslizante.
type sessionToucher interface {
	Touch(id string) bool
}

const localIssuer = "session_issuer"

// sessionIssuer abre sesiones y firma su cookie.
type sessionIssuer struct {
	store ports.SessionStore
	cfg   SessionConfig
}

func (si *sessionIssuer) setCookie(c *fiber.Ctx, sid string) error {
	token, err := jwt.Generate(si.cfg.Secret, sid, si.cfg.Issuer, si.cfg.TTL)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(si.cfg.TTL),
		HTTPOnly: true,
		Secure:   si.cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Locals(LocalSessionID, sid)
	return nil
}

// SessionMiddleware resuelve la sesión del cliente a partir de la cookie firmada.
// Sin cookie válida el request sigue anónimo: la sesión recién se abre con la primera
// escritura (aviso, carrito o login), así los clientes de paso no ocupan lugar en el store.
// Con sesión viva se vuelve a emitir la cookie y el vencimiento se cuenta desde el último uso.
func SessionMiddleware(store ports.SessionStore, cfg SessionConfig, log *logger.Logger) fiber.Handler {
	issuer := &sessionIssuer{store: store, cfg: cfg}
	return func(c *fiber.Ctx) error {
		c.Locals(localIssuer, issuer)
		raw := c.Cookies(SessionCookie)
		if raw == "" {
			return c.Next()
		}
		sid, err := jwt.Parse(cfg.Secret, raw)
		if err != nil {
			log.Debug().Err(err).Msg("cookie de sesión inválida")
			c.ClearCookie(SessionCookie)
			return c.Next()
		}
		if _, ok := store.Load(sid); !ok {
			c.ClearCookie(SessionCookie)
			return c.Next()
		}
		if t, ok := store.(sessionToucher); ok {
			t.Touch(sid)
		}
		if err := issuer.setCookie(c, sid); err != nil {
			return err
		}
		return c.Next()
	}
}

// ensureSession devuelve la sesión del request, abriéndola si todavía es anónimo.
func ensureSession(c *fiber.Ctx) (string, error) {
	if sid := GetSessionID(c); sid != "" {
		return sid, nil
	}
	issuer, ok := c.Locals(localIssuer).(*sessionIssuer)
	if !ok {
		return "", errors.New("session middleware no instalado")
	}
	sid := issuer.store.Create()
	if err := issuer.setCookie(c, sid); err != nil {
		return "", err
	}
	return sid, nil
}

// rotateSession reemplaza la sesión actual por una con id nuevo, conservando carrito y avisos.
// Se usa al iniciar sesión para que un id conocido de antemano no quede autenticado.
func rotateSession(c *fiber.Ctx) (string, error) {
	issuer, ok := c.Locals(localIssuer).(*sessionIssuer)
	if !ok {
		return "", errors.New("session middleware no instalado")
	}
	sid := issuer.store.Create()
	if old := GetSessionID(c); old != "" {
		if prev, ok := issuer.store.Load(old); ok {
			err := issuer.store.Update(sid, func(s *entity.Session) error {
				s.Cart = prev.Cart
				s.Flashes = prev.Flashes
				return nil
			})
			if err != nil {
				return "", err
			}
		}
		issuer.store.Delete(old)
	}
	if err := issuer.setCookie(c, sid); err != nil {
		return "", err
	}
	return sid, nil
}

// requireSession corta el acceso a rutas protegidas: sin identidad en la sesión
// redirige a /login con un aviso. Deja la identidad en c.Locals.
func requireSession(uc *auth.AuthUseCase, v *views) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := uc.RequireSession(c.Context(), GetSessionID(c))
		if err != nil {
			if errors.Is(err, domain.ErrUnauthenticated) {
				v.flash(c, entity.FlashError, "Iniciá sesión para continuar.")
				return c.Redirect("/login")
			}
			return err
		}
		c.Locals(LocalIdentity, identity)
		return c.Next()
	}
}

// requireRole permite el paso solo si la identidad tiene alguno de los roles indicados.
// Debe usarse DESPUÉS de requireSession.
func requireRole(v *views, allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := GetIdentity(c)
		if identity == nil {
			return fiber.ErrUnauthorized
		}
		for _, want := range allowed {
			if identity.HasRole(want) {
				return c.Next()
			}
		}
		v.flash(c, entity.FlashError, "No tenés permisos para esa sección.")
		return c.Redirect("/dashboard")
	}
}

// GetSessionID devuelve el id de sesión; vacío si el cliente todavía es anónimo.
func GetSessionID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSessionID).(string)
	return s
}

// GetIdentity devuelve la identidad autenticada (después de requireSession).
func GetIdentity(c *fiber.Ctx) *dto.Identity {
	id, _ := c.Locals(LocalIdentity).(*dto.Identity)
	return id
}
