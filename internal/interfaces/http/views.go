package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nahuelmangano/speedtest/internal/application/ports"
	"github.com/nahuelmangano/speedtest/internal/domain/entity"
)

const layout = "layouts/main"

// views agrega a cada página los datos comunes del layout: usuario, avisos y tamaño del carrito.
type views struct {
	sessions ports.SessionStore
}

func newViews(sessions ports.SessionStore) *views {
	return &views{sessions: sessions}
}

// flash deja un aviso para la próxima página renderizada.
func (v *views) flash(c *fiber.Ctx, level entity.FlashLevel, msg string) {
	sid, err := ensureSession(c)
	if err != nil {
		return
	}
	_ = v.sessions.Update(sid, func(s *entity.Session) error {
		s.Flashes = append(s.Flashes, entity.Flash{Level: level, Message: msg})
		return nil
	})
}

// render consume los avisos pendientes y dibuja name dentro del layout.
func (v *views) render(c *fiber.Ctx, status int, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	sid := GetSessionID(c)
	var flashes []entity.Flash
	_ = v.sessions.Update(sid, func(s *entity.Session) error {
		flashes = s.Flashes
		s.Flashes = nil
		return nil
	})
	s, _ := v.sessions.Load(sid)
	data["Usuario"] = s.Username
	data["CarritoCantidad"] = len(s.Cart)
	data["Flashes"] = flashes
	return c.Status(status).Render(name, data, layout)
}

func (v *views) notFound(c *fiber.Ctx, msg string) error {
	return v.render(c, fiber.StatusNotFound, "error", fiber.Map{
		"Titulo": "No encontrado", "Codigo": fiber.StatusNotFound, "Mensaje": msg,
	})
}
