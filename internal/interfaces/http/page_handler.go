package http

import "github.com/gofiber/fiber/v2"

// PageHandler páginas estáticas del portfolio.
type PageHandler struct {
	v *views
}

// NewPageHandler construye el handler.
func NewPageHandler(v *views) *PageHandler {
	return &PageHandler{v: v}
}

// Index página de inicio.
func (h *PageHandler) Index(c *fiber.Ctx) error {
	return h.v.render(c, fiber.StatusOK, "index", nil)
}

// SpeedTest página del test de velocidad (el navegador llama luego a /run-speedtest).
func (h *PageHandler) SpeedTest(c *fiber.Ctx) error {
	return h.v.render(c, fiber.StatusOK, "speedtest", fiber.Map{"Titulo": "Speed test"})
}
