package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nahuelmangano/speedtest/internal/application/usecase"
	"github.com/nahuelmangano/speedtest/internal/domain/entity"
)

// DashboardHandler panel privado: usuarios y productos.
type DashboardHandler struct {
	users    *usecase.UserUseCase
	products *usecase.ProductUseCase
	v        *views
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(users *usecase.UserUseCase, products *usecase.ProductUseCase, v *views) *DashboardHandler {
	return &DashboardHandler{users: users, products: products, v: v}
}

// Show lista usuarios (con roles) y productos. Requiere sesión.
func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return err
	}
	products, err := h.products.List(c.Context())
	if err != nil {
		return err
	}
	identity := GetIdentity(c)
	isAdmin := identity != nil && identity.HasRole(entity.RoleAdmin)
	return h.v.render(c, fiber.StatusOK, "dashboard", fiber.Map{
		"Titulo":    "Panel",
		"Usuarios":  users,
		"Productos": products,
		"EsAdmin":   isAdmin,
	})
}
