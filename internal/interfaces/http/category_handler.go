package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nahuelmangano/speedtest/internal/application/dto"
	"github.com/nahuelmangano/speedtest/internal/application/usecase"
	"github.com/nahuelmangano/speedtest/internal/domain"
	"github.com/nahuelmangano/speedtest/internal/domain/entity"
)

// CategoryHandler alta de categorías (solo admin).
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
	v  *views
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, v *views) *CategoryHandler {
	return &CategoryHandler{uc: uc, v: v}
}

// NewForm formulario con las categorías existentes.
func (h *CategoryHandler) NewForm(c *fiber.Ctx) error {
	cats, err := h.uc.List(c.Context())
	if err != nil {
		return err
	}
	return h.v.render(c, fiber.StatusOK, "agregar_categoria", fiber.Map{"Titulo": "Agregar categoría", "Categorias": cats})
}

// Create persiste la categoría y vuelve al formulario.
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		h.v.flash(c, entity.FlashError, "Formulario inválido.")
		return c.Redirect("/agregar_categoria")
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			h.v.flash(c, entity.FlashError, "El nombre es obligatorio.")
			return c.Redirect("/agregar_categoria")
		}
		return err
	}
	h.v.flash(c, entity.FlashSuccess, "Categoría "+out.Name+" creada.")
	return c.Redirect("/agregar_categoria")
}
