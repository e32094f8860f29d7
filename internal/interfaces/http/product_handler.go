package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nahuelmangano/speedtest/internal/application/dto"
	"github.com/nahuelmangano/speedtest/internal/application/usecase"
	"github.com/nahuelmangano/speedtest/internal/domain"
	"github.com/nahuelmangano/speedtest/internal/domain/entity"
)

// ProductHandler catálogo: tienda pública, detalle y alta (protegida).
type ProductHandler struct {
	uc         *usecase.ProductUseCase
	categories *usecase.CategoryUseCase
	v          *views
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, categories *usecase.CategoryUseCase, v *views) *ProductHandler {
	return &ProductHandler{uc: uc, categories: categories, v: v}
}

// Store vitrina pública con todos los productos.
func (h *ProductHandler) Store(c *fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return err
	}
	return h.v.render(c, fiber.StatusOK, "tienda", fiber.Map{"Titulo": "Tienda", "Productos": items})
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/productos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return err
	}
	return c.JSON(out)
}

// Detail página de un producto; 404 si no existe.
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return h.v.notFound(c, "El producto no existe.")
		}
		return err
	}
	return h.v.render(c, fiber.StatusOK, "producto", fiber.Map{"Titulo": out.Name, "Producto": out})
}

// NewForm formulario de alta con las categorías disponibles.
func (h *ProductHandler) NewForm(c *fiber.Ctx) error {
	cats, err := h.categories.List(c.Context())
	if err != nil {
		return err
	}
	return h.v.render(c, fiber.StatusOK, "agregar_producto", fiber.Map{"Titulo": "Agregar producto", "Categorias": cats})
}

// Create godoc
// @Summary      Crear producto
// @Description  Formulario multipart; "imagen" es opcional (png, jpg, jpeg, gif).
// @Tags         products
// @Accept       multipart/form-data
// @Param        nombre        formData  string  true   "nombre"
// @Param        precio        formData  string  true   "precio decimal, hasta 2 decimales"
// @Param        stock         formData  int     true   "stock entero"
// @Param        color         formData  string  false  "color"
// @Param        descripcion   formData  string  false  "descripción"
// @Param        categoria_id  formData  string  false  "id de categoría"
// @Param        imagen        formData  file    false  "imagen"
// @Success      302  "redirige a /tienda; si falla, a /agregar_producto con aviso"
// @Router       /agregar_producto [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		h.v.flash(c, entity.FlashError, "Formulario inválido.")
		return c.Redirect("/agregar_producto")
	}

	var image *dto.ImageUpload
	if fh, err := c.FormFile("imagen"); err == nil && fh.Filename != "" {
		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()
		image = &dto.ImageUpload{Filename: fh.Filename, Content: f}
	}

	out, err := h.uc.Create(c.Context(), in, image)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnsupportedFileType):
			h.v.flash(c, entity.FlashError, "Tipo de archivo no permitido (png, jpg, jpeg o gif).")
		case errors.Is(err, domain.ErrValidation):
			h.v.flash(c, entity.FlashError, "Datos inválidos: revisá precio y stock.")
		case errors.Is(err, domain.ErrNotFound):
			h.v.flash(c, entity.FlashError, "La categoría no existe.")
		default:
			return err
		}
		return c.Redirect("/agregar_producto")
	}
	h.v.flash(c, entity.FlashSuccess, "Producto "+out.Name+" agregado.")
	return c.Redirect("/tienda")
}
