package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nahuelmangano/speedtest/internal/application/cart"
	"github.com/nahuelmangano/speedtest/internal/domain"
	"github.com/nahuelmangano/speedtest/internal/domain/entity"
)

// CartHandler carrito de la sesión y compras. Rutas públicas: se puede comprar sin cuenta.
type CartHandler struct {
	uc *cart.UseCase
	v  *views
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *cart.UseCase, v *views) *CartHandler {
	return &CartHandler{uc: uc, v: v}
}

// Add agrega el producto al carrito y vuelve a la tienda.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid, err := ensureSession(c)
	if err != nil {
		return err
	}
	if err := h.uc.Add(sid, c.Params("id")); err != nil {
		return err
	}
	h.v.flash(c, entity.FlashSuccess, "Producto agregado al carrito.")
	return c.Redirect("/tienda")
}

// Show contenido del carrito con total.
func (h *CartHandler) Show(c *fiber.Ctx) error {
	out, err := h.uc.Items(c.Context(), GetSessionID(c))
	if err != nil {
		return err
	}
	return h.v.render(c, fiber.StatusOK, "carrito", fiber.Map{"Titulo": "Carrito", "Carrito": out})
}

// Buy godoc
// @Summary      Comprar una unidad de un producto
// @Description  Descuenta stock y registra la orden en una transacción.
// @Tags         cart
// @Produce      html
// @Param        id   path  string  true  "ID del producto"
// @Success      200  "confirmación"
// @Failure      404  "producto inexistente"
// @Router       /comprar/{id} [get]
func (h *CartHandler) Buy(c *fiber.Ctx) error {
	out, err := h.uc.Checkout(c.Context(), GetSessionID(c), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return h.v.notFound(c, "El producto no existe.")
		case errors.Is(err, domain.ErrInsufficientStock):
			h.v.flash(c, entity.FlashError, "Sin stock suficiente.")
			return c.Redirect("/tienda")
		default:
			return err
		}
	}
	return h.v.render(c, fiber.StatusOK, "compra", fiber.Map{"Titulo": "Compra", "Compra": out})
}

// BuyCart godoc
// @Summary      Comprar todo el carrito
// @Description  Todo o nada: si algún producto no tiene stock no se compra ninguno.
// @Tags         cart
// @Produce      html
// @Success      200  "confirmación"
// @Router       /carrito/comprar [post]
func (h *CartHandler) BuyCart(c *fiber.Ctx) error {
	out, err := h.uc.CheckoutCart(c.Context(), GetSessionID(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.v.flash(c, entity.FlashError, "El carrito está vacío.")
		case errors.Is(err, domain.ErrInsufficientStock):
			h.v.flash(c, entity.FlashError, "Sin stock suficiente: "+err.Error())
		default:
			return err
		}
		return c.Redirect("/carrito")
	}
	return h.v.render(c, fiber.StatusOK, "compra", fiber.Map{"Titulo": "Compra", "Compra": out})
}

// Receipt godoc
// @Summary      Comprobante PDF de una orden
// @Tags         cart
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  "orden inexistente"
// @Router       /pedido/{id}/recibo [get]
func (h *CartHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.uc.Receipt(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return h.v.notFound(c, "La orden no existe.")
		}
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="comprobante-`+id+`.pdf"`)
	return c.Send(pdf)
}
