package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine producto del carrito con cantidad agregada.
type CartLine struct {
	Product  ProductResponse `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartResponse contenido resuelto del carrito.
type CartResponse struct {
	Lines []CartLine      `json:"lines"`
	Total decimal.Decimal `json:"total"`
	// Missing ids del carrito que ya no existen en el catálogo.
	Missing int `json:"missing"`
}

// OrderItemResponse línea de una orden.
type OrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// PurchaseConfirmation acuse de una compra confirmada.
type PurchaseConfirmation struct {
	OrderID   string              `json:"order_id"`
	Message   string              `json:"message"`
	Total     decimal.Decimal     `json:"total"`
	Items     []OrderItemResponse `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
}
