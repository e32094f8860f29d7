package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order compra confirmada. Username vacío para compras sin sesión.
type Order struct {
	ID        string
	Username  string
	Total     decimal.Decimal
	Items     []OrderItem
	CreatedAt time.Time
}

// OrderItem línea de una orden; copia nombre y precio al momento de la compra.
type OrderItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Subtotal cantidad por precio unitario.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
