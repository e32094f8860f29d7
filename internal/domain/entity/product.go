package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product artículo de la tienda. Los campos puntero son opcionales (NULL en la base).
type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Stock       int
	Color       *string
	Description *string
	CategoryID  *string
	ImageURL    *string // referencia devuelta por el almacenamiento de imágenes
	CreatedAt   time.Time
}
