package dto

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest campos crudos del formulario de alta; price y stock se validan en el caso de uso.
type CreateProductRequest struct {
	Name        string `form:"nombre" json:"name" validate:"required,min=1,max=100"`
	Price       string `form:"precio" json:"price" validate:"required"`
	Stock       string `form:"stock" json:"stock" validate:"required"`
	Color       string `form:"color" json:"color" validate:"max=50"`
	Description string `form:"descripcion" json:"description" validate:"max=2000"`
	CategoryID  string `form:"categoria_id" json:"category_id" validate:"omitempty,uuid"`
}

// ImageUpload archivo opcional adjunto al alta de producto.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	Color        *string         `json:"color"`
	Description  *string         `json:"description"`
	CategoryID   *string         `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	ImageURL     *string         `json:"image_url"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CreateCategoryRequest alta de categoría.
type CreateCategoryRequest struct {
	Name string `form:"nombre" json:"name" validate:"required,min=1,max=80"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
