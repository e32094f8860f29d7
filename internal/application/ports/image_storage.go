package ports

import (
	"context"
	"io"
)

// ImageStorage define el puerto de salida para guardar imágenes subidas.
// Save valida la extensión del nombre original y devuelve una referencia
// (ruta URL relativa) estable para guardar en el producto.
type ImageStorage interface {
	Save(ctx context.Context, filename string, content io.Reader) (string, error)
}
