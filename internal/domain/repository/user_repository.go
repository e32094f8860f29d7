package repository

import (
	"context"

	"github.com/nahuelmangano/speedtest/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get devuelven (nil, nil) cuando no existe la fila.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// List devuelve todos los usuarios con sus roles, en orden de alta.
	List(ctx context.Context) ([]*entity.User, error)
}
