package repository

import (
	"context"

	"github.com/nahuelmangano/speedtest/internal/domain/entity"
)

// RoleRepository registro de roles y asociación usuario-rol.
type RoleRepository interface {
	// Ensure obtiene o crea el rol por nombre; seguro ante altas concurrentes.
	Ensure(ctx context.Context, name string) (*entity.Role, error)
	// Assign asocia el rol al usuario; la pareja repetida no es error.
	Assign(ctx context.Context, userID, roleID string) error
	ListByUser(ctx context.Context, userID string) ([]entity.Role, error)
	List(ctx context.Context) ([]entity.Role, error)
}
