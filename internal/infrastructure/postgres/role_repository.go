package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nahuelmangano/speedtest/internal/domain/entity"
	"github.com/nahuelmangano/speedtest/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación de RoleRepository sobre PostgreSQL.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// Ensure crea el rol si no existe y devuelve la fila vigente.
// ON CONFLICT evita el error de unicidad cuando dos altas compiten.
func (r *RoleRepo) Ensure(ctx context.Context, name string) (*entity.Role, error) {
	_, err := r.q.Exec(ctx,
		`INSERT INTO roles (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
		uuid.New().String(), name)
	if err != nil {
		return nil, fmt.Errorf("ensure role %s: %w", name, err)
	}
	var role entity.Role
	if err := r.q.QueryRow(ctx, `SELECT id, name FROM roles WHERE name = $1`, name).Scan(&role.ID, &role.Name); err != nil {
		return nil, fmt.Errorf("get role %s: %w", name, err)
	}
	return &role, nil
}

// Assign asocia rol y usuario; la pareja repetida se ignora.
func (r *RoleRepo) Assign(ctx context.Context, userID, roleID string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, roleID)
	if err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}

// ListByUser roles del usuario ordenados por nombre.
func (r *RoleRepo) ListByUser(ctx context.Context, userID string) ([]entity.Role, error) {
	return r.list(ctx, `
		SELECT r.id, r.name
		FROM roles r JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.name`, userID)
}

// List todos los roles ordenados por nombre.
func (r *RoleRepo) List(ctx context.Context) ([]entity.Role, error) {
	return r.list(ctx, `SELECT id, name FROM roles ORDER BY name`)
}

func (r *RoleRepo) list(ctx context.Context, query string, args ...any) ([]entity.Role, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var out []entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		out = append(out, role)
	}
	return out, rows.Err()
}
