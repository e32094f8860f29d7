package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/nahuelmangano/speedtest/internal/domain"
	"github.com/nahuelmangano/speedtest/internal/domain/entity"
	"github.com/nahuelmangano/speedtest/internal/domain/repository"
)

var (
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.RoleRepository     = (*RoleRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.OrderRepository    = (*OrderRepo)(nil)
)

// UserRepo usuarios en memoria.
type UserRepo struct{ sc scope }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.sc.write(func(t *tables) error {
		if _, ok := t.userByName[user.Username]; ok {
			return domain.ErrDuplicateUsername
		}
		u := *user
		u.Roles = nil
		t.users[u.ID] = u
		t.userByName[u.Username] = u.ID
		t.userOrder = append(t.userOrder, u.ID)
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.sc.read(func(t *tables) {
		if u, ok := t.users[id]; ok {
			out = withRoles(t, u)
		}
	})
	return out, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	r.sc.read(func(t *tables) {
		if id, ok := t.userByName[username]; ok {
			out = withRoles(t, t.users[id])
		}
	})
	return out, nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	r.sc.read(func(t *tables) {
		for _, id := range t.userOrder {
			out = append(out, withRoles(t, t.users[id]))
		}
	})
	return out, nil
}

func withRoles(t *tables, u entity.User) *entity.User {
	for _, roleID := range t.userRoles[u.ID] {
		u.Roles = append(u.Roles, t.roles[roleID])
	}
	sort.Slice(u.Roles, func(i, j int) bool { return u.Roles[i].Name < u.Roles[j].Name })
	return &u
}

// RoleRepo roles en memoria.
type RoleRepo struct{ sc scope }

func (r *RoleRepo) Ensure(_ context.Context, name string) (*entity.Role, error) {
	var out entity.Role
	err := r.sc.write(func(t *tables) error {
		if id, ok := t.roleByName[name]; ok {
			out = t.roles[id]
			return nil
		}
		out = entity.Role{ID: uuid.New().String(), Name: name}
		t.roles[out.ID] = out
		t.roleByName[name] = out.ID
		t.roleOrder = append(t.roleOrder, out.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RoleRepo) Assign(_ context.Context, userID, roleID string) error {
	return r.sc.write(func(t *tables) error {
		if _, ok := t.users[userID]; !ok {
			return fmt.Errorf("usuario %s: %w", userID, domain.ErrNotFound)
		}
		if _, ok := t.roles[roleID]; !ok {
			return fmt.Errorf("rol %s: %w", roleID, domain.ErrNotFound)
		}
		for _, id := range t.userRoles[userID] {
			if id == roleID {
				return nil
			}
		}
		t.userRoles[userID] = append(t.userRoles[userID], roleID)
		return nil
	})
}

func (r *RoleRepo) ListByUser(_ context.Context, userID string) ([]entity.Role, error) {
	var out []entity.Role
	r.sc.read(func(t *tables) {
		if _, ok := t.users[userID]; ok {
			out = withRoles(t, t.users[userID]).Roles
		}
	})
	return out, nil
}

func (r *RoleRepo) List(_ context.Context) ([]entity.Role, error) {
	var out []entity.Role
	r.sc.read(func(t *tables) {
		for _, id := range t.roleOrder {
			out = append(out, t.roles[id])
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// CategoryRepo categorías en memoria.
type CategoryRepo struct{ sc scope }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.sc.write(func(t *tables) error {
		t.categories[c.ID] = *c
		t.catOrder = append(t.catOrder, c.ID)
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	r.sc.read(func(t *tables) {
		if c, ok := t.categories[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	r.sc.read(func(t *tables) {
		for _, id := range t.catOrder {
			c := t.categories[id]
			out = append(out, &c)
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ProductRepo productos en memoria.
type ProductRepo struct{ sc scope }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.sc.write(func(t *tables) error {
		if p.CategoryID != nil {
			if _, ok := t.categories[*p.CategoryID]; !ok {
				return fmt.Errorf("categoría %s: %w", *p.CategoryID, domain.ErrNotFound)
			}
		}
		t.products[p.ID] = *p
		t.prodOrder = append(t.prodOrder, p.ID)
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.sc.read(func(t *tables) {
		if p, ok := t.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

// GetForUpdate equivale a GetByID: dentro de una transacción el store ya está bloqueado.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) UpdateStock(_ context.Context, id string, stock int) error {
	return r.sc.write(func(t *tables) error {
		p, ok := t.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.Stock = stock
		t.products[id] = p
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	r.sc.read(func(t *tables) {
		for _, id := range t.prodOrder {
			p := t.products[id]
			out = append(out, &p)
		}
	})
	return out, nil
}

// OrderRepo órdenes en memoria.
type OrderRepo struct{ sc scope }

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	return r.sc.write(func(t *tables) error {
		c := *o
		c.Items = append([]entity.OrderItem(nil), o.Items...)
		t.orders[o.ID] = c
		return nil
	})
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	r.sc.read(func(t *tables) {
		if o, ok := t.orders[id]; ok {
			o.Items = append([]entity.OrderItem(nil), o.Items...)
			out = &o
		}
	})
	return out, nil
}
