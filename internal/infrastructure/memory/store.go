// Package memory implementa los puertos de persistencia en proceso (DB_DRIVER=memory).
// Pensado para desarrollo local sin PostgreSQL y para tests; los datos se pierden al reiniciar.
package memory

import (
	"context"
	"sync"

	"github.com/nahuelmangano/speedtest/internal/application/auth"
	"github.com/nahuelmangano/speedtest/internal/application/cart"
	"github.com/nahuelmangano/speedtest/internal/application/usecase"
	"github.com/nahuelmangano/speedtest/internal/domain/entity"
	"github.com/nahuelmangano/speedtest/internal/domain/repository"
)

var (
	_ auth.TxRunner           = (*Store)(nil)
	_ usecase.CatalogTxRunner = (*Store)(nil)
	_ cart.TxRunner           = (*Store)(nil)
)

type tables struct {
	users      map[string]entity.User
	userByName map[string]string
	userOrder  []string
	roles      map[string]entity.Role
	roleByName map[string]string
	roleOrder  []string
	userRoles  map[string][]string
	categories map[string]entity.Category
	catOrder   []string
	products   map[string]entity.Product
	prodOrder  []string
	orders     map[string]entity.Order
}

func newTables() *tables {
	return &tables{
		users:      map[string]entity.User{},
		userByName: map[string]string{},
		roles:      map[string]entity.Role{},
		roleByName: map[string]string{},
		userRoles:  map[string][]string{},
		categories: map[string]entity.Category{},
		products:   map[string]entity.Product{},
		orders:     map[string]entity.Order{},
	}
}

// clone copia las tablas para que una transacción fallida no deje rastros.
func (t *tables) clone() *tables {
	c := newTables()
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.userByName {
		c.userByName[k] = v
	}
	c.userOrder = append(c.userOrder, t.userOrder...)
	for k, v := range t.roles {
		c.roles[k] = v
	}
	for k, v := range t.roleByName {
		c.roleByName[k] = v
	}
	c.roleOrder = append(c.roleOrder, t.roleOrder...)
	for k, v := range t.userRoles {
		c.userRoles[k] = append([]string(nil), v...)
	}
	for k, v := range t.categories {
		c.categories[k] = v
	}
	c.catOrder = append(c.catOrder, t.catOrder...)
	for k, v := range t.products {
		c.products[k] = v
	}
	c.prodOrder = append(c.prodOrder, t.prodOrder...)
	for k, v := range t.orders {
		c.orders[k] = v
	}
	return c
}

// Store base de datos en memoria. Las transacciones se serializan con un único lock
// y trabajan sobre una copia que solo se publica si fn no devuelve error.
type Store struct {
	mu   sync.Mutex
	data *tables
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newTables()}
}

// scope da acceso a las tablas: o bien tomando el lock del store (fuera de tx),
// o bien directamente sobre la copia de la transacción en curso.
type scope struct {
	store *Store
	tx    *tables
}

func (s scope) read(fn func(t *tables)) {
	if s.tx != nil {
		fn(s.tx)
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	fn(s.store.data)
}

func (s scope) write(fn func(t *tables) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	return fn(s.store.data)
}

func (s *Store) run(fn func(sc scope) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.data.clone()
	if err := fn(scope{store: s, tx: work}); err != nil {
		return err
	}
	s.data = work
	return nil
}

// Users devuelve el repositorio de usuarios fuera de transacción.
func (s *Store) Users() *UserRepo { return &UserRepo{sc: scope{store: s}} }

// Roles devuelve el repositorio de roles fuera de transacción.
func (s *Store) Roles() *RoleRepo { return &RoleRepo{sc: scope{store: s}} }

// Categories devuelve el repositorio de categorías fuera de transacción.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{sc: scope{store: s}} }

// Products devuelve el repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{sc: scope{store: s}} }

// Orders devuelve el repositorio de órdenes fuera de transacción.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{sc: scope{store: s}} }

// RunAuth implementa auth.TxRunner.
func (s *Store) RunAuth(_ context.Context, fn func(repository.UserRepository, repository.RoleRepository) error) error {
	return s.run(func(sc scope) error {
		return fn(&UserRepo{sc: sc}, &RoleRepo{sc: sc})
	})
}

// RunCatalog implementa usecase.CatalogTxRunner.
func (s *Store) RunCatalog(_ context.Context, fn func(repository.CategoryRepository, repository.ProductRepository) error) error {
	return s.run(func(sc scope) error {
		return fn(&CategoryRepo{sc: sc}, &ProductRepo{sc: sc})
	})
}

// RunCheckout implementa cart.TxRunner.
func (s *Store) RunCheckout(_ context.Context, fn func(repository.ProductRepository, repository.OrderRepository) error) error {
	return s.run(func(sc scope) error {
		return fn(&ProductRepo{sc: sc}, &OrderRepo{sc: sc})
	})
}
