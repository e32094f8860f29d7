// Package app arma la capa de persistencia según DB_DRIVER para los binarios de cmd/.
package app

import (
	"context"
	"fmt"

	"github.com/nahuelmangano/speedtest/internal/application/auth"
	"github.com/nahuelmangano/speedtest/internal/application/cart"
	"github.com/nahuelmangano/speedtest/internal/application/usecase"
	"github.com/nahuelmangano/speedtest/internal/domain/repository"
	"github.com/nahuelmangano/speedtest/internal/infrastructure/memory"
	"github.com/nahuelmangano/speedtest/internal/infrastructure/postgres"
	"github.com/nahuelmangano/speedtest/pkg/config"
)

// TxRunner reúne las transacciones que necesitan los casos de uso.
type TxRunner interface {
	auth.TxRunner
	usecase.CatalogTxRunner
	cart.TxRunner
}

// Repositories adaptadores de persistencia listos para inyectar.
type Repositories struct {
	Users      repository.UserRepository
	Roles      repository.RoleRepository
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	Orders     repository.OrderRepository
	Tx         TxRunner
	// Close libera conexiones; siempre distinto de nil.
	Close func()
}

// OpenRepositories conecta con PostgreSQL (aplicando migraciones) o crea el store en memoria.
func OpenRepositories(ctx context.Context, cfg config.DBConfig) (*Repositories, error) {
	switch cfg.Driver {
	case "memory":
		store := memory.NewStore()
		return &Repositories{
			Users:      store.Users(),
			Roles:      store.Roles(),
			Categories: store.Categories(),
			Products:   store.Products(),
			Orders:     store.Orders(),
			Tx:         store,
			Close:      func() {},
		}, nil
	case "postgres":
		if err := postgres.Migrate(cfg.ConnectionString()); err != nil {
			return nil, err
		}
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Users:      postgres.NewUserRepository(pool),
			Roles:      postgres.NewRoleRepository(pool),
			Categories: postgres.NewCategoryRepository(pool),
			Products:   postgres.NewProductRepository(pool),
			Orders:     postgres.NewOrderRepository(pool),
			Tx:         postgres.NewTxRunner(pool),
			Close:      pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("DB_DRIVER desconocido: %q", cfg.Driver)
	}
}
