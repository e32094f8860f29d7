package repository

import (
	"context"

	"github.com/nahuelmangano/speedtest/internal/domain/entity"
)

// OrderRepository persiste órdenes confirmadas con sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
}
