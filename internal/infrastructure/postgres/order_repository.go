package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nahuelmangano/speedtest/internal/domain/entity"
	"github.com/nahuelmangano/speedtest/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta la cabecera y sus líneas. Debe correr dentro de RunCheckout.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	var username *string
	if o.Username != "" {
		username = &o.Username
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO orders (id, username, total, created_at) VALUES ($1, $2, $3, $4)`,
		o.ID, username, o.Total, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for i, it := range o.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (order_id, line, product_id, product_name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			o.ID, i+1, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas; (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var o entity.Order
	var username *string
	err := r.q.QueryRow(ctx,
		`SELECT id, username, total, created_at FROM orders WHERE id = $1`, id,
	).Scan(&o.ID, &username, &o.Total, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if username != nil {
		o.Username = *username
	}

	rows, err := r.q.Query(ctx, `
		SELECT product_id, product_name, quantity, unit_price
		FROM order_items WHERE order_id = $1 ORDER BY line`, id)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	return &o, rows.Err()
}
