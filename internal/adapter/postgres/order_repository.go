package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/digital-menu-qr/menu-service/internal/domain"
	"github.com/digital-menu-qr/menu-service/internal/interfaces"
)

type orderRepository struct {
	db DB
}

func NewOrderRepository(db DB) interfaces.OrderRepository {
	return &orderRepository{db: db}
}

// Create persists a checkout as a pending order. The line items are stored
// as a jsonb snapshot; created_at is assigned by the database.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `
		INSERT INTO orders (menu_id, order_type, table_number, customer_name, customer_phone, items, total, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err = r.db.QueryRow(ctx, query,
		order.MenuID, order.OrderType, order.TableNumber, order.CustomerName,
		order.CustomerPhone, itemsJSON, order.Total, order.Status,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `
		SELECT o.id, o.menu_id, o.order_type, o.table_number, o.customer_name, o.customer_phone,
		       o.items, o.total, o.status, o.created_at, m.name
		FROM orders o
		JOIN menus m ON m.id = o.menu_id
		WHERE o.id = $1
	`

	order, err := scanOrder(r.db.QueryRow(ctx, query, orderID))
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// ListByUser returns every order placed against the merchant's menus,
// newest first, annotated with the menu name.
func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	query := `
		SELECT o.id, o.menu_id, o.order_type, o.table_number, o.customer_name, o.customer_phone,
		       o.items, o.total, o.status, o.created_at, m.name
		FROM orders o
		JOIN menus m ON m.id = o.menu_id
		WHERE m.user_id = $1
		ORDER BY o.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID string, status domain.Status) error {
	query := `UPDATE orders SET status = $1 WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, status, orderID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, orderID string) error {
	query := `DELETE FROM orders WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func scanOrder(row Row) (*domain.Order, error) {
	var order domain.Order
	var itemsJSON []byte

	err := row.Scan(
		&order.ID, &order.MenuID, &order.OrderType, &order.TableNumber, &order.CustomerName,
		&order.CustomerPhone, &itemsJSON, &order.Total, &order.Status, &order.CreatedAt, &order.MenuName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
		}
	}
	return &order, nil
}
