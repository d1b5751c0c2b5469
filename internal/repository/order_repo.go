package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/amazona/e2e/internal/models"
)

// CreateOrder creates a new order and its lines in the database
func (r *PostgresStore) CreateOrder(order *models.Order) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (id, reference, user_id, full_name, address, city, postal_code, country,
			payment_method, items_price, tax_price, shipping_price, total_price, status,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	addr := order.ShippingAddress
	_, err = tx.Exec(query,
		order.ID,
		order.Reference,
		order.UserID,
		addr.FullName,
		addr.Address,
		addr.City,
		addr.PostalCode,
		addr.Country,
		order.PaymentMethod,
		order.ItemsPrice,
		order.TaxPrice,
		order.ShippingPrice,
		order.TotalPrice,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i, item := range order.Items {
		_, err := tx.Exec(`
			INSERT INTO order_items (order_id, line, product_id, name, price, qty)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, order.ID, i, item.ProductID, item.Name, item.Price, item.Qty)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}
	return nil
}

const orderColumns = `id, reference, user_id, full_name, address, city, postal_code, country,
	payment_method, items_price, tax_price, shipping_price, total_price, status,
	COALESCE(failure_reason, ''), paid_at, created_at, updated_at`

// GetOrder retrieves an order by id or reference
func (r *PostgresStore) GetOrder(ref string) (*models.Order, error) {
	row := r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id::text = $1 OR reference = $1`, ref)

	order := &models.Order{}
	err := scanOrder(row, order)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order.Items, err = r.orderItems(order.ID); err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrdersByUser returns the user's orders, oldest first
func (r *PostgresStore) ListOrdersByUser(userID string) ([]models.Order, error) {
	rows, err := r.db.Query(`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		if err := scanOrder(rows, &order); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	for i := range orders {
		if orders[i].Items, err = r.orderItems(orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// UpdateOrderStatus updates the status, failure reason and payment time of an
// order
func (r *PostgresStore) UpdateOrderStatus(order *models.Order) error {
	query := `
		UPDATE orders
		SET status = $1, failure_reason = NULLIF($2, ''), paid_at = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.db.Exec(query, order.Status, order.FailureReason, order.PaidAt, order.UpdatedAt, order.ID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (r *PostgresStore) orderItems(orderID string) ([]models.OrderItem, error) {
	rows, err := r.db.Query(`
		SELECT product_id, name, price, qty
		FROM order_items
		WHERE order_id = $1
		ORDER BY line
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Price, &item.Qty); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrder(s scanner, order *models.Order) error {
	var paidAt sql.NullTime
	addr := &order.ShippingAddress
	err := s.Scan(
		&order.ID,
		&order.Reference,
		&order.UserID,
		&addr.FullName,
		&addr.Address,
		&addr.City,
		&addr.PostalCode,
		&addr.Country,
		&order.PaymentMethod,
		&order.ItemsPrice,
		&order.TaxPrice,
		&order.ShippingPrice,
		&order.TotalPrice,
		&order.Status,
		&order.FailureReason,
		&paidAt,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if paidAt.Valid {
		order.PaidAt = &paidAt.Time
	}
	return nil
}
