package repository

import (
	"fmt"

	"github.com/amazona/e2e/internal/models"
)

// GetCart returns the user's cart, empty when nothing was saved
func (r *PostgresStore) GetCart(userID string) (*models.Cart, error) {
	rows, err := r.db.Query(`
		SELECT product_id, name, price, qty
		FROM cart_items
		WHERE user_id = $1
		ORDER BY product_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	defer rows.Close()

	cart := &models.Cart{UserID: userID}
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Price, &item.Qty); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		cart.Items = append(cart.Items, item)
	}
	return cart, rows.Err()
}

// SaveCart replaces the user's cart lines in one transaction
func (r *PostgresStore) SaveCart(cart *models.Cart) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM cart_items WHERE user_id = $1`, cart.UserID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	for _, item := range cart.Items {
		_, err := tx.Exec(`
			INSERT INTO cart_items (user_id, product_id, name, price, qty)
			VALUES ($1, $2, $3, $4, $5)
		`, cart.UserID, item.ProductID, item.Name, item.Price, item.Qty)
		if err != nil {
			return fmt.Errorf("failed to save cart item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cart: %w", err)
	}
	return nil
}
