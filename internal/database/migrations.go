package database

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order; every statement is idempotent
var migrations = []struct {
	name string
	sql  string
}{
	{
		name: "users",
		sql: `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
	},
	{
		name: "products",
		sql: `
		CREATE TABLE IF NOT EXISTS products (
			id VARCHAR(64) PRIMARY KEY,
			position SERIAL,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) UNIQUE NOT NULL,
			category VARCHAR(100) NOT NULL,
			brand VARCHAR(100) NOT NULL,
			image VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price INTEGER NOT NULL,
			count_in_stock INTEGER NOT NULL,
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			num_reviews INTEGER NOT NULL DEFAULT 0
		);`,
	},
	{
		name: "cart_items",
		sql: `
		CREATE TABLE IF NOT EXISTS cart_items (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			product_id VARCHAR(64) NOT NULL,
			name VARCHAR(255) NOT NULL,
			price INTEGER NOT NULL,
			qty INTEGER NOT NULL,
			PRIMARY KEY (user_id, product_id)
		);`,
	},
	{
		name: "orders",
		sql: `
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			reference VARCHAR(255) UNIQUE NOT NULL,
			user_id UUID NOT NULL REFERENCES users(id),
			full_name VARCHAR(255) NOT NULL DEFAULT '',
			address VARCHAR(255) NOT NULL DEFAULT '',
			city VARCHAR(100) NOT NULL DEFAULT '',
			postal_code VARCHAR(20) NOT NULL DEFAULT '',
			country VARCHAR(100) NOT NULL DEFAULT '',
			payment_method VARCHAR(50) NOT NULL DEFAULT '',
			items_price INTEGER NOT NULL,
			tax_price INTEGER NOT NULL,
			shipping_price INTEGER NOT NULL,
			total_price INTEGER NOT NULL,
			status VARCHAR(50) NOT NULL,
			failure_reason VARCHAR(255),
			paid_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_orders_reference ON orders(reference);
		CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id);`,
	},
	{
		name: "order_items",
		sql: `
		CREATE TABLE IF NOT EXISTS order_items (
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			line INTEGER NOT NULL,
			product_id VARCHAR(64) NOT NULL,
			name VARCHAR(255) NOT NULL,
			price INTEGER NOT NULL,
			qty INTEGER NOT NULL,
			PRIMARY KEY (order_id, line)
		);`,
	},
}

// RunMigrations creates the tables used by the stub store
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	for _, m := range migrations {
		if _, err := db.Exec(m.sql); err != nil {
			return fmt.Errorf("failed to create %s table: %w", m.name, err)
		}
	}
	return nil
}
