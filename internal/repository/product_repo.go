package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/amazona/e2e/internal/models"
)

const productColumns = `id, name, slug, category, brand, image, description, price, count_in_stock, rating, num_reviews`

// SeedProducts inserts the catalogue, updating products that already exist
func (r *PostgresStore) SeedProducts(products []models.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			count_in_stock = EXCLUDED.count_in_stock
	`

	for _, p := range products {
		_, err := r.db.Exec(query,
			p.ID, p.Name, p.Slug, p.Category, p.Brand, p.Image, p.Description,
			p.Price, p.CountInStock, p.Rating, p.NumReviews,
		)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}
	}
	return nil
}

// ListProducts returns the catalogue in insertion order
func (r *PostgresStore) ListProducts() ([]models.Product, error) {
	rows, err := r.db.Query(`SELECT ` + productColumns + ` FROM products ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetProduct retrieves a product by id or slug
func (r *PostgresStore) GetProduct(ref string) (*models.Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1 OR LOWER(slug) = LOWER($1)`, ref)

	var p models.Product
	err := scanProduct(row, &p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(s scanner, p *models.Product) error {
	return s.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Category, &p.Brand, &p.Image, &p.Description,
		&p.Price, &p.CountInStock, &p.Rating, &p.NumReviews,
	)
}
