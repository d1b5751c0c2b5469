package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// PostgresStore handles database operations for users, products, carts and
// orders
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a store on an open database connection
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

// isUniqueViolation reports a unique constraint failure
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
