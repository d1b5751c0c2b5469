package config

import (
	"fmt"
	"strconv"
	"strings"
)

// PostgresConfig holds connection settings for the stub API's Postgres store
type PostgresConfig struct {
	User     string
	Password string
	Database string
	Host     string
	Port     int
	SSLMode  string
	// Schema, when set, becomes the connection's search_path
	Schema string
}

// LoadPostgresConfig reads the POSTGRES_* variables. User, password,
// database and host are required; port defaults to 5432 and sslmode to
// disable.
func LoadPostgresConfig(getenv func(string) string) (*PostgresConfig, error) {
	pg := &PostgresConfig{
		User:     getenv("POSTGRES_USER"),
		Password: getenv("POSTGRES_PASSWORD"),
		Database: getenv("POSTGRES_DB"),
		Host:     getenv("POSTGRES_HOSTNAME"),
		Port:     5432,
		SSLMode:  "disable",
		Schema:   getenv("POSTGRES_SCHEMA"),
	}

	var missing []string
	for _, f := range []struct{ key, value string }{
		{"POSTGRES_USER", pg.User},
		{"POSTGRES_PASSWORD", pg.Password},
		{"POSTGRES_DB", pg.Database},
		{"POSTGRES_HOSTNAME", pg.Host},
	} {
		if f.value == "" {
			missing = append(missing, f.key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s required", ErrInvalid, strings.Join(missing, ", "))
	}

	if v := getenv("POSTGRES_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("%w: POSTGRES_PORT %q is not a port", ErrInvalid, v)
		}
		pg.Port = port
	}
	if v := getenv("POSTGRES_SSLMODE"); v != "" {
		pg.SSLMode = v
	}
	return pg, nil
}

// WithSchema returns a copy of the configuration bound to schema
func (c PostgresConfig) WithSchema(schema string) *PostgresConfig {
	c.Schema = schema
	return &c
}

// ConnectionString returns a lib/pq key=value connection string
func (c *PostgresConfig) ConnectionString() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
	if c.Schema != "" {
		dsn += " search_path=" + c.Schema
	}
	return dsn
}
