// Package testutil provisions throwaway Postgres schemas for store
// integration tests.
package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/amazona/e2e/internal/config"
	"github.com/amazona/e2e/internal/database"
)

// TestDatabase is a migrated schema private to one test
type TestDatabase struct {
	DB         *sql.DB
	SchemaName string
	adminDB    *sql.DB
}

// localDefaults fills the POSTGRES_* variables a developer machine usually
// leaves unset
var localDefaults = map[string]string{
	"POSTGRES_USER":     "postgres",
	"POSTGRES_PASSWORD": "postgres",
	"POSTGRES_DB":       "postgres",
	"POSTGRES_HOSTNAME": "localhost",
}

func getenv(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return localDefaults[key]
}

// SetupTestDatabase creates a uniquely named schema, runs the migrations in
// it and drops it when t finishes. The test is skipped when Postgres cannot
// be reached.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	pg, err := config.LoadPostgresConfig(getenv)
	if err != nil {
		t.Fatalf("Failed to load postgres config: %v", err)
	}

	adminDB, err := database.Connect(pg)
	if err != nil {
		t.Skipf("Postgres unavailable: %v", err)
	}

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if _, err := adminDB.Exec(fmt.Sprintf("CREATE SCHEMA %s", schema)); err != nil {
		adminDB.Close()
		t.Fatalf("Failed to create test schema: %v", err)
	}

	td := &TestDatabase{SchemaName: schema, adminDB: adminDB}
	t.Cleanup(func() { td.teardown(t) })

	td.DB, err = database.Connect(pg.WithSchema(schema))
	if err != nil {
		t.Fatalf("Failed to connect to test schema: %v", err)
	}
	td.DB.SetMaxOpenConns(5)

	if err := database.RunMigrations(td.DB); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return td
}

func (td *TestDatabase) teardown(t *testing.T) {
	if td.DB != nil {
		td.DB.Close()
	}
	if _, err := td.adminDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", td.SchemaName)); err != nil {
		t.Logf("Warning: Failed to drop test schema %s: %v", td.SchemaName, err)
	}
	td.adminDB.Close()
}
