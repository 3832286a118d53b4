package postgres

import (
	"context"
	"os"
	"strconv"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/motopecasjacare/erp/internal/config"
	"github.com/motopecasjacare/erp/internal/pkg/database"
)

// testPostgresConfig returns the integration database settings, skipping the
// test when POSTGRES_TEST_HOST is not set.
func testPostgresConfig(t *testing.T) config.PostgresConfig {
	t.Helper()
	if os.Getenv("POSTGRES_TEST_HOST") == "" {
		t.Skip("Skipping integration test: POSTGRES_TEST_HOST not set")
	}

	cfg := config.PostgresConfig{
		Host:     os.Getenv("POSTGRES_TEST_HOST"),
		Port:     5432,
		User:     os.Getenv("POSTGRES_TEST_USER"),
		Password: os.Getenv("POSTGRES_TEST_PASS"),
		Database: os.Getenv("POSTGRES_TEST_DB"),
		SSLMode:  "disable",
		MaxConns: 5,
		MinConns: 1,
	}
	if port, err := strconv.Atoi(os.Getenv("POSTGRES_TEST_PORT")); err == nil {
		cfg.Port = port
	}
	if cfg.Database == "" {
		cfg.Database = "jacare_test"
	}
	if cfg.User == "" {
		cfg.User = "postgres"
	}
	return cfg
}

// getTestDB returns a migrated database connection for integration tests
func getTestDB(t *testing.T) *database.PostgresDB {
	cfg := testPostgresConfig(t)
	ctx := context.Background()

	if err := database.ApplyMigrations(ctx, cfg.DSN()); err != nil {
		t.Skipf("Skipping integration test: failed to migrate PostgreSQL: %v", err)
	}

	db, err := database.NewPostgres(ctx, cfg)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to PostgreSQL: %v", err)
	}
	t.Cleanup(db.Close)
	resetTables(t, db)
	return db
}

// getTestReportingDB returns the sqlx handle used by reports
func getTestReportingDB(t *testing.T) *sqlx.DB {
	db, err := database.NewReportingDB(context.Background(), testPostgresConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// resetTables empties every business table
func resetTables(t *testing.T, db *database.PostgresDB) {
	t.Helper()
	_, err := db.Pool.Exec(context.Background(), `TRUNCATE product_returns, order_items, orders, stock_entries,
		products, categories, suppliers, customers, expenses RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}
