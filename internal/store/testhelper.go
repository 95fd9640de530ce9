package store

import (
	"affiliate-ledger/internal/observability"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
)

// TestDBType represents the type of database to use for testing
type TestDBType string

const (
	TestDBTypePostgres TestDBType = "postgres"
)

// TestDB wraps a test database instance
type TestDB struct {
	db     *sqlx.DB
	logger *observability.Logger
	Store  Store
	dbType TestDBType
}

// SetupTestDB connects to the test database. Tests are skipped when no
// database is reachable so unit runs work without docker.
func SetupTestDB(t *testing.T, dbType TestDBType) *TestDB {
	t.Helper()

	if dbType == "" {
		dbType = TestDBType(getTestEnv("TEST_DB_TYPE", string(TestDBTypePostgres)))
	}
	if dbType != TestDBTypePostgres {
		t.Fatalf("unsupported database type: %s", dbType)
	}

	db, err := setupPostgresDB(t)
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}

	// Migrations are applied by Flyway in docker-compose.services.yml
	logger := observability.NewNopLogger()
	return &TestDB{
		db:     db,
		logger: logger,
		Store:  Store{db: db, logger: logger},
		dbType: dbType,
	}
}

func getTestEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupPostgresDB(t *testing.T) (*sqlx.DB, error) {
	t.Helper()

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getTestEnv("TEST_DB_USER", "affiliate_user"),
		getTestEnv("TEST_DB_PASSWORD", "affiliate_password"),
		getTestEnv("TEST_DB_HOST", "localhost"),
		getTestEnv("TEST_DB_PORT", "5432"),
		getTestEnv("TEST_DB_NAME", "affiliate_db"),
	)

	db, err := sqlx.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	t.Cleanup(func() {
		db.Close()
	})
	return db, nil
}

// Truncate clears all data from tables while preserving schema
func (tdb *TestDB) Truncate(t *testing.T, tables ...string) {
	t.Helper()

	if len(tables) == 0 {
		tables = []string{
			"withdraw_requests",
			"referral_records",
			"click_events",
			"affiliate_links",
			"partner_product_rates",
			"partner_profiles",
		}
	}

	for _, table := range tables {
		_, err := tdb.db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil && !strings.Contains(err.Error(), "does not exist") {
			t.Fatalf("failed to truncate table %s: %v", table, err)
		}
	}
}

// Close closes the database connection
func (tdb *TestDB) Close() error {
	return tdb.db.Close()
}

// GetDB returns the underlying sqlx.DB for direct access if needed
func (tdb *TestDB) GetDB() *sqlx.DB {
	return tdb.db
}

// ExecSQL executes raw SQL for test setup
func (tdb *TestDB) ExecSQL(t *testing.T, query string, args ...interface{}) sql.Result {
	t.Helper()
	result, err := tdb.db.Exec(query, args...)
	if err != nil {
		t.Fatalf("failed to execute SQL: %v", err)
	}
	return result
}

// WithContext returns a context for testing
func (tdb *TestDB) WithContext() context.Context {
	return context.Background()
}
