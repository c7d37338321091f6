// Package testdb opens the PostgreSQL database used by integration tests.
//
// Tests call Open, which skips the test when no database URL is configured
// and otherwise returns a migrated connection. WithTx runs a test body in a
// transaction that is always rolled back, so tests can share one database.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/phrazzld/studyplan/internal/platform/postgres"
	"github.com/phrazzld/studyplan/internal/redact"
)

// Environment variables checked for the test database URL, in order.
const (
	EnvTestDBURL   = "STUDYPLAN_TEST_DB_URL"
	EnvDatabaseURL = "DATABASE_URL"
	EnvAppDBURL    = "STUDYPLAN_DATABASE_URL"
)

// URL returns the first configured test database URL, or "".
func URL() string {
	for _, name := range []string{EnvTestDBURL, EnvDatabaseURL, EnvAppDBURL} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Open connects to the test database and applies every migration. It skips
// t when no URL is configured and fails it when the database is unreachable.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := URL()
	if dbURL == "" {
		t.Skipf("%s not set; skipping PostgreSQL integration test", EnvTestDBURL)
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		t.Fatalf("open test database: %s", redact.Error(err))
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("ping test database at %s: %s", redact.String(dbURL), redact.Error(err))
	}

	if err := postgres.Migrate(db, "up", nil); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// WithTx runs fn inside a transaction that is rolled back afterwards.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin test transaction: %s", redact.Error(err))
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Errorf("roll back test transaction: %s", redact.Error(err))
		}
	}()

	fn(t, tx)
}
