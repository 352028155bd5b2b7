// Package testutil holds the Postgres helpers shared by the journal's
// integration tests. Everything here is keyed on TEST_DATABASE_URL: helpers
// that take a *testing.T skip the test when it is unset.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // "pgx" driver for goose

	"github.com/pkordes/tripjournal/migrations"
)

// DSNEnv names the variable that points tests at a disposable database.
const DSNEnv = "TEST_DATABASE_URL"

// NewPool returns a pool on the test database, closed at test cleanup.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewPool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// NewTx begins a transaction that is rolled back at test cleanup. Trips,
// diaries and expenses written through it never reach other tests, so each
// test sees only the rows it inserted.
func NewTx(t *testing.T) pgx.Tx {
	t.Helper()

	tx, err := NewPool(t).Begin(context.Background())
	if err != nil {
		t.Fatalf("testutil.NewTx: begin: %v", err)
	}
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })
	return tx
}

// NewSQLDB returns a database/sql handle on the test database for goose.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := openSQL(requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// MigrateUp applies the embedded journal schema to dsn. It is meant for
// TestMain, where no *testing.T exists, and is a no-op once the schema is
// current.
func MigrateUp(ctx context.Context, dsn string) (applied int, err error) {
	db, err := openSQL(dsn)
	if err != nil {
		return 0, fmt.Errorf("testutil.MigrateUp: %w", err)
	}
	defer db.Close()

	p, err := migrations.NewProvider(db)
	if err != nil {
		return 0, fmt.Errorf("testutil.MigrateUp: %w", err)
	}
	results, err := p.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("testutil.MigrateUp: %w", err)
	}
	return len(results), nil
}

func openSQL(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return db, nil
}

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		t.Skip(DSNEnv + " not set; skipping Postgres test")
	}
	return dsn
}
