// Package repo contains all data access logic for the trip journal.
// Each resource has its own file with an interface, a Postgres implementation
// and an in-memory implementation. No business logic lives here, only storage
// and type mapping.
//
// Both implementations keep lists newest-first: a created record goes to the
// head of its list.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/pkordes/tripjournal/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// notFound maps pgx.ErrNoRows to domain.ErrNotFound and passes other errors through.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

// collect drains rows through scan. The rows are always closed.
func collect[T any](rows pgx.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// dateOf converts a scanned DATE column to a UTC midnight time.Time.
func dateOf(d pgtype.Date) time.Time {
	if !d.Valid {
		return time.Time{}
	}
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// parseAmount converts a NUMERIC column selected as text.
// Amounts travel as text so no pgx numeric adapter is needed.
func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// orEmpty keeps NOT NULL array columns happy when a slice is nil.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
