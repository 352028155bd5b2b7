// Package app is the composition root: it builds the repos for the chosen
// backend, seeds them and wires every service once. cmd/api and
// cmd/tripjournal both start here.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/pkordes/tripjournal/internal/fixtures"
	"github.com/pkordes/tripjournal/internal/repo"
	"github.com/pkordes/tripjournal/internal/service"
	"github.com/pkordes/tripjournal/migrations"
)

// Repos is the set of stores the services draw from.
type Repos = service.Repos

// Querier is satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewMemoryRepos builds the in-memory backend, preloaded with the fixtures
// when seed is true.
func NewMemoryRepos(seed bool) Repos {
	if !seed {
		return Repos{
			Trips:      repo.NewMemoryTripRepo(nil),
			Diaries:    repo.NewMemoryDiaryRepo(nil),
			Expenses:   repo.NewMemoryExpenseRepo(nil),
			Categories: repo.NewMemoryCategoryRepo(nil),
			Budgets:    repo.NewMemoryBudgetRepo(nil),
			Notes:      repo.NewMemoryNoteRepo(nil),
		}
	}
	return Repos{
		Trips:      repo.NewMemoryTripRepo(fixtures.Trips()),
		Diaries:    repo.NewMemoryDiaryRepo(fixtures.Diaries()),
		Expenses:   repo.NewMemoryExpenseRepo(fixtures.Expenses()),
		Categories: repo.NewMemoryCategoryRepo(fixtures.Categories()),
		Budgets:    repo.NewMemoryBudgetRepo(fixtures.Budgets()),
		Notes:      repo.NewMemoryNoteRepo(fixtures.Notes()),
	}
}

// NewPostgresRepos builds the Postgres backend on q. Pass the pool in the
// server and a pgx.Tx to run a batch of writes atomically.
func NewPostgresRepos(q Querier) Repos {
	return Repos{
		Trips:      repo.NewTripRepo(q),
		Diaries:    repo.NewDiaryRepo(q),
		Expenses:   repo.NewExpenseRepo(q),
		Categories: repo.NewCategoryRepo(q),
		Budgets:    repo.NewBudgetRepo(q),
		Notes:      repo.NewNoteRepo(q),
	}
}

// Seed loads the fixtures into r when it holds no trips and reports whether
// it wrote anything. Parents go in before children, and each list is
// inserted tail first so the head-insert stores end up in fixture order.
func Seed(ctx context.Context, r Repos) (bool, error) {
	existing, err := r.Trips.List(ctx)
	if err != nil {
		return false, fmt.Errorf("app.Seed: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	if err := insertAll(ctx, "trips", fixtures.Trips(), r.Trips.Create); err != nil {
		return false, err
	}
	if err := insertAll(ctx, "diaries", fixtures.Diaries(), r.Diaries.Create); err != nil {
		return false, err
	}
	if err := insertAll(ctx, "expenses", fixtures.Expenses(), r.Expenses.Create); err != nil {
		return false, err
	}
	if err := insertAll(ctx, "categories", fixtures.Categories(), r.Categories.Create); err != nil {
		return false, err
	}
	if err := insertAll(ctx, "budgets", fixtures.Budgets(), r.Budgets.Create); err != nil {
		return false, err
	}
	if err := insertAll(ctx, "notes", fixtures.Notes(), r.Notes.Create); err != nil {
		return false, err
	}
	return true, nil
}

// TxStarter is satisfied by *pgxpool.Pool and, through savepoints, pgx.Tx.
type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// SeedPostgres runs Seed in one transaction on db, so a failure part way
// leaves the database as it was and the next start tries again.
func SeedPostgres(ctx context.Context, db TxStarter) (bool, error) {
	var wrote bool
	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		var err error
		wrote, err = Seed(ctx, NewPostgresRepos(tx))
		return err
	})
	if err != nil {
		return false, err
	}
	return wrote, nil
}

func insertAll[T any](ctx context.Context, what string, items []T, create func(context.Context, T) (T, error)) error {
	for i := len(items) - 1; i >= 0; i-- {
		if _, err := create(ctx, items[i]); err != nil {
			return fmt.Errorf("app.Seed: %s: %w", what, err)
		}
	}
	return nil
}

// Services holds one instance of every service, sharing the same repos.
type Services struct {
	Trips    *service.TripService
	Diaries  *service.DiaryService
	Expenses *service.ExpenseService
	Budgets  *service.BudgetService
	Views    *service.ViewService
	Auth     *service.AuthService
	Export   *service.ExportService
}

// New wires the services. It panics if r is missing a repo.
func New(r Repos, opts ...service.Option) *Services {
	trips := service.NewTripService(r, opts...)
	return &Services{
		Trips:    trips,
		Diaries:  service.NewDiaryService(r, opts...),
		Expenses: service.NewExpenseService(r),
		Budgets:  service.NewBudgetService(r),
		Views:    service.NewViewService(r, trips, opts...),
		Auth:     service.NewAuthService(opts...),
		Export:   service.NewExportService(r),
	}
}

// OpenPool connects to Postgres and pings it.
func OpenPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("app.OpenPool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("app.OpenPool: ping: %w", err)
	}
	return pool, nil
}

// Migrate opens a database/sql handle on dsn and runs fn with the goose
// provider for the embedded migrations.
func Migrate(ctx context.Context, dsn string, fn func(context.Context, *goose.Provider) error) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("app.Migrate: open: %w", err)
	}
	defer db.Close()

	p, err := migrations.NewProvider(db)
	if err != nil {
		return fmt.Errorf("app.Migrate: %w", err)
	}
	if err := fn(ctx, p); err != nil {
		return fmt.Errorf("app.Migrate: %w", err)
	}
	return nil
}

// MigrateUp applies every pending migration and logs each one.
func MigrateUp(ctx context.Context, dsn string, log *slog.Logger) error {
	return Migrate(ctx, dsn, func(ctx context.Context, p *goose.Provider) error {
		results, err := p.Up(ctx)
		for _, r := range results {
			log.InfoContext(ctx, "migration applied",
				slog.Int64("version", r.Source.Version),
				slog.Duration("duration", r.Duration),
			)
		}
		return err
	})
}
