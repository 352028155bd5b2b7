package repo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/tripjournal/internal/domain"
)

// BudgetRepo defines the persistence operations for per-currency trip Budgets.
// A trip holds at most one budget per currency.
type BudgetRepo interface {
	// Create stores a new budget.
	// Returns domain.ErrConflict if the trip already has a budget in that currency.
	Create(ctx context.Context, budget domain.Budget) (domain.Budget, error)

	// GetByID returns domain.ErrNotFound if no budget with that ID exists.
	GetByID(ctx context.Context, id domain.BudgetID) (domain.Budget, error)

	// List returns every budget, newest first.
	List(ctx context.Context) ([]domain.Budget, error)

	// ListByTripID returns the budgets of one trip, newest first.
	ListByTripID(ctx context.Context, tripID domain.TripID) ([]domain.Budget, error)

	// Update replaces an existing budget.
	// Returns domain.ErrNotFound for an unknown ID and domain.ErrConflict
	// when the new currency collides with another budget of the same trip.
	Update(ctx context.Context, budget domain.Budget) (domain.Budget, error)

	// Delete returns domain.ErrNotFound if no budget with that ID exists.
	Delete(ctx context.Context, id domain.BudgetID) error

	// DeleteByTripID removes every budget of a trip and returns how many went.
	DeleteByTripID(ctx context.Context, tripID domain.TripID) (int64, error)
}

const budgetColumns = `id, trip_id, currency, amount::text`

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// pgBudgetRepo is the Postgres implementation of BudgetRepo.
type pgBudgetRepo struct {
	db db
}

// NewBudgetRepo constructs a BudgetRepo backed by the provided db connection.
func NewBudgetRepo(db db) BudgetRepo {
	return &pgBudgetRepo{db: db}
}

func (r *pgBudgetRepo) Create(ctx context.Context, budget domain.Budget) (domain.Budget, error) {
	const q = `
		INSERT INTO budgets (id, trip_id, currency, amount)
		VALUES (@id, @trip_id, @currency, @amount::numeric)
		RETURNING ` + budgetColumns

	result, err := scanBudget(r.db.QueryRow(ctx, q, budgetArgs(budget)))
	if err != nil {
		return domain.Budget{}, fmt.Errorf("repo.BudgetRepo.Create: %w", conflict(err))
	}
	return result, nil
}

func (r *pgBudgetRepo) GetByID(ctx context.Context, id domain.BudgetID) (domain.Budget, error) {
	const q = `SELECT ` + budgetColumns + ` FROM budgets WHERE id = @id`

	result, err := scanBudget(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": string(id)}))
	if err != nil {
		return domain.Budget{}, fmt.Errorf("repo.BudgetRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgBudgetRepo) List(ctx context.Context) ([]domain.Budget, error) {
	rows, err := r.db.Query(ctx, `SELECT `+budgetColumns+` FROM budgets ORDER BY position DESC`)
	if err != nil {
		return nil, fmt.Errorf("repo.BudgetRepo.List: %w", err)
	}
	budgets, err := collect(rows, scanBudget)
	if err != nil {
		return nil, fmt.Errorf("repo.BudgetRepo.List: scan: %w", err)
	}
	return budgets, nil
}

func (r *pgBudgetRepo) ListByTripID(ctx context.Context, tripID domain.TripID) ([]domain.Budget, error) {
	const q = `SELECT ` + budgetColumns + ` FROM budgets WHERE trip_id = @trip_id ORDER BY position DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": string(tripID)})
	if err != nil {
		return nil, fmt.Errorf("repo.BudgetRepo.ListByTripID: %w", err)
	}
	budgets, err := collect(rows, scanBudget)
	if err != nil {
		return nil, fmt.Errorf("repo.BudgetRepo.ListByTripID: scan: %w", err)
	}
	return budgets, nil
}

func (r *pgBudgetRepo) Update(ctx context.Context, budget domain.Budget) (domain.Budget, error) {
	const q = `
		UPDATE budgets
		SET trip_id = @trip_id, currency = @currency, amount = @amount::numeric
		WHERE id = @id
		RETURNING ` + budgetColumns

	result, err := scanBudget(r.db.QueryRow(ctx, q, budgetArgs(budget)))
	if err != nil {
		return domain.Budget{}, fmt.Errorf("repo.BudgetRepo.Update: %w", conflict(err))
	}
	return result, nil
}

func (r *pgBudgetRepo) Delete(ctx context.Context, id domain.BudgetID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM budgets WHERE id = @id`, pgx.NamedArgs{"id": string(id)})
	if err != nil {
		return fmt.Errorf("repo.BudgetRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.BudgetRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgBudgetRepo) DeleteByTripID(ctx context.Context, tripID domain.TripID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM budgets WHERE trip_id = @trip_id`, pgx.NamedArgs{"trip_id": string(tripID)})
	if err != nil {
		return 0, fmt.Errorf("repo.BudgetRepo.DeleteByTripID: %w", err)
	}
	return tag.RowsAffected(), nil
}

// conflict maps a unique constraint violation to domain.ErrConflict.
func conflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrConflict
	}
	return err
}

func budgetArgs(b domain.Budget) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":       string(b.ID),
		"trip_id":  string(b.TripID),
		"currency": b.Currency,
		"amount":   b.Amount.String(),
	}
}

func scanBudget(s scanner) (domain.Budget, error) {
	var (
		b      domain.Budget
		id     string
		tripID string
		amount string
	)
	if err := s.Scan(&id, &tripID, &b.Currency, &amount); err != nil {
		return domain.Budget{}, notFound(err)
	}
	value, err := parseAmount(amount)
	if err != nil {
		return domain.Budget{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	b.ID = domain.BudgetID(id)
	b.TripID = domain.TripID(tripID)
	b.Amount = value
	return b, nil
}

// memBudgetRepo is the in-memory implementation of BudgetRepo.
// The (trip, currency) check and the write happen under one lock.
type memBudgetRepo struct {
	mu sync.Mutex
	t  *memTable[domain.Budget, domain.BudgetID]
}

// NewMemoryBudgetRepo constructs a BudgetRepo holding seed in memory, in the given order.
func NewMemoryBudgetRepo(seed []domain.Budget) BudgetRepo {
	return &memBudgetRepo{t: newMemTable(seed,
		func(b domain.Budget) domain.BudgetID { return b.ID },
		func(b domain.Budget) domain.Budget { return b })}
}

func (r *memBudgetRepo) taken(b domain.Budget) bool {
	clash := r.t.filter(func(o domain.Budget) bool {
		return o.TripID == b.TripID && o.Currency == b.Currency && o.ID != b.ID
	})
	return len(clash) > 0
}

func (r *memBudgetRepo) Create(_ context.Context, budget domain.Budget) (domain.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken(budget) {
		return domain.Budget{}, fmt.Errorf("repo.BudgetRepo.Create: %w", domain.ErrConflict)
	}
	return r.t.insert(budget), nil
}

func (r *memBudgetRepo) GetByID(_ context.Context, id domain.BudgetID) (domain.Budget, error) {
	b, ok := r.t.get(id)
	if !ok {
		return domain.Budget{}, fmt.Errorf("repo.BudgetRepo.GetByID: %w", domain.ErrNotFound)
	}
	return b, nil
}

func (r *memBudgetRepo) List(_ context.Context) ([]domain.Budget, error) {
	return r.t.filter(nil), nil
}

func (r *memBudgetRepo) ListByTripID(_ context.Context, tripID domain.TripID) ([]domain.Budget, error) {
	return r.t.filter(func(b domain.Budget) bool { return b.TripID == tripID }), nil
}

func (r *memBudgetRepo) Update(_ context.Context, budget domain.Budget) (domain.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.t.get(budget.ID); !ok {
		return domain.Budget{}, fmt.Errorf("repo.BudgetRepo.Update: %w", domain.ErrNotFound)
	}
	if r.taken(budget) {
		return domain.Budget{}, fmt.Errorf("repo.BudgetRepo.Update: %w", domain.ErrConflict)
	}
	b, _ := r.t.replace(budget)
	return b, nil
}

func (r *memBudgetRepo) Delete(_ context.Context, id domain.BudgetID) error {
	if !r.t.remove(id) {
		return fmt.Errorf("repo.BudgetRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *memBudgetRepo) DeleteByTripID(_ context.Context, tripID domain.TripID) (int64, error) {
	return r.t.removeWhere(func(b domain.Budget) bool { return b.TripID == tripID }), nil
}
