package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripjournal/internal/domain"
)

// ExpenseRepo defines the persistence operations for Expenses.
type ExpenseRepo interface {
	// Create stores a new expense (ID already assigned) at the head of the list.
	Create(ctx context.Context, expense domain.Expense) (domain.Expense, error)

	// GetByID retrieves a single expense.
	// Returns domain.ErrNotFound if no expense with that ID exists.
	GetByID(ctx context.Context, id domain.ExpenseID) (domain.Expense, error)

	// List returns every expense, newest first.
	List(ctx context.Context) ([]domain.Expense, error)

	// ListByTripID returns the expenses of one trip, newest first.
	ListByTripID(ctx context.Context, tripID domain.TripID) ([]domain.Expense, error)

	// ListByDiaryID returns the expenses linked to one diary entry, newest first.
	ListByDiaryID(ctx context.Context, diaryID domain.DiaryID) ([]domain.Expense, error)

	// Update replaces an existing expense.
	// Returns domain.ErrNotFound if no expense with that ID exists.
	Update(ctx context.Context, expense domain.Expense) (domain.Expense, error)

	// Delete removes an expense by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id domain.ExpenseID) error

	// DeleteByTripID removes every expense of a trip and returns how many went.
	DeleteByTripID(ctx context.Context, tripID domain.TripID) (int64, error)

	// DeleteByDiaryID removes every expense linked to a diary and returns how many went.
	DeleteByDiaryID(ctx context.Context, diaryID domain.DiaryID) (int64, error)
}

const expenseColumns = `id, trip_id, diary_id, date, category, amount::text, currency, memo`

// pgExpenseRepo is the Postgres implementation of ExpenseRepo.
type pgExpenseRepo struct {
	db db
}

// NewExpenseRepo constructs an ExpenseRepo backed by the provided db connection.
func NewExpenseRepo(db db) ExpenseRepo {
	return &pgExpenseRepo{db: db}
}

func (r *pgExpenseRepo) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	const q = `
		INSERT INTO expenses (id, trip_id, diary_id, date, category, amount, currency, memo)
		VALUES (@id, @trip_id, @diary_id, @date, @category, @amount::numeric, @currency, @memo)
		RETURNING ` + expenseColumns

	result, err := scanExpense(r.db.QueryRow(ctx, q, expenseArgs(expense)))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) GetByID(ctx context.Context, id domain.ExpenseID) (domain.Expense, error) {
	const q = `SELECT ` + expenseColumns + ` FROM expenses WHERE id = @id`

	result, err := scanExpense(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": string(id)}))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) List(ctx context.Context) ([]domain.Expense, error) {
	return r.query(ctx, "repo.ExpenseRepo.List",
		`SELECT `+expenseColumns+` FROM expenses ORDER BY position DESC`, nil)
}

func (r *pgExpenseRepo) ListByTripID(ctx context.Context, tripID domain.TripID) ([]domain.Expense, error) {
	return r.query(ctx, "repo.ExpenseRepo.ListByTripID",
		`SELECT `+expenseColumns+` FROM expenses WHERE trip_id = @trip_id ORDER BY position DESC`,
		pgx.NamedArgs{"trip_id": string(tripID)})
}

func (r *pgExpenseRepo) ListByDiaryID(ctx context.Context, diaryID domain.DiaryID) ([]domain.Expense, error) {
	return r.query(ctx, "repo.ExpenseRepo.ListByDiaryID",
		`SELECT `+expenseColumns+` FROM expenses WHERE diary_id = @diary_id ORDER BY position DESC`,
		pgx.NamedArgs{"diary_id": string(diaryID)})
}

func (r *pgExpenseRepo) query(ctx context.Context, op, q string, args pgx.NamedArgs) ([]domain.Expense, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if args == nil {
		rows, err = r.db.Query(ctx, q)
	} else {
		rows, err = r.db.Query(ctx, q, args)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	expenses, err := collect(rows, scanExpense)
	if err != nil {
		return nil, fmt.Errorf("%s: scan: %w", op, err)
	}
	return expenses, nil
}

func (r *pgExpenseRepo) Update(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	const q = `
		UPDATE expenses
		SET trip_id  = @trip_id,
		    diary_id = @diary_id,
		    date     = @date,
		    category = @category,
		    amount   = @amount::numeric,
		    currency = @currency,
		    memo     = @memo
		WHERE id = @id
		RETURNING ` + expenseColumns

	result, err := scanExpense(r.db.QueryRow(ctx, q, expenseArgs(expense)))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) Delete(ctx context.Context, id domain.ExpenseID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = @id`, pgx.NamedArgs{"id": string(id)})
	if err != nil {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgExpenseRepo) DeleteByTripID(ctx context.Context, tripID domain.TripID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE trip_id = @trip_id`, pgx.NamedArgs{"trip_id": string(tripID)})
	if err != nil {
		return 0, fmt.Errorf("repo.ExpenseRepo.DeleteByTripID: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgExpenseRepo) DeleteByDiaryID(ctx context.Context, diaryID domain.DiaryID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE diary_id = @diary_id`, pgx.NamedArgs{"diary_id": string(diaryID)})
	if err != nil {
		return 0, fmt.Errorf("repo.ExpenseRepo.DeleteByDiaryID: %w", err)
	}
	return tag.RowsAffected(), nil
}

func expenseArgs(e domain.Expense) pgx.NamedArgs {
	var diaryID *string
	if e.DiaryID != nil {
		s := string(*e.DiaryID)
		diaryID = &s
	}
	return pgx.NamedArgs{
		"id":       string(e.ID),
		"trip_id":  string(e.TripID),
		"diary_id": diaryID, // nil becomes NULL
		"date":     e.Date,
		"category": string(e.Category),
		"amount":   e.Amount.String(),
		"currency": e.Currency,
		"memo":     e.Memo,
	}
}

func scanExpense(s scanner) (domain.Expense, error) {
	var (
		e        domain.Expense
		id       string
		tripID   string
		diaryID  *string
		date     pgtype.Date
		category string
		amount   string
	)

	if err := s.Scan(&id, &tripID, &diaryID, &date, &category, &amount, &e.Currency, &e.Memo); err != nil {
		return domain.Expense{}, notFound(err)
	}

	value, err := parseAmount(amount)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}

	e.ID = domain.ExpenseID(id)
	e.TripID = domain.TripID(tripID)
	if diaryID != nil {
		d := domain.DiaryID(*diaryID)
		e.DiaryID = &d
	}
	e.Date = dateOf(date)
	e.Category = domain.CategoryKey(category)
	e.Amount = value
	return e, nil
}

// memExpenseRepo is the in-memory implementation of ExpenseRepo.
type memExpenseRepo struct {
	t *memTable[domain.Expense, domain.ExpenseID]
}

// NewMemoryExpenseRepo constructs an ExpenseRepo holding seed in memory, in the given order.
func NewMemoryExpenseRepo(seed []domain.Expense) ExpenseRepo {
	return &memExpenseRepo{t: newMemTable(seed, func(e domain.Expense) domain.ExpenseID { return e.ID }, cloneExpense)}
}

func (r *memExpenseRepo) Create(_ context.Context, expense domain.Expense) (domain.Expense, error) {
	return r.t.insert(expense), nil
}

func (r *memExpenseRepo) GetByID(_ context.Context, id domain.ExpenseID) (domain.Expense, error) {
	e, ok := r.t.get(id)
	if !ok {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.GetByID: %w", domain.ErrNotFound)
	}
	return e, nil
}

func (r *memExpenseRepo) List(_ context.Context) ([]domain.Expense, error) {
	return r.t.filter(nil), nil
}

func (r *memExpenseRepo) ListByTripID(_ context.Context, tripID domain.TripID) ([]domain.Expense, error) {
	return r.t.filter(func(e domain.Expense) bool { return e.TripID == tripID }), nil
}

func (r *memExpenseRepo) ListByDiaryID(_ context.Context, diaryID domain.DiaryID) ([]domain.Expense, error) {
	return r.t.filter(linkedTo(diaryID)), nil
}

func (r *memExpenseRepo) Update(_ context.Context, expense domain.Expense) (domain.Expense, error) {
	e, ok := r.t.replace(expense)
	if !ok {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Update: %w", domain.ErrNotFound)
	}
	return e, nil
}

func (r *memExpenseRepo) Delete(_ context.Context, id domain.ExpenseID) error {
	if !r.t.remove(id) {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *memExpenseRepo) DeleteByTripID(_ context.Context, tripID domain.TripID) (int64, error) {
	return r.t.removeWhere(func(e domain.Expense) bool { return e.TripID == tripID }), nil
}

func (r *memExpenseRepo) DeleteByDiaryID(_ context.Context, diaryID domain.DiaryID) (int64, error) {
	return r.t.removeWhere(linkedTo(diaryID)), nil
}

func linkedTo(diaryID domain.DiaryID) func(domain.Expense) bool {
	return func(e domain.Expense) bool { return e.DiaryID != nil && *e.DiaryID == diaryID }
}

func cloneExpense(e domain.Expense) domain.Expense {
	if e.DiaryID != nil {
		d := *e.DiaryID
		e.DiaryID = &d
	}
	return e
}
