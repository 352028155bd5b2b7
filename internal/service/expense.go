package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/repo"
)

// ExpenseService implements business logic for Expenses and the spend
// Categories managed from settings.
type ExpenseService struct {
	trips      repo.TripRepo
	diaries    repo.DiaryRepo
	expenses   repo.ExpenseRepo
	categories repo.CategoryRepo
}

// NewExpenseService constructs an ExpenseService backed by the provided repos.
func NewExpenseService(r Repos) *ExpenseService {
	must("Trips", r.Trips)
	must("Diaries", r.Diaries)
	must("Expenses", r.Expenses)
	must("Categories", r.Categories)
	return &ExpenseService{trips: r.Trips, diaries: r.Diaries, expenses: r.Expenses, categories: r.Categories}
}

// Create validates the expense, checks its trip (and diary, when linked)
// exist, assigns an ID and persists it.
// Returns domain.ErrValidation if input violates business rules or the diary
// belongs to another trip. Returns domain.ErrNotFound for a missing trip or diary.
func (s *ExpenseService) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	expense, err := s.check(ctx, expense)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	expense.ID = domain.NewExpenseID()

	result, err := s.expenses.Create(ctx, expense)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single expense by ID.
func (s *ExpenseService) GetByID(ctx context.Context, id domain.ExpenseID) (domain.Expense, error) {
	result, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.GetByID: %w", err)
	}
	return result, nil
}

// List returns every expense, newest first.
func (s *ExpenseService) List(ctx context.Context) ([]domain.Expense, error) {
	expenses, err := s.expenses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.List: %w", err)
	}
	return orEmpty(expenses), nil
}

// ListByTripID returns the expenses of one trip, newest first.
func (s *ExpenseService) ListByTripID(ctx context.Context, tripID domain.TripID) ([]domain.Expense, error) {
	expenses, err := s.expenses.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.ListByTripID: %w", err)
	}
	return orEmpty(expenses), nil
}

// ListByDiaryID returns the expenses linked to one diary entry, newest first.
func (s *ExpenseService) ListByDiaryID(ctx context.Context, diaryID domain.DiaryID) ([]domain.Expense, error) {
	expenses, err := s.expenses.ListByDiaryID(ctx, diaryID)
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.ListByDiaryID: %w", err)
	}
	return orEmpty(expenses), nil
}

// Update validates and replaces an existing expense.
// Returns domain.ErrNotFound if the expense does not exist.
func (s *ExpenseService) Update(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	expense, err := s.check(ctx, expense)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Update: %w", err)
	}
	result, err := s.expenses.Update(ctx, expense)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an expense by ID.
func (s *ExpenseService) Delete(ctx context.Context, id domain.ExpenseID) error {
	if err := s.expenses.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	return nil
}

// DeleteByTripID removes every expense of a trip and reports how many went.
func (s *ExpenseService) DeleteByTripID(ctx context.Context, tripID domain.TripID) (int64, error) {
	n, err := s.expenses.DeleteByTripID(ctx, tripID)
	if err != nil {
		return 0, fmt.Errorf("service.ExpenseService.DeleteByTripID: %w", err)
	}
	return n, nil
}

// DeleteByDiaryID removes every expense linked to a diary and reports how many went.
func (s *ExpenseService) DeleteByDiaryID(ctx context.Context, diaryID domain.DiaryID) (int64, error) {
	n, err := s.expenses.DeleteByDiaryID(ctx, diaryID)
	if err != nil {
		return 0, fmt.Errorf("service.ExpenseService.DeleteByDiaryID: %w", err)
	}
	return n, nil
}

// check validates an expense against its trip and diary and normalizes it.
func (s *ExpenseService) check(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	if !e.Category.Valid() {
		return domain.Expense{}, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, e.Category)
	}
	if err := validateAmount(e.Amount); err != nil {
		return domain.Expense{}, err
	}
	currency, err := normalizeCurrency(e.Currency)
	if err != nil {
		return domain.Expense{}, err
	}
	e.Currency = currency
	if e.Date.IsZero() {
		return domain.Expense{}, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	e.Date = today(e.Date)
	e.Memo = strings.TrimSpace(e.Memo)

	if _, err := s.trips.GetByID(ctx, e.TripID); err != nil {
		return domain.Expense{}, err
	}
	if e.DiaryID != nil {
		d, err := s.diaries.GetByID(ctx, *e.DiaryID)
		if err != nil {
			return domain.Expense{}, err
		}
		if d.TripID != e.TripID {
			return domain.Expense{}, fmt.Errorf("%w: diary belongs to another trip", domain.ErrValidation)
		}
	}
	return e, nil
}
