package service

import (
	"context"
	"fmt"

	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/repo"
)

// BudgetService implements business logic for per-currency trip Budgets.
type BudgetService struct {
	trips   repo.TripRepo
	budgets repo.BudgetRepo
}

// NewBudgetService constructs a BudgetService backed by the provided repos.
func NewBudgetService(r Repos) *BudgetService {
	must("Trips", r.Trips)
	must("Budgets", r.Budgets)
	return &BudgetService{trips: r.Trips, budgets: r.Budgets}
}

// Create validates the budget and persists it.
// Returns domain.ErrValidation for a non-positive amount or a bad currency,
// domain.ErrNotFound for a missing trip and domain.ErrConflict when the trip
// already has a budget in that currency.
func (s *BudgetService) Create(ctx context.Context, b domain.Budget) (domain.Budget, error) {
	b, err := s.check(ctx, b)
	if err != nil {
		return domain.Budget{}, fmt.Errorf("service.BudgetService.Create: %w", err)
	}
	b.ID = domain.NewBudgetID()

	result, err := s.budgets.Create(ctx, b)
	if err != nil {
		return domain.Budget{}, fmt.Errorf("service.BudgetService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single budget by ID.
func (s *BudgetService) GetByID(ctx context.Context, id domain.BudgetID) (domain.Budget, error) {
	result, err := s.budgets.GetByID(ctx, id)
	if err != nil {
		return domain.Budget{}, fmt.Errorf("service.BudgetService.GetByID: %w", err)
	}
	return result, nil
}

// List returns every budget, newest first.
func (s *BudgetService) List(ctx context.Context) ([]domain.Budget, error) {
	budgets, err := s.budgets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.BudgetService.List: %w", err)
	}
	return orEmpty(budgets), nil
}

// ListByTripID returns the budgets of one trip, newest first.
func (s *BudgetService) ListByTripID(ctx context.Context, tripID domain.TripID) ([]domain.Budget, error) {
	budgets, err := s.budgets.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.BudgetService.ListByTripID: %w", err)
	}
	return orEmpty(budgets), nil
}

// Update validates and replaces an existing budget, with the same checks as Create.
func (s *BudgetService) Update(ctx context.Context, b domain.Budget) (domain.Budget, error) {
	b, err := s.check(ctx, b)
	if err != nil {
		return domain.Budget{}, fmt.Errorf("service.BudgetService.Update: %w", err)
	}
	result, err := s.budgets.Update(ctx, b)
	if err != nil {
		return domain.Budget{}, fmt.Errorf("service.BudgetService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a budget by ID.
func (s *BudgetService) Delete(ctx context.Context, id domain.BudgetID) error {
	if err := s.budgets.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.BudgetService.Delete: %w", err)
	}
	return nil
}

// DeleteByTripID removes every budget of a trip and reports how many went.
func (s *BudgetService) DeleteByTripID(ctx context.Context, tripID domain.TripID) (int64, error) {
	n, err := s.budgets.DeleteByTripID(ctx, tripID)
	if err != nil {
		return 0, fmt.Errorf("service.BudgetService.DeleteByTripID: %w", err)
	}
	return n, nil
}

func (s *BudgetService) check(ctx context.Context, b domain.Budget) (domain.Budget, error) {
	if err := validateAmount(b.Amount); err != nil {
		return domain.Budget{}, err
	}
	currency, err := normalizeCurrency(b.Currency)
	if err != nil {
		return domain.Budget{}, err
	}
	b.Currency = currency
	if _, err := s.trips.GetByID(ctx, b.TripID); err != nil {
		return domain.Budget{}, err
	}
	return b, nil
}
