package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/fixtures"
	"github.com/pkordes/tripjournal/internal/repo"
	"github.com/pkordes/tripjournal/internal/views"
)

// ActiveTripper reports the selected trip. *TripService satisfies it.
type ActiveTripper interface {
	ActiveTrip() (domain.TripID, bool)
}

// ViewService loads records and runs them through the views package.
// List views are scoped to one trip: the one asked for, else the active trip,
// else every trip.
type ViewService struct {
	trips    repo.TripRepo
	diaries  repo.DiaryRepo
	expenses repo.ExpenseRepo
	budgets  repo.BudgetRepo
	active   ActiveTripper
	now      func() time.Time
}

// NewViewService constructs a ViewService backed by the provided repos.
func NewViewService(r Repos, active ActiveTripper, opts ...Option) *ViewService {
	must("Trips", r.Trips)
	must("Diaries", r.Diaries)
	must("Expenses", r.Expenses)
	must("Budgets", r.Budgets)
	must("active trip source", active)
	return &ViewService{
		trips:    r.Trips,
		diaries:  r.Diaries,
		expenses: r.Expenses,
		budgets:  r.Budgets,
		active:   active,
		now:      buildOptions(opts).now,
	}
}

// Scope resolves which trip a list view covers. An empty tripID falls back to
// the active trip. ok is false when every trip is in scope.
func (s *ViewService) Scope(tripID domain.TripID) (domain.TripID, bool) {
	if tripID != "" {
		return tripID, true
	}
	return s.active.ActiveTrip()
}

func (s *ViewService) scopedDiaries(ctx context.Context, tripID domain.TripID) ([]domain.Diary, error) {
	if id, ok := s.Scope(tripID); ok {
		return s.diaries.ListByTripID(ctx, id)
	}
	return s.diaries.List(ctx)
}

func (s *ViewService) scopedExpenses(ctx context.Context, tripID domain.TripID) ([]domain.Expense, error) {
	if id, ok := s.Scope(tripID); ok {
		return s.expenses.ListByTripID(ctx, id)
	}
	return s.expenses.List(ctx)
}

func (s *ViewService) scopedBudgets(ctx context.Context, tripID domain.TripID) ([]domain.Budget, error) {
	if id, ok := s.Scope(tripID); ok {
		return s.budgets.ListByTripID(ctx, id)
	}
	return s.budgets.List(ctx)
}

// TripStats summarizes one trip for its card.
func (s *ViewService) TripStats(ctx context.Context, tripID domain.TripID) (views.Stats, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return views.Stats{}, fmt.Errorf("service.ViewService.TripStats: %w", err)
	}
	diaries, err := s.diaries.ListByTripID(ctx, tripID)
	if err != nil {
		return views.Stats{}, fmt.Errorf("service.ViewService.TripStats: %w", err)
	}
	expenses, err := s.expenses.ListByTripID(ctx, tripID)
	if err != nil {
		return views.Stats{}, fmt.Errorf("service.ViewService.TripStats: %w", err)
	}
	return views.TripStats(tripID, diaries, expenses), nil
}

// TripProgress measures the trip against the service clock.
func (s *ViewService) TripProgress(ctx context.Context, tripID domain.TripID) (views.TripProgress, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return views.TripProgress{}, fmt.Errorf("service.ViewService.TripProgress: %w", err)
	}
	return views.Progress(trip, s.now()), nil
}

// Diaries searches the scoped diaries and groups the hits by month.
func (s *ViewService) Diaries(ctx context.Context, tripID domain.TripID, query string) ([]views.MonthGroup, error) {
	diaries, err := s.scopedDiaries(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ViewService.Diaries: %w", err)
	}
	return orEmpty(views.GroupDiariesByMonth(views.SearchDiaries(diaries, query))), nil
}

// DiaryContent lays a diary's photos out between its paragraphs.
func (s *ViewService) DiaryContent(ctx context.Context, diaryID domain.DiaryID) ([]views.Block, error) {
	d, err := s.diaries.GetByID(ctx, diaryID)
	if err != nil {
		return nil, fmt.Errorf("service.ViewService.DiaryContent: %w", err)
	}
	return views.InterleavePhotos(d.Content, d.Photos), nil
}

// DiaryExpenses returns the expenses linked to a diary and their total.
func (s *ViewService) DiaryExpenses(ctx context.Context, diaryID domain.DiaryID) ([]domain.Expense, views.ExpenseSummary, error) {
	if _, err := s.diaries.GetByID(ctx, diaryID); err != nil {
		return nil, views.ExpenseSummary{}, fmt.Errorf("service.ViewService.DiaryExpenses: %w", err)
	}
	expenses, err := s.expenses.ListByDiaryID(ctx, diaryID)
	if err != nil {
		return nil, views.ExpenseSummary{}, fmt.Errorf("service.ViewService.DiaryExpenses: %w", err)
	}
	return orEmpty(expenses), views.DiaryExpenseSummary(diaryID, expenses), nil
}

// ExpensesByDate sections the scoped expenses by day.
func (s *ViewService) ExpensesByDate(ctx context.Context, tripID domain.TripID) ([]views.DayGroup, error) {
	expenses, err := s.scopedExpenses(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ViewService.ExpensesByDate: %w", err)
	}
	return orEmpty(views.GroupExpensesByDate(expenses)), nil
}

// CurrencyReport is one currency on the expense summary card.
type CurrencyReport struct {
	views.CurrencyTotal
	Symbol string
	Usage  *views.Usage // set when a budget exists in this currency
}

// CurrencyTotals sums the scoped expenses per currency and sets each against
// the budget in that currency, when there is one.
func (s *ViewService) CurrencyTotals(ctx context.Context, tripID domain.TripID) ([]CurrencyReport, error) {
	expenses, err := s.scopedExpenses(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ViewService.CurrencyTotals: %w", err)
	}
	budgets, err := s.scopedBudgets(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ViewService.CurrencyTotals: %w", err)
	}

	byCurrency := make(map[string]domain.Budget, len(budgets))
	for _, b := range budgets {
		if _, dup := byCurrency[b.Currency]; !dup {
			byCurrency[b.Currency] = b
		}
	}

	totals := views.TotalsByCurrency(expenses)
	out := make([]CurrencyReport, 0, len(totals))
	for _, t := range totals {
		r := CurrencyReport{CurrencyTotal: t, Symbol: fixtures.CurrencySymbol(t.Currency)}
		if b, ok := byCurrency[t.Currency]; ok {
			u := views.BudgetUsage(b, t.Total)
			r.Usage = &u
		}
		out = append(out, r)
	}
	return out, nil
}

// Budgets reports usage for every scoped budget.
func (s *ViewService) Budgets(ctx context.Context, tripID domain.TripID) ([]views.Usage, error) {
	budgets, err := s.scopedBudgets(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ViewService.Budgets: %w", err)
	}
	expenses, err := s.scopedExpenses(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ViewService.Budgets: %w", err)
	}
	return views.BudgetsUsage(budgets, expenses), nil
}

// Places groups the scoped diaries by country.
func (s *ViewService) Places(ctx context.Context, tripID domain.TripID) ([]views.CountryGroup, error) {
	diaries, err := s.scopedDiaries(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ViewService.Places: %w", err)
	}
	return orEmpty(views.DiariesByCountry(diaries)), nil
}

// Timeline drills into one country, or one location of it, oldest first.
// Returns domain.ErrValidation when country is empty.
func (s *ViewService) Timeline(ctx context.Context, tripID domain.TripID, country, location string) ([]domain.Diary, error) {
	if country == "" {
		return nil, fmt.Errorf("%w: country is required", domain.ErrValidation)
	}
	diaries, err := s.scopedDiaries(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ViewService.Timeline: %w", err)
	}
	return views.DiaryTimeline(diaries, country, location), nil
}
