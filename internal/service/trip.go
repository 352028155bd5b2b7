package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/repo"
	"github.com/pkordes/tripjournal/internal/views"
)

// TripService implements business logic for Trips and their Notes. It also
// owns the session selections: the active trip and the current tab.
type TripService struct {
	trips    repo.TripRepo
	diaries  repo.DiaryRepo
	expenses repo.ExpenseRepo
	budgets  repo.BudgetRepo
	notes    repo.NoteRepo
	log      *slog.Logger
	now      func() time.Time

	mu     sync.RWMutex
	active *domain.TripID
	tab    domain.Tab
}

// NewTripService constructs a TripService. It needs every repo a trip owns
// children in, because deleting a trip cascades to them.
func NewTripService(r Repos, opts ...Option) *TripService {
	must("Trips", r.Trips)
	must("Diaries", r.Diaries)
	must("Expenses", r.Expenses)
	must("Budgets", r.Budgets)
	must("Notes", r.Notes)
	o := buildOptions(opts)
	return &TripService{
		trips:    r.Trips,
		diaries:  r.Diaries,
		expenses: r.Expenses,
		budgets:  r.Budgets,
		notes:    r.Notes,
		log:      o.log,
		now:      o.now,
		tab:      domain.TabHome,
	}
}

// Create validates the trip, assigns a fresh ID, stores it at the head of the
// list and makes it the active trip.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip, err := normalizeTrip(trip)
	if err != nil {
		return domain.Trip{}, err
	}
	trip.ID = domain.NewTripID()

	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	s.mu.Lock()
	id := result.ID
	s.active = &id
	s.mu.Unlock()

	return result, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id domain.TripID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns the trips matching status, sorted by start date.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, status domain.TripStatusFilter, order domain.TripSort) ([]domain.Trip, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	return views.FilterTrips(trips, status, order), nil
}

// ListPaged returns one page of List and the total number of matching trips.
func (s *TripService) ListPaged(ctx context.Context, status domain.TripStatusFilter, order domain.TripSort, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, err := s.List(ctx, status, order)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	start, end := p.Bounds(len(trips))
	return trips[start:end], int64(len(trips)), nil
}

// Update validates and replaces an existing trip.
// Returns domain.ErrValidation for invalid input and domain.ErrNotFound if the
// trip does not exist; in both cases nothing is stored.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip, err := normalizeTrip(trip)
	if err != nil {
		return domain.Trip{}, err
	}
	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip together with its expenses, diaries, budgets and
// notes. If it was the active trip, the first remaining trip becomes active,
// or none when the list is empty.
// Returns domain.ErrNotFound if the trip does not exist; nothing is removed then.
func (s *TripService) Delete(ctx context.Context, id domain.TripID) error {
	if _, err := s.trips.GetByID(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}

	expenses, err := s.expenses.DeleteByTripID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: expenses: %w", err)
	}
	diaries, err := s.diaries.DeleteByTripID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: diaries: %w", err)
	}
	budgets, err := s.budgets.DeleteByTripID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: budgets: %w", err)
	}
	notes, err := s.notes.DeleteByTripID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: notes: %w", err)
	}
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}

	s.log.DebugContext(ctx, "trip deleted",
		slog.String("trip_id", string(id)),
		slog.Int64("expenses", expenses),
		slog.Int64("diaries", diaries),
		slog.Int64("budgets", budgets),
		slog.Int64("notes", notes),
	)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil || *s.active != id {
		return nil
	}
	s.active = nil
	remaining, err := s.trips.List(ctx)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: pick active: %w", err)
	}
	if len(remaining) > 0 {
		next := remaining[0].ID
		s.active = &next
	}
	return nil
}

// ActiveTrip returns the ID of the selected trip, or false when none is selected.
func (s *TripService) ActiveTrip() (domain.TripID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil {
		return "", false
	}
	return *s.active, true
}

// SetActiveTrip selects a trip. A nil id clears the selection.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) SetActiveTrip(ctx context.Context, id *domain.TripID) error {
	if id == nil {
		s.mu.Lock()
		s.active = nil
		s.mu.Unlock()
		return nil
	}
	if _, err := s.trips.GetByID(ctx, *id); err != nil {
		return fmt.Errorf("service.TripService.SetActiveTrip: %w", err)
	}
	s.mu.Lock()
	v := *id
	s.active = &v
	s.mu.Unlock()
	return nil
}

// CurrentTab returns the last selected tab. It starts on TabHome.
func (s *TripService) CurrentTab() domain.Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tab
}

// SetCurrentTab records the selected tab.
// Returns domain.ErrValidation for an unknown tab.
func (s *TripService) SetCurrentTab(tab domain.Tab) error {
	if !tab.Valid() {
		return fmt.Errorf("%w: unknown tab %q", domain.ErrValidation, tab)
	}
	s.mu.Lock()
	s.tab = tab
	s.mu.Unlock()
	return nil
}

// normalizeTrip enforces the rules shared by Create and Update and fills defaults.
//   - Title must be non-empty (whitespace-only titles are rejected).
//   - Both dates are required and StartDate must not be after EndDate.
//   - Status must be ongoing or completed.
//   - An empty cover falls back to domain.DefaultCoverImage.
//   - Countries are trimmed and de-duplicated, keeping their order.
func normalizeTrip(trip domain.Trip) (domain.Trip, error) {
	trip.Title = strings.TrimSpace(trip.Title)
	if trip.Title == "" {
		return domain.Trip{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		return domain.Trip{}, fmt.Errorf("%w: start and end dates are required", domain.ErrValidation)
	}
	trip.StartDate = today(trip.StartDate)
	trip.EndDate = today(trip.EndDate)
	if trip.EndDate.Before(trip.StartDate) {
		return domain.Trip{}, fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	if !trip.Status.Valid() {
		return domain.Trip{}, fmt.Errorf("%w: status must be ongoing or completed", domain.ErrValidation)
	}
	if strings.TrimSpace(trip.CoverImage) == "" {
		trip.CoverImage = domain.DefaultCoverImage
	}
	trip.Countries = cleanList(trip.Countries)
	return trip, nil
}
