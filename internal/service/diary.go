package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/repo"
)

// DiaryService implements business logic for Diary entries.
// It holds the trips repo to verify the parent trip, and the expenses repo
// because deleting a diary removes the expenses linked to it.
type DiaryService struct {
	trips    repo.TripRepo
	diaries  repo.DiaryRepo
	expenses repo.ExpenseRepo
	log      *slog.Logger
}

// NewDiaryService constructs a DiaryService backed by the provided repos.
func NewDiaryService(r Repos, opts ...Option) *DiaryService {
	must("Trips", r.Trips)
	must("Diaries", r.Diaries)
	must("Expenses", r.Expenses)
	o := buildOptions(opts)
	return &DiaryService{trips: r.Trips, diaries: r.Diaries, expenses: r.Expenses, log: o.log}
}

// Create validates the diary, verifies the parent trip exists, assigns an ID
// and persists it at the head of the list.
// Returns domain.ErrValidation if input violates business rules.
// Returns domain.ErrNotFound if the parent trip does not exist.
func (s *DiaryService) Create(ctx context.Context, diary domain.Diary) (domain.Diary, error) {
	if _, err := s.trips.GetByID(ctx, diary.TripID); err != nil {
		return domain.Diary{}, fmt.Errorf("service.DiaryService.Create: %w", err)
	}
	diary, err := normalizeDiary(diary)
	if err != nil {
		return domain.Diary{}, err
	}
	diary.ID = domain.NewDiaryID()

	result, err := s.diaries.Create(ctx, diary)
	if err != nil {
		return domain.Diary{}, fmt.Errorf("service.DiaryService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single diary by ID.
// Returns domain.ErrNotFound if no diary with that ID exists.
func (s *DiaryService) GetByID(ctx context.Context, id domain.DiaryID) (domain.Diary, error) {
	result, err := s.diaries.GetByID(ctx, id)
	if err != nil {
		return domain.Diary{}, fmt.Errorf("service.DiaryService.GetByID: %w", err)
	}
	return result, nil
}

// List returns every diary, newest first.
func (s *DiaryService) List(ctx context.Context) ([]domain.Diary, error) {
	diaries, err := s.diaries.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DiaryService.List: %w", err)
	}
	return orEmpty(diaries), nil
}

// ListByTripID returns the diaries of one trip, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *DiaryService) ListByTripID(ctx context.Context, tripID domain.TripID) ([]domain.Diary, error) {
	diaries, err := s.diaries.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.DiaryService.ListByTripID: %w", err)
	}
	return orEmpty(diaries), nil
}

// Update validates and replaces an existing diary. The diary may move to
// another trip, which must exist; its linked expenses move with it.
// Returns domain.ErrNotFound if the diary or the trip does not exist.
func (s *DiaryService) Update(ctx context.Context, diary domain.Diary) (domain.Diary, error) {
	existing, err := s.diaries.GetByID(ctx, diary.ID)
	if err != nil {
		return domain.Diary{}, fmt.Errorf("service.DiaryService.Update: %w", err)
	}
	if _, err := s.trips.GetByID(ctx, diary.TripID); err != nil {
		return domain.Diary{}, fmt.Errorf("service.DiaryService.Update: %w", err)
	}
	diary, err = normalizeDiary(diary)
	if err != nil {
		return domain.Diary{}, err
	}
	result, err := s.diaries.Update(ctx, diary)
	if err != nil {
		return domain.Diary{}, fmt.Errorf("service.DiaryService.Update: %w", err)
	}
	if existing.TripID != result.TripID {
		if err := s.moveExpenses(ctx, result); err != nil {
			return domain.Diary{}, fmt.Errorf("service.DiaryService.Update: %w", err)
		}
	}
	return result, nil
}

// moveExpenses re-parents the expenses linked to d onto d's trip.
func (s *DiaryService) moveExpenses(ctx context.Context, d domain.Diary) error {
	linked, err := s.expenses.ListByDiaryID(ctx, d.ID)
	if err != nil {
		return fmt.Errorf("expenses: %w", err)
	}
	for _, e := range linked {
		e.TripID = d.TripID
		if _, err := s.expenses.Update(ctx, e); err != nil {
			return fmt.Errorf("move expense %s: %w", e.ID, err)
		}
	}
	s.log.DebugContext(ctx, "diary moved", slog.String("diary_id", string(d.ID)),
		slog.String("trip_id", string(d.TripID)), slog.Int("expenses", len(linked)))
	return nil
}

// Delete removes a diary and the expenses linked to it.
// Returns domain.ErrNotFound if the diary does not exist; nothing is removed then.
func (s *DiaryService) Delete(ctx context.Context, id domain.DiaryID) error {
	if _, err := s.diaries.GetByID(ctx, id); err != nil {
		return fmt.Errorf("service.DiaryService.Delete: %w", err)
	}
	n, err := s.expenses.DeleteByDiaryID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.DiaryService.Delete: expenses: %w", err)
	}
	if err := s.diaries.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.DiaryService.Delete: %w", err)
	}
	s.log.DebugContext(ctx, "diary deleted", slog.String("diary_id", string(id)), slog.Int64("expenses", n))
	return nil
}

// normalizeDiary enforces the rules shared by Create and Update.
//   - Title must be non-empty.
//   - Date is required.
//   - Time, when set, must be HH:MM.
//   - Photos are trimmed, duplicates kept; tags are trimmed and de-duplicated.
func normalizeDiary(d domain.Diary) (domain.Diary, error) {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return domain.Diary{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if d.Date.IsZero() {
		return domain.Diary{}, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	d.Date = today(d.Date)
	d.Time = strings.TrimSpace(d.Time)
	if d.Time != "" {
		if _, err := time.Parse("15:04", d.Time); err != nil {
			return domain.Diary{}, fmt.Errorf("%w: time must be HH:MM", domain.ErrValidation)
		}
	}
	d.Location = strings.TrimSpace(d.Location)
	d.Country = strings.TrimSpace(d.Country)
	d.Photos = trimList(d.Photos)
	d.Tags = cleanList(d.Tags)
	return d, nil
}
