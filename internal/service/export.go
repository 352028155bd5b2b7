package service

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/repo"
)

// ExportService assembles a full flat export of all trips, diaries and expenses.
type ExportService struct {
	trips    repo.TripRepo
	diaries  repo.DiaryRepo
	expenses repo.ExpenseRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(r Repos) *ExportService {
	must("Trips", r.Trips)
	must("Diaries", r.Diaries)
	must("Expenses", r.Expenses)
	return &ExportService{trips: r.Trips, diaries: r.Diaries, expenses: r.Expenses}
}

// Export returns one ExportRow per expense across all trips, trips in list
// order and each trip's expenses by date ascending. Trips with no expenses
// contribute one row with empty expense fields.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	var (
		trips    []domain.Trip
		diaries  []domain.Diary
		expenses []domain.Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		trips, err = s.trips.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		diaries, err = s.diaries.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		expenses, err = s.expenses.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	diaryByID := make(map[domain.DiaryID]domain.Diary, len(diaries))
	for _, d := range diaries {
		diaryByID[d.ID] = d
	}
	byTrip := make(map[domain.TripID][]domain.Expense)
	for _, e := range expenses {
		byTrip[e.TripID] = append(byTrip[e.TripID], e)
	}

	rows := make([]domain.ExportRow, 0, len(expenses)+len(trips))
	for _, t := range trips {
		base := domain.ExportRow{
			TripID:        t.ID,
			TripTitle:     t.Title,
			TripStartDate: t.StartDate,
			TripEndDate:   t.EndDate,
			TripStatus:    t.Status,
		}

		tripExpenses := byTrip[t.ID]
		if len(tripExpenses) == 0 {
			rows = append(rows, base)
			continue
		}
		slices.SortStableFunc(tripExpenses, func(a, b domain.Expense) int { return a.Date.Compare(b.Date) })

		for _, e := range tripExpenses {
			row := base
			date := e.Date
			row.ExpenseDate = &date
			row.Category = e.Category
			row.Amount = e.Amount.StringFixed(2)
			row.Currency = e.Currency
			row.Memo = e.Memo
			if e.DiaryID != nil {
				if d, ok := diaryByID[*e.DiaryID]; ok {
					row.DiaryTitle = d.Title
					row.Country = d.Country
					row.Location = d.Location
				}
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}
