// Package views holds the read-only projections the app screens render:
// filtered trip lists, diary and expense groupings, budget usage, the places
// map and the diary photo layout. Every function is pure. Inputs are never
// mutated and results are fresh slices.
package views

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pkordes/tripjournal/internal/domain"
)

// DefaultCurrency is reported when a trip has no expenses yet.
const DefaultCurrency = "USD"

// FilterTrips returns the trips matching status, ordered by start date.
// An unknown filter behaves like FilterAll; an unknown sort like SortNewest.
func FilterTrips(trips []domain.Trip, status domain.TripStatusFilter, order domain.TripSort) []domain.Trip {
	out := make([]domain.Trip, 0, len(trips))
	for _, t := range trips {
		switch status {
		case domain.FilterOngoing, domain.FilterCompleted:
			if string(t.Status) != string(status) {
				continue
			}
		}
		out = append(out, t)
	}

	slices.SortStableFunc(out, func(a, b domain.Trip) int {
		if order == domain.SortOldest {
			return a.StartDate.Compare(b.StartDate)
		}
		return b.StartDate.Compare(a.StartDate)
	})
	return out
}

// Stats is the summary line of a trip card.
type Stats struct {
	DiaryCount   int
	TotalExpense decimal.Decimal
	Currency     string
}

// TripStats counts the trip's diaries and sums its expenses. Amounts are added
// regardless of currency, and the currency shown is that of the first expense.
func TripStats(tripID domain.TripID, diaries []domain.Diary, expenses []domain.Expense) Stats {
	s := Stats{TotalExpense: decimal.Zero, Currency: DefaultCurrency}
	for _, d := range diaries {
		if d.TripID == tripID {
			s.DiaryCount++
		}
	}
	first := true
	for _, e := range expenses {
		if e.TripID != tripID {
			continue
		}
		if first {
			s.Currency = e.Currency
			first = false
		}
		s.TotalExpense = s.TotalExpense.Add(e.Amount)
	}
	return s
}

// TripProgress is the "D+n / total days" badge of a trip card.
type TripProgress struct {
	TotalDays  int
	DaysPassed int
	Percent    float64 // 0..100
	Rounded    int
	Label      string
}

// Progress measures how far now is into the trip. Days are counted with a
// ceiling, so any part of a day after the start counts as a whole day.
func Progress(trip domain.Trip, now time.Time) TripProgress {
	const day = 24 * time.Hour

	total := int(math.Ceil(float64(trip.EndDate.Sub(trip.StartDate))/float64(day))) + 1
	passed := int(math.Ceil(float64(now.Sub(trip.StartDate)) / float64(day)))
	if passed < 0 {
		passed = 0
	}

	p := TripProgress{TotalDays: total, DaysPassed: passed}
	if total > 0 {
		p.Percent = math.Min(100, float64(passed)/float64(total)*100)
	}
	p.Rounded = int(math.Round(p.Percent))
	p.Label = fmt.Sprintf("D+%d / %d", passed, total)
	return p
}
