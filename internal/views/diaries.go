package views

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pkordes/tripjournal/internal/domain"
)

// byDateDesc orders diaries newest first, keeping list order on ties.
func byDateDesc(a, b domain.Diary) int { return b.Date.Compare(a.Date) }

// SearchDiaries returns the diaries whose title, content or location contain
// query, ignoring case, newest first. An empty query matches everything.
func SearchDiaries(diaries []domain.Diary, query string) []domain.Diary {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Diary, 0, len(diaries))
	for _, d := range diaries {
		if q == "" ||
			strings.Contains(strings.ToLower(d.Title), q) ||
			strings.Contains(strings.ToLower(d.Content), q) ||
			strings.Contains(strings.ToLower(d.Location), q) {
			out = append(out, d)
		}
	}
	slices.SortStableFunc(out, byDateDesc)
	return out
}

// MonthGroup is one section of the diary list.
type MonthGroup struct {
	Key     string // "2006-01"
	Label   string // "January 2006"
	Diaries []domain.Diary
}

// GroupDiariesByMonth sections diaries by calendar month, newest month first
// and newest diary first inside each month.
func GroupDiariesByMonth(diaries []domain.Diary) []MonthGroup {
	sorted := slices.Clone(diaries)
	slices.SortStableFunc(sorted, byDateDesc)

	var groups []MonthGroup
	for _, d := range sorted {
		key := d.Date.Format("2006-01")
		if n := len(groups); n > 0 && groups[n-1].Key == key {
			groups[n-1].Diaries = append(groups[n-1].Diaries, d)
			continue
		}
		groups = append(groups, MonthGroup{
			Key:     key,
			Label:   d.Date.Format("January 2006"),
			Diaries: []domain.Diary{d},
		})
	}
	return groups
}

// ExpenseSummary totals the expenses linked to one diary entry.
type ExpenseSummary struct {
	Count    int
	Total    decimal.Decimal
	Currency string // of the first linked expense, empty when Count is 0
}

// DiaryExpenseSummary totals the expenses linked to diaryID.
func DiaryExpenseSummary(diaryID domain.DiaryID, expenses []domain.Expense) ExpenseSummary {
	s := ExpenseSummary{Total: decimal.Zero}
	for _, e := range expenses {
		if e.DiaryID == nil || *e.DiaryID != diaryID {
			continue
		}
		if s.Count == 0 {
			s.Currency = e.Currency
		}
		s.Count++
		s.Total = s.Total.Add(e.Amount)
	}
	return s
}
