package handler

import (
	"net/http"

	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/views"
)

// Every /views route takes an optional ?trip= id. Without it the active trip
// is used, and without an active trip every trip is in scope.

// MonthGroup is one month of GET /views/diaries.
type MonthGroup struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Diaries []Diary `json:"diaries"`
}

// CurrencyTotal is a per-currency sum.
type CurrencyTotal struct {
	Currency string `json:"currency"`
	Total    string `json:"total"`
}

// DayGroup is one date of GET /views/expenses.
type DayGroup struct {
	Date     string          `json:"date"`
	Expenses []Expense       `json:"expenses"`
	Totals   []CurrencyTotal `json:"totals"`
}

// BudgetUsage is spending measured against one budget.
type BudgetUsage struct {
	Budget     Budget `json:"budget"`
	Spent      string `json:"spent"`
	Remaining  string `json:"remaining"`
	Percent    int64  `json:"percent"`
	BarPercent int64  `json:"bar_percent"`
	OverBudget bool   `json:"over_budget"`
}

// CurrencyReport is one row of GET /views/currency-totals.
type CurrencyReport struct {
	Currency string       `json:"currency"`
	Symbol   string       `json:"symbol"`
	Total    string       `json:"total"`
	Usage    *BudgetUsage `json:"usage,omitempty"`
}

// CountryGroup is one country of GET /views/places.
type CountryGroup struct {
	Country   string   `json:"country"`
	Locations []string `json:"locations"`
	Diaries   []Diary  `json:"diaries"`
}

func tripParam(r *http.Request) domain.TripID {
	return domain.TripID(r.URL.Query().Get("trip"))
}

// ViewDiaries handles GET /views/diaries?q=.
func (s *Server) ViewDiaries(w http.ResponseWriter, r *http.Request) {
	groups, err := s.views.Diaries(r.Context(), tripParam(r), r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	out := make([]MonthGroup, len(groups))
	for i, g := range groups {
		out[i] = MonthGroup{Key: g.Key, Label: g.Label, Diaries: diariesToResponse(g.Diaries)}
	}
	writeJSON(w, http.StatusOK, out)
}

// ViewExpenses handles GET /views/expenses: expenses grouped by date,
// newest date first.
func (s *Server) ViewExpenses(w http.ResponseWriter, r *http.Request) {
	days, err := s.views.ExpensesByDate(r.Context(), tripParam(r))
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	out := make([]DayGroup, len(days))
	for i, d := range days {
		out[i] = DayGroup{Date: d.Date, Expenses: expensesToResponse(d.Expenses), Totals: totalsToResponse(d.Totals)}
	}
	writeJSON(w, http.StatusOK, out)
}

// ViewCurrencyTotals handles GET /views/currency-totals.
func (s *Server) ViewCurrencyTotals(w http.ResponseWriter, r *http.Request) {
	reports, err := s.views.CurrencyTotals(r.Context(), tripParam(r))
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	out := make([]CurrencyReport, len(reports))
	for i, rep := range reports {
		out[i] = CurrencyReport{
			Currency: rep.Currency,
			Symbol:   rep.Symbol,
			Total:    amountString(rep.Total),
		}
		if rep.Usage != nil {
			u := usageToResponse(*rep.Usage)
			out[i].Usage = &u
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// ViewBudgets handles GET /views/budgets.
func (s *Server) ViewBudgets(w http.ResponseWriter, r *http.Request) {
	usages, err := s.views.Budgets(r.Context(), tripParam(r))
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	out := make([]BudgetUsage, len(usages))
	for i, u := range usages {
		out[i] = usageToResponse(u)
	}
	writeJSON(w, http.StatusOK, out)
}

// ViewPlaces handles GET /views/places.
func (s *Server) ViewPlaces(w http.ResponseWriter, r *http.Request) {
	groups, err := s.views.Places(r.Context(), tripParam(r))
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	out := make([]CountryGroup, len(groups))
	for i, g := range groups {
		out[i] = CountryGroup{Country: g.Country, Locations: orEmpty(g.Locations), Diaries: diariesToResponse(g.Diaries)}
	}
	writeJSON(w, http.StatusOK, out)
}

// ViewTimeline handles GET /views/places/timeline?country=&location=.
// country is required.
func (s *Server) ViewTimeline(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	diaries, err := s.views.Timeline(r.Context(), tripParam(r), q.Get("country"), q.Get("location"))
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusOK, diariesToResponse(diaries))
}

func totalsToResponse(ts []views.CurrencyTotal) []CurrencyTotal {
	out := make([]CurrencyTotal, len(ts))
	for i, t := range ts {
		out[i] = CurrencyTotal{Currency: t.Currency, Total: amountString(t.Total)}
	}
	return out
}

func usageToResponse(u views.Usage) BudgetUsage {
	return BudgetUsage{
		Budget:     budgetToResponse(u.Budget),
		Spent:      amountString(u.Spent),
		Remaining:  amountString(u.Remaining),
		Percent:    u.Percent,
		BarPercent: u.BarPercent,
		OverBudget: u.OverBudget,
	}
}
