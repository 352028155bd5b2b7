package views

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/pkordes/tripjournal/internal/domain"
)

// CurrencyTotal is the amount spent in one currency.
type CurrencyTotal struct {
	Currency string
	Total    decimal.Decimal
}

// TotalsByCurrency sums expenses per currency, in order of first appearance.
func TotalsByCurrency(expenses []domain.Expense) []CurrencyTotal {
	var out []CurrencyTotal
	idx := make(map[string]int)
	for _, e := range expenses {
		i, ok := idx[e.Currency]
		if !ok {
			i = len(out)
			idx[e.Currency] = i
			out = append(out, CurrencyTotal{Currency: e.Currency, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(e.Amount)
	}
	return out
}

// DayGroup is one date section of the expense list.
type DayGroup struct {
	Date     string // "2006-01-02"
	Expenses []domain.Expense
	Totals   []CurrencyTotal
}

// GroupExpensesByDate sections expenses by date, newest date first. Each
// section carries its own per-currency day totals.
func GroupExpensesByDate(expenses []domain.Expense) []DayGroup {
	sorted := slices.Clone(expenses)
	slices.SortStableFunc(sorted, func(a, b domain.Expense) int { return b.Date.Compare(a.Date) })

	var groups []DayGroup
	for _, e := range sorted {
		key := e.Date.Format("2006-01-02")
		if n := len(groups); n > 0 && groups[n-1].Date == key {
			groups[n-1].Expenses = append(groups[n-1].Expenses, e)
			continue
		}
		groups = append(groups, DayGroup{Date: key, Expenses: []domain.Expense{e}})
	}
	for i := range groups {
		groups[i].Totals = TotalsByCurrency(groups[i].Expenses)
	}
	return groups
}

// Usage is how much of a budget has been spent.
type Usage struct {
	Budget     domain.Budget
	Spent      decimal.Decimal
	Remaining  decimal.Decimal // negative when over budget
	Percent    int64           // not clamped, exceeds 100 on overspend
	BarPercent int64           // Percent clamped to 0..100 for the progress bar
	OverBudget bool
}

var hundred = decimal.NewFromInt(100)

// BudgetUsage compares spent against the budget amount.
func BudgetUsage(b domain.Budget, spent decimal.Decimal) Usage {
	u := Usage{
		Budget:     b,
		Spent:      spent,
		Remaining:  b.Amount.Sub(spent),
		OverBudget: spent.GreaterThan(b.Amount),
	}
	if b.Amount.IsPositive() {
		u.Percent = spent.Div(b.Amount).Mul(hundred).Round(0).IntPart()
	}
	u.BarPercent = min(max(u.Percent, 0), 100)
	return u
}

// BudgetsUsage reports usage for every budget, with spent taken from the
// expenses in the budget's currency.
func BudgetsUsage(budgets []domain.Budget, expenses []domain.Expense) []Usage {
	spent := make(map[string]decimal.Decimal)
	for _, t := range TotalsByCurrency(expenses) {
		spent[t.Currency] = t.Total
	}
	out := make([]Usage, 0, len(budgets))
	for _, b := range budgets {
		s, ok := spent[b.Currency]
		if !ok {
			s = decimal.Zero
		}
		out = append(out, BudgetUsage(b, s))
	}
	return out
}
