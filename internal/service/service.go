// Package service contains the business logic for the trip journal API.
// Services validate inputs, enforce business rules (cascade deletes, one
// budget per currency, the active trip) and orchestrate repo calls.
// No SQL lives here. Services depend on repo interfaces, not implementations.
package service

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/repo"
)

// Repos bundles the repos the services draw from. Each constructor checks
// only the fields it uses.
type Repos struct {
	Trips      repo.TripRepo
	Diaries    repo.DiaryRepo
	Expenses   repo.ExpenseRepo
	Categories repo.CategoryRepo
	Budgets    repo.BudgetRepo
	Notes      repo.NoteRepo
}

// Option configures a service.
type Option func(*options)

type options struct {
	log *slog.Logger
	now func() time.Time
}

// WithLogger sets the logger used for cascade and session events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithClock replaces time.Now, for tests that depend on today's date.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{log: slog.Default(), now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// must panics when a required dependency is missing. A service without its
// store is a wiring mistake, not a runtime condition.
func must(name string, dep any) {
	if dep == nil {
		panic(fmt.Sprintf("service: %s is required", name))
	}
}

// today truncates t to a UTC calendar date.
func today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

// normalizeCurrency upper-cases code and checks it is three letters.
func normalizeCurrency(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if !currencyCode.MatchString(c) {
		return "", fmt.Errorf("%w: currency must be a 3-letter code", domain.ErrValidation)
	}
	return c, nil
}

// validateAmount requires a positive amount with at most two decimal places.
func validateAmount(a decimal.Decimal) error {
	if !a.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", domain.ErrValidation)
	}
	if !a.Equal(a.Round(2)) {
		return fmt.Errorf("%w: amount has more than two decimal places", domain.ErrValidation)
	}
	return nil
}

// cleanList trims entries, drops blanks and keeps the first of any duplicates.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// trimList trims entries and drops blank ones, keeping order and duplicates.
func trimList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// orEmpty lets list methods always return a non-nil slice.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
