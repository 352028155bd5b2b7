package domain

import "github.com/shopspring/decimal"

// Budget is a spending ceiling for one trip in one currency.
// A trip has at most one budget per currency.
type Budget struct {
	ID       BudgetID
	TripID   TripID
	Currency string
	Amount   decimal.Decimal
}
