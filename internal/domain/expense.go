package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryKey is the spend category stored on an expense.
type CategoryKey string

const (
	CategoryFood          CategoryKey = "food"
	CategoryTransport     CategoryKey = "transport"
	CategoryAccommodation CategoryKey = "accommodation"
	CategoryActivity      CategoryKey = "activity"
	CategoryShopping      CategoryKey = "shopping"
	CategoryCafe          CategoryKey = "cafe"
	CategoryBar           CategoryKey = "bar"
	CategoryOther         CategoryKey = "other"
)

// CategoryKeys lists every known key in display order.
var CategoryKeys = []CategoryKey{
	CategoryFood, CategoryTransport, CategoryAccommodation, CategoryActivity,
	CategoryShopping, CategoryCafe, CategoryBar, CategoryOther,
}

// Valid reports whether k is a known category key.
func (k CategoryKey) Valid() bool {
	for _, c := range CategoryKeys {
		if c == k {
			return true
		}
	}
	return false
}

// Expense is a single spend record. DiaryID is nil for trip-level spending.
type Expense struct {
	ID       ExpenseID
	TripID   TripID
	DiaryID  *DiaryID
	Date     time.Time
	Category CategoryKey
	Amount   decimal.Decimal
	Currency string // ISO-4217 style, upper case
	Memo     string
}

// Category is a user-visible spend category managed from settings.
// Default categories are seeded and cannot be deleted.
type Category struct {
	ID        CategoryID
	Name      string
	Icon      string
	Color     string
	IsDefault bool
}
