package domain

import "time"

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per expense, with trip fields
// repeated for every expense of that trip and diary fields filled in when the
// expense is linked to a diary entry. Trips with no expenses yield one row
// with zero values for every expense field.
type ExportRow struct {
	TripID        TripID
	TripTitle     string
	TripStartDate time.Time
	TripEndDate   time.Time
	TripStatus    TripStatus

	DiaryTitle string
	Country    string
	Location   string

	ExpenseDate *time.Time
	Category    CategoryKey
	Amount      string
	Currency    string
	Memo        string
}
