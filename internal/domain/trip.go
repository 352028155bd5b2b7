// Package domain contains the core data types for the trip journal.
// It has no behaviour beyond small helpers and is imported by every other
// internal package (repo, service, views, handler).
package domain

import "time"

// TripStatus is the lifecycle flag shown on a trip card.
type TripStatus string

const (
	TripOngoing   TripStatus = "ongoing"
	TripCompleted TripStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s TripStatus) Valid() bool {
	return s == TripOngoing || s == TripCompleted
}

// DefaultCoverImage is used when a trip is saved without a cover.
const DefaultCoverImage = "https://images.unsplash.com/photo-1488646953014-85cb44e25828?w=800"

// Trip is a bounded travel period. It is the top-level aggregate:
// diaries, expenses, budgets and notes all belong to a trip.
// StartDate and EndDate are calendar dates stored at UTC midnight.
type Trip struct {
	ID         TripID
	Title      string
	CoverImage string
	StartDate  time.Time
	EndDate    time.Time
	Countries  []string
	Status     TripStatus
}

// TripStatusFilter selects trips on the list screen.
type TripStatusFilter string

const (
	FilterAll       TripStatusFilter = "all"
	FilterOngoing   TripStatusFilter = "ongoing"
	FilterCompleted TripStatusFilter = "completed"
)

// TripSort orders trips by start date.
type TripSort string

const (
	SortNewest TripSort = "newest"
	SortOldest TripSort = "oldest"
)
