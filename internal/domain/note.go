package domain

import "time"

// Note is a free-form memo attached to a trip.
// CreatedAt and UpdatedAt are calendar dates stamped by the service.
type Note struct {
	ID        NoteID
	TripID    TripID
	Title     string
	Content   string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
