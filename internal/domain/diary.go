package domain

import "time"

// Diary is a dated journal entry. It is owned by exactly one Trip and is
// deleted together with it.
// Content holds paragraphs separated by a blank line.
type Diary struct {
	ID          DiaryID
	TripID      TripID
	Title       string
	Date        time.Time
	Time        string // "15:04"
	Location    string
	Country     string
	Content     string
	Photos      []string
	Weather     string   // empty when not recorded
	Temperature *float64 // degrees Celsius, nil when not recorded
	Tags        []string
}
