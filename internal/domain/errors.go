package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// record does not exist. It is the "absence" result of every lookup.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing title, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write would break a uniqueness rule,
// such as a second budget in the same currency for one trip.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")
