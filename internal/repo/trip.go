package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripjournal/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete implementations,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create stores a new trip (ID already assigned) at the head of the list.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id domain.TripID) (domain.Trip, error)

	// List returns all trips, newest first.
	List(ctx context.Context) ([]domain.Trip, error)

	// Update replaces an existing trip and returns the stored record.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id domain.TripID) error
}

const tripColumns = `id, title, cover_image, start_date, end_date, countries, status`

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (id, title, cover_image, start_date, end_date, countries, status)
		VALUES (@id, @title, @cover_image, @start_date, @end_date, @countries, @status)
		RETURNING ` + tripColumns

	row := r.db.QueryRow(ctx, q, tripArgs(trip))
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id domain.TripID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": string(id)})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips, most recently created first.
func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips ORDER BY position DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	trips, err := collect(rows, scanTrip)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
	}
	return trips, nil
}

// Update overwrites every mutable field of a trip and returns the updated record.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET title       = @title,
		    cover_image = @cover_image,
		    start_date  = @start_date,
		    end_date    = @end_date,
		    countries   = @countries,
		    status      = @status
		WHERE id = @id
		RETURNING ` + tripColumns

	row := r.db.QueryRow(ctx, q, tripArgs(trip))
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by primary key. Child rows go with it (ON DELETE CASCADE).
func (r *pgTripRepo) Delete(ctx context.Context, id domain.TripID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": string(id)})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func tripArgs(t domain.Trip) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":          string(t.ID),
		"title":       t.Title,
		"cover_image": t.CoverImage,
		"start_date":  t.StartDate,
		"end_date":    t.EndDate,
		"countries":   orEmpty(t.Countries),
		"status":      string(t.Status),
	}
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t      domain.Trip
		id     string
		status string
		start  pgtype.Date
		end    pgtype.Date
	)

	if err := s.Scan(&id, &t.Title, &t.CoverImage, &start, &end, &t.Countries, &status); err != nil {
		return domain.Trip{}, notFound(err)
	}

	t.ID = domain.TripID(id)
	t.Status = domain.TripStatus(status)
	t.StartDate = dateOf(start)
	t.EndDate = dateOf(end)
	return t, nil
}

// memTripRepo is the in-memory implementation of TripRepo.
type memTripRepo struct {
	t *memTable[domain.Trip, domain.TripID]
}

// NewMemoryTripRepo constructs a TripRepo holding seed in memory, in the given order.
func NewMemoryTripRepo(seed []domain.Trip) TripRepo {
	return &memTripRepo{t: newMemTable(seed, func(t domain.Trip) domain.TripID { return t.ID }, cloneTrip)}
}

func (r *memTripRepo) Create(_ context.Context, trip domain.Trip) (domain.Trip, error) {
	return r.t.insert(trip), nil
}

func (r *memTripRepo) GetByID(_ context.Context, id domain.TripID) (domain.Trip, error) {
	t, ok := r.t.get(id)
	if !ok {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", domain.ErrNotFound)
	}
	return t, nil
}

func (r *memTripRepo) List(_ context.Context) ([]domain.Trip, error) {
	return r.t.filter(nil), nil
}

func (r *memTripRepo) Update(_ context.Context, trip domain.Trip) (domain.Trip, error) {
	t, ok := r.t.replace(trip)
	if !ok {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", domain.ErrNotFound)
	}
	return t, nil
}

func (r *memTripRepo) Delete(_ context.Context, id domain.TripID) error {
	if !r.t.remove(id) {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func cloneTrip(t domain.Trip) domain.Trip {
	t.Countries = cloneStrings(t.Countries)
	return t
}
