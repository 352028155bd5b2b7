package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripjournal/internal/domain"
)

// NoteRepo defines the persistence operations for trip Notes.
type NoteRepo interface {
	Create(ctx context.Context, note domain.Note) (domain.Note, error)

	// GetByID returns domain.ErrNotFound if no note with that ID exists.
	GetByID(ctx context.Context, id domain.NoteID) (domain.Note, error)

	// ListByTripID returns the notes of one trip, newest first.
	ListByTripID(ctx context.Context, tripID domain.TripID) ([]domain.Note, error)

	// Update returns domain.ErrNotFound if no note with that ID exists.
	Update(ctx context.Context, note domain.Note) (domain.Note, error)

	// Delete returns domain.ErrNotFound if no note with that ID exists.
	Delete(ctx context.Context, id domain.NoteID) error

	// DeleteByTripID removes every note of a trip and returns how many went.
	DeleteByTripID(ctx context.Context, tripID domain.TripID) (int64, error)
}

const noteColumns = `id, trip_id, title, content, tags, created_at, updated_at`

// pgNoteRepo is the Postgres implementation of NoteRepo.
type pgNoteRepo struct {
	db db
}

// NewNoteRepo constructs a NoteRepo backed by the provided db connection.
func NewNoteRepo(db db) NoteRepo {
	return &pgNoteRepo{db: db}
}

func (r *pgNoteRepo) Create(ctx context.Context, note domain.Note) (domain.Note, error) {
	const q = `
		INSERT INTO notes (id, trip_id, title, content, tags, created_at, updated_at)
		VALUES (@id, @trip_id, @title, @content, @tags, @created_at, @updated_at)
		RETURNING ` + noteColumns

	result, err := scanNote(r.db.QueryRow(ctx, q, noteArgs(note)))
	if err != nil {
		return domain.Note{}, fmt.Errorf("repo.NoteRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgNoteRepo) GetByID(ctx context.Context, id domain.NoteID) (domain.Note, error) {
	const q = `SELECT ` + noteColumns + ` FROM notes WHERE id = @id`

	result, err := scanNote(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": string(id)}))
	if err != nil {
		return domain.Note{}, fmt.Errorf("repo.NoteRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgNoteRepo) ListByTripID(ctx context.Context, tripID domain.TripID) ([]domain.Note, error) {
	const q = `SELECT ` + noteColumns + ` FROM notes WHERE trip_id = @trip_id ORDER BY position DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": string(tripID)})
	if err != nil {
		return nil, fmt.Errorf("repo.NoteRepo.ListByTripID: %w", err)
	}
	notes, err := collect(rows, scanNote)
	if err != nil {
		return nil, fmt.Errorf("repo.NoteRepo.ListByTripID: scan: %w", err)
	}
	return notes, nil
}

func (r *pgNoteRepo) Update(ctx context.Context, note domain.Note) (domain.Note, error) {
	const q = `
		UPDATE notes
		SET trip_id    = @trip_id,
		    title      = @title,
		    content    = @content,
		    tags       = @tags,
		    updated_at = @updated_at
		WHERE id = @id
		RETURNING ` + noteColumns

	result, err := scanNote(r.db.QueryRow(ctx, q, noteArgs(note)))
	if err != nil {
		return domain.Note{}, fmt.Errorf("repo.NoteRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgNoteRepo) Delete(ctx context.Context, id domain.NoteID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = @id`, pgx.NamedArgs{"id": string(id)})
	if err != nil {
		return fmt.Errorf("repo.NoteRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.NoteRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgNoteRepo) DeleteByTripID(ctx context.Context, tripID domain.TripID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM notes WHERE trip_id = @trip_id`, pgx.NamedArgs{"trip_id": string(tripID)})
	if err != nil {
		return 0, fmt.Errorf("repo.NoteRepo.DeleteByTripID: %w", err)
	}
	return tag.RowsAffected(), nil
}

func noteArgs(n domain.Note) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":         string(n.ID),
		"trip_id":    string(n.TripID),
		"title":      n.Title,
		"content":    n.Content,
		"tags":       orEmpty(n.Tags),
		"created_at": n.CreatedAt,
		"updated_at": n.UpdatedAt,
	}
}

func scanNote(s scanner) (domain.Note, error) {
	var (
		n                  domain.Note
		id, tripID         string
		createdAt, updated pgtype.Date
	)
	if err := s.Scan(&id, &tripID, &n.Title, &n.Content, &n.Tags, &createdAt, &updated); err != nil {
		return domain.Note{}, notFound(err)
	}
	n.ID = domain.NoteID(id)
	n.TripID = domain.TripID(tripID)
	n.CreatedAt = dateOf(createdAt)
	n.UpdatedAt = dateOf(updated)
	return n, nil
}

// memNoteRepo is the in-memory implementation of NoteRepo.
type memNoteRepo struct {
	t *memTable[domain.Note, domain.NoteID]
}

// NewMemoryNoteRepo constructs a NoteRepo holding seed in memory, in the given order.
func NewMemoryNoteRepo(seed []domain.Note) NoteRepo {
	return &memNoteRepo{t: newMemTable(seed, func(n domain.Note) domain.NoteID { return n.ID }, cloneNote)}
}

func (r *memNoteRepo) Create(_ context.Context, note domain.Note) (domain.Note, error) {
	return r.t.insert(note), nil
}

func (r *memNoteRepo) GetByID(_ context.Context, id domain.NoteID) (domain.Note, error) {
	n, ok := r.t.get(id)
	if !ok {
		return domain.Note{}, fmt.Errorf("repo.NoteRepo.GetByID: %w", domain.ErrNotFound)
	}
	return n, nil
}

func (r *memNoteRepo) ListByTripID(_ context.Context, tripID domain.TripID) ([]domain.Note, error) {
	return r.t.filter(func(n domain.Note) bool { return n.TripID == tripID }), nil
}

func (r *memNoteRepo) Update(_ context.Context, note domain.Note) (domain.Note, error) {
	n, ok := r.t.replace(note)
	if !ok {
		return domain.Note{}, fmt.Errorf("repo.NoteRepo.Update: %w", domain.ErrNotFound)
	}
	return n, nil
}

func (r *memNoteRepo) Delete(_ context.Context, id domain.NoteID) error {
	if !r.t.remove(id) {
		return fmt.Errorf("repo.NoteRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *memNoteRepo) DeleteByTripID(_ context.Context, tripID domain.TripID) (int64, error) {
	return r.t.removeWhere(func(n domain.Note) bool { return n.TripID == tripID }), nil
}

func cloneNote(n domain.Note) domain.Note {
	n.Tags = cloneStrings(n.Tags)
	return n
}
