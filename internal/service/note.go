package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/tripjournal/internal/domain"
)

// CreateNote attaches a note to an existing trip. CreatedAt and UpdatedAt are
// both stamped with today's date.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) CreateNote(ctx context.Context, note domain.Note) (domain.Note, error) {
	if _, err := s.trips.GetByID(ctx, note.TripID); err != nil {
		return domain.Note{}, fmt.Errorf("service.TripService.CreateNote: %w", err)
	}
	note, err := normalizeNote(note)
	if err != nil {
		return domain.Note{}, err
	}
	note.ID = domain.NewNoteID()
	note.CreatedAt = today(s.now())
	note.UpdatedAt = note.CreatedAt

	result, err := s.notes.Create(ctx, note)
	if err != nil {
		return domain.Note{}, fmt.Errorf("service.TripService.CreateNote: %w", err)
	}
	return result, nil
}

// GetNote returns a single note by ID.
func (s *TripService) GetNote(ctx context.Context, id domain.NoteID) (domain.Note, error) {
	result, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return domain.Note{}, fmt.Errorf("service.TripService.GetNote: %w", err)
	}
	return result, nil
}

// ListNotesByTripID returns the notes of a trip, newest first.
func (s *TripService) ListNotesByTripID(ctx context.Context, tripID domain.TripID) ([]domain.Note, error) {
	notes, err := s.notes.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListNotesByTripID: %w", err)
	}
	return orEmpty(notes), nil
}

// UpdateNote replaces a note's title, content and tags and restamps UpdatedAt.
// The trip and CreatedAt of the stored note are kept.
// Returns domain.ErrNotFound if the note does not exist.
func (s *TripService) UpdateNote(ctx context.Context, note domain.Note) (domain.Note, error) {
	existing, err := s.notes.GetByID(ctx, note.ID)
	if err != nil {
		return domain.Note{}, fmt.Errorf("service.TripService.UpdateNote: %w", err)
	}
	note, err = normalizeNote(note)
	if err != nil {
		return domain.Note{}, err
	}
	note.TripID = existing.TripID
	note.CreatedAt = existing.CreatedAt
	note.UpdatedAt = today(s.now())

	result, err := s.notes.Update(ctx, note)
	if err != nil {
		return domain.Note{}, fmt.Errorf("service.TripService.UpdateNote: %w", err)
	}
	return result, nil
}

// DeleteNote removes a note by ID.
func (s *TripService) DeleteNote(ctx context.Context, id domain.NoteID) error {
	if err := s.notes.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.DeleteNote: %w", err)
	}
	return nil
}

func normalizeNote(note domain.Note) (domain.Note, error) {
	note.Title = strings.TrimSpace(note.Title)
	if note.Title == "" {
		return domain.Note{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	note.Tags = cleanList(note.Tags)
	return note, nil
}
