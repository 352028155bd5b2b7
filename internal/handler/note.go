package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tripjournal/internal/domain"
)

// Note is the JSON shape of a trip note.
type Note struct {
	ID        string             `json:"id"`
	TripID    string             `json:"trip_id"`
	Title     string             `json:"title"`
	Content   string             `json:"content"`
	Tags      []string           `json:"tags"`
	CreatedAt openapi_types.Date `json:"created_at"`
	UpdatedAt openapi_types.Date `json:"updated_at"`
}

// NoteInput is the body of POST /trips/{tripId}/notes and PUT /notes/{noteId}.
// The trip of an existing note cannot be changed.
type NoteInput struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

// ListNotes handles GET /trips/{tripId}/notes.
func (s *Server) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.trips.ListNotesByTripID(r.Context(), domain.TripID(urlParam(r, "tripId")))
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	out := make([]Note, len(notes))
	for i, n := range notes {
		out[i] = noteToResponse(n)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateNote handles POST /trips/{tripId}/notes.
func (s *Server) CreateNote(w http.ResponseWriter, r *http.Request) {
	var body NoteInput
	if !decodeBody(w, r, &body) {
		return
	}
	created, err := s.trips.CreateNote(r.Context(), domain.Note{
		TripID:  domain.TripID(urlParam(r, "tripId")),
		Title:   body.Title,
		Content: body.Content,
		Tags:    body.Tags,
	})
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusCreated, noteToResponse(created))
}

// GetNote handles GET /notes/{noteId}.
func (s *Server) GetNote(w http.ResponseWriter, r *http.Request) {
	note, err := s.trips.GetNote(r.Context(), domain.NoteID(urlParam(r, "noteId")))
	if err != nil {
		s.writeError(w, r, "note", err)
		return
	}
	writeJSON(w, http.StatusOK, noteToResponse(note))
}

// UpdateNote handles PUT /notes/{noteId}.
func (s *Server) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var body NoteInput
	if !decodeBody(w, r, &body) {
		return
	}
	updated, err := s.trips.UpdateNote(r.Context(), domain.Note{
		ID:      domain.NoteID(urlParam(r, "noteId")),
		Title:   body.Title,
		Content: body.Content,
		Tags:    body.Tags,
	})
	if err != nil {
		s.writeError(w, r, "note", err)
		return
	}
	writeJSON(w, http.StatusOK, noteToResponse(updated))
}

// DeleteNote handles DELETE /notes/{noteId}.
func (s *Server) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.DeleteNote(r.Context(), domain.NoteID(urlParam(r, "noteId"))); err != nil {
		s.writeError(w, r, "note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func noteToResponse(n domain.Note) Note {
	return Note{
		ID:        string(n.ID),
		TripID:    string(n.TripID),
		Title:     n.Title,
		Content:   n.Content,
		Tags:      orEmpty(n.Tags),
		CreatedAt: toDate(n.CreatedAt),
		UpdatedAt: toDate(n.UpdatedAt),
	}
}
