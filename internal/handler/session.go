package handler

import (
	"net/http"

	"github.com/pkordes/tripjournal/internal/domain"
)

// ActiveTrip is the body of GET and PUT /session/active-trip.
// A null trip_id means no trip is selected.
type ActiveTrip struct {
	TripID *string `json:"trip_id"`
}

// Tab is the body of GET and PUT /session/tab.
type Tab struct {
	Tab string `json:"tab"`
}

// GetActiveTrip handles GET /session/active-trip.
func (s *Server) GetActiveTrip(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.activeTripBody())
}

// PutActiveTrip handles PUT /session/active-trip.
func (s *Server) PutActiveTrip(w http.ResponseWriter, r *http.Request) {
	var body ActiveTrip
	if !decodeBody(w, r, &body) {
		return
	}
	var id *domain.TripID
	if body.TripID != nil && *body.TripID != "" {
		v := domain.TripID(*body.TripID)
		id = &v
	}
	if err := s.trips.SetActiveTrip(r.Context(), id); err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusOK, s.activeTripBody())
}

func (s *Server) activeTripBody() ActiveTrip {
	id, ok := s.trips.ActiveTrip()
	if !ok {
		return ActiveTrip{}
	}
	v := string(id)
	return ActiveTrip{TripID: &v}
}

// GetTab handles GET /session/tab.
func (s *Server) GetTab(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Tab{Tab: string(s.trips.CurrentTab())})
}

// PutTab handles PUT /session/tab.
func (s *Server) PutTab(w http.ResponseWriter, r *http.Request) {
	var body Tab
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.trips.SetCurrentTab(domain.Tab(body.Tab)); err != nil {
		s.writeError(w, r, "tab", err)
		return
	}
	writeJSON(w, http.StatusOK, Tab{Tab: string(s.trips.CurrentTab())})
}
