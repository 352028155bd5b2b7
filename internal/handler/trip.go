package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/views"
)

// Trip is the JSON shape of a trip.
type Trip struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	CoverImage string             `json:"cover_image"`
	StartDate  openapi_types.Date `json:"start_date"`
	EndDate    openapi_types.Date `json:"end_date"`
	Countries  []string           `json:"countries"`
	Status     string             `json:"status"`
}

// TripInput is the body of POST /trips and PUT /trips/{tripId}.
type TripInput struct {
	Title      string              `json:"title"`
	CoverImage string              `json:"cover_image,omitempty"`
	StartDate  *openapi_types.Date `json:"start_date"`
	EndDate    *openapi_types.Date `json:"end_date"`
	Countries  []string            `json:"countries,omitempty"`
	Status     string              `json:"status"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripList is the body of GET /trips.
type TripList struct {
	Data       []Trip     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// TripStats is the body of GET /trips/{tripId}/stats.
type TripStats struct {
	DiaryCount   int    `json:"diary_count"`
	TotalExpense string `json:"total_expense"`
	Currency     string `json:"currency"`
}

// TripProgress is the body of GET /trips/{tripId}/progress.
type TripProgress struct {
	TotalDays  int     `json:"total_days"`
	DaysPassed int     `json:"days_passed"`
	Percent    float64 `json:"percent"`
	Rounded    int     `json:"rounded"`
	Label      string  `json:"label"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body TripInput
	if !decodeBody(w, r, &body) {
		return
	}
	created, err := s.trips.Create(r.Context(), body.toDomain(""))
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips.
// Supports ?status=all|ongoing|completed, ?sort=newest|oldest, ?page= and
// ?limit= (defaults: all, newest, page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := domain.TripStatusFilter(q.Get("status"))
	if status == "" {
		status = domain.FilterAll
	}
	order := domain.TripSort(q.Get("sort"))
	if order == "" {
		order = domain.SortNewest
	}
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	trips, total, err := s.trips.ListPaged(r.Context(), status, order, params)
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}

	data := make([]Trip, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, TripList{
		Data:       data,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: int(total)},
	})
}

// GetTrip handles GET /trips/{tripId}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.GetByID(r.Context(), domain.TripID(urlParam(r, "tripId")))
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{tripId}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	var body TripInput
	if !decodeBody(w, r, &body) {
		return
	}
	updated, err := s.trips.Update(r.Context(), body.toDomain(domain.TripID(urlParam(r, "tripId"))))
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{tripId}. The trip's diaries, expenses,
// budgets and notes go with it.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.Delete(r.Context(), domain.TripID(urlParam(r, "tripId"))); err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTripStats handles GET /trips/{tripId}/stats.
func (s *Server) GetTripStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.views.TripStats(r.Context(), domain.TripID(urlParam(r, "tripId")))
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusOK, statsToResponse(stats))
}

// GetTripProgress handles GET /trips/{tripId}/progress.
func (s *Server) GetTripProgress(w http.ResponseWriter, r *http.Request) {
	p, err := s.views.TripProgress(r.Context(), domain.TripID(urlParam(r, "tripId")))
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusOK, TripProgress{
		TotalDays:  p.TotalDays,
		DaysPassed: p.DaysPassed,
		Percent:    p.Percent,
		Rounded:    p.Rounded,
		Label:      p.Label,
	})
}

// --- mapping helpers --------------------------------------------------------

func (in TripInput) toDomain(id domain.TripID) domain.Trip {
	return domain.Trip{
		ID:         id,
		Title:      in.Title,
		CoverImage: in.CoverImage,
		StartDate:  fromDate(in.StartDate),
		EndDate:    fromDate(in.EndDate),
		Countries:  in.Countries,
		Status:     domain.TripStatus(in.Status),
	}
}

func tripToResponse(t domain.Trip) Trip {
	return Trip{
		ID:         string(t.ID),
		Title:      t.Title,
		CoverImage: t.CoverImage,
		StartDate:  toDate(t.StartDate),
		EndDate:    toDate(t.EndDate),
		Countries:  orEmpty(t.Countries),
		Status:     string(t.Status),
	}
}

func statsToResponse(st views.Stats) TripStats {
	return TripStats{
		DiaryCount:   st.DiaryCount,
		TotalExpense: amountString(st.TotalExpense),
		Currency:     st.Currency,
	}
}
