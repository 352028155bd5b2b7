package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/views"
)

// Diary is the JSON shape of a diary entry.
type Diary struct {
	ID          string             `json:"id"`
	TripID      string             `json:"trip_id"`
	Title       string             `json:"title"`
	Date        openapi_types.Date `json:"date"`
	Time        string             `json:"time,omitempty"`
	Location    string             `json:"location"`
	Country     string             `json:"country"`
	Content     string             `json:"content"`
	Photos      []string           `json:"photos"`
	Weather     string             `json:"weather,omitempty"`
	Temperature *float64           `json:"temperature,omitempty"`
	Tags        []string           `json:"tags"`
}

// DiaryInput is the body of POST /trips/{tripId}/diaries and
// PUT /diaries/{diaryId}. On update an empty trip_id keeps the current trip.
type DiaryInput struct {
	TripID      string              `json:"trip_id,omitempty"`
	Title       string              `json:"title"`
	Date        *openapi_types.Date `json:"date"`
	Time        string              `json:"time,omitempty"`
	Location    string              `json:"location,omitempty"`
	Country     string              `json:"country,omitempty"`
	Content     string              `json:"content,omitempty"`
	Photos      []string            `json:"photos,omitempty"`
	Weather     string              `json:"weather,omitempty"`
	Temperature *float64            `json:"temperature,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
}

// Block is one element of GET /diaries/{diaryId}/content.
type Block struct {
	Kind       string `json:"kind"`
	Value      string `json:"value"`
	PhotoIndex *int   `json:"photo_index,omitempty"`
}

// DiaryExpenses is the body of GET /diaries/{diaryId}/expenses.
type DiaryExpenses struct {
	Expenses []Expense `json:"expenses"`
	Count    int       `json:"count"`
	Total    string    `json:"total"`
	Currency string    `json:"currency,omitempty"`
}

// ListDiaries handles GET /trips/{tripId}/diaries.
func (s *Server) ListDiaries(w http.ResponseWriter, r *http.Request) {
	diaries, err := s.diaries.ListByTripID(r.Context(), domain.TripID(urlParam(r, "tripId")))
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusOK, diariesToResponse(diaries))
}

// CreateDiary handles POST /trips/{tripId}/diaries.
func (s *Server) CreateDiary(w http.ResponseWriter, r *http.Request) {
	var body DiaryInput
	if !decodeBody(w, r, &body) {
		return
	}
	d := body.toDomain("")
	d.TripID = domain.TripID(urlParam(r, "tripId"))
	created, err := s.diaries.Create(r.Context(), d)
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusCreated, diaryToResponse(created))
}

// GetDiary handles GET /diaries/{diaryId}.
func (s *Server) GetDiary(w http.ResponseWriter, r *http.Request) {
	d, err := s.diaries.GetByID(r.Context(), domain.DiaryID(urlParam(r, "diaryId")))
	if err != nil {
		s.writeError(w, r, "diary", err)
		return
	}
	writeJSON(w, http.StatusOK, diaryToResponse(d))
}

// UpdateDiary handles PUT /diaries/{diaryId}.
func (s *Server) UpdateDiary(w http.ResponseWriter, r *http.Request) {
	var body DiaryInput
	if !decodeBody(w, r, &body) {
		return
	}
	id := domain.DiaryID(urlParam(r, "diaryId"))
	existing, err := s.diaries.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, "diary", err)
		return
	}
	d := body.toDomain(id)
	if d.TripID == "" {
		d.TripID = existing.TripID
	}
	updated, err := s.diaries.Update(r.Context(), d)
	if err != nil {
		s.writeError(w, r, "diary", err)
		return
	}
	writeJSON(w, http.StatusOK, diaryToResponse(updated))
}

// DeleteDiary handles DELETE /diaries/{diaryId}. Linked expenses go with it.
func (s *Server) DeleteDiary(w http.ResponseWriter, r *http.Request) {
	if err := s.diaries.Delete(r.Context(), domain.DiaryID(urlParam(r, "diaryId"))); err != nil {
		s.writeError(w, r, "diary", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetDiaryContent handles GET /diaries/{diaryId}/content: paragraphs with
// the photos spread between them.
func (s *Server) GetDiaryContent(w http.ResponseWriter, r *http.Request) {
	blocks, err := s.views.DiaryContent(r.Context(), domain.DiaryID(urlParam(r, "diaryId")))
	if err != nil {
		s.writeError(w, r, "diary", err)
		return
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = Block{Kind: string(b.Kind), Value: b.Value}
		if b.Kind == views.BlockPhoto {
			idx := b.PhotoIndex
			out[i].PhotoIndex = &idx
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// GetDiaryExpenses handles GET /diaries/{diaryId}/expenses.
func (s *Server) GetDiaryExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, sum, err := s.views.DiaryExpenses(r.Context(), domain.DiaryID(urlParam(r, "diaryId")))
	if err != nil {
		s.writeError(w, r, "diary", err)
		return
	}
	writeJSON(w, http.StatusOK, DiaryExpenses{
		Expenses: expensesToResponse(expenses),
		Count:    sum.Count,
		Total:    amountString(sum.Total),
		Currency: sum.Currency,
	})
}

func (in DiaryInput) toDomain(id domain.DiaryID) domain.Diary {
	return domain.Diary{
		ID:          id,
		TripID:      domain.TripID(in.TripID),
		Title:       in.Title,
		Date:        fromDate(in.Date),
		Time:        in.Time,
		Location:    in.Location,
		Country:     in.Country,
		Content:     in.Content,
		Photos:      in.Photos,
		Weather:     in.Weather,
		Temperature: in.Temperature,
		Tags:        in.Tags,
	}
}

func diaryToResponse(d domain.Diary) Diary {
	return Diary{
		ID:          string(d.ID),
		TripID:      string(d.TripID),
		Title:       d.Title,
		Date:        toDate(d.Date),
		Time:        d.Time,
		Location:    d.Location,
		Country:     d.Country,
		Content:     d.Content,
		Photos:      orEmpty(d.Photos),
		Weather:     d.Weather,
		Temperature: d.Temperature,
		Tags:        orEmpty(d.Tags),
	}
}

func diariesToResponse(ds []domain.Diary) []Diary {
	out := make([]Diary, len(ds))
	for i, d := range ds {
		out[i] = diaryToResponse(d)
	}
	return out
}
