package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tripjournal/internal/domain"
)

// Expense is the JSON shape of an expense. Amount is a decimal string with
// two places, e.g. "12.50".
type Expense struct {
	ID       string             `json:"id"`
	TripID   string             `json:"trip_id"`
	DiaryID  *string            `json:"diary_id"`
	Date     openapi_types.Date `json:"date"`
	Category string             `json:"category"`
	Amount   string             `json:"amount"`
	Currency string             `json:"currency"`
	Memo     string             `json:"memo,omitempty"`
}

// ExpenseInput is the body of POST /trips/{tripId}/expenses and
// PUT /expenses/{expenseId}. On update an empty trip_id keeps the current trip.
type ExpenseInput struct {
	TripID   string              `json:"trip_id,omitempty"`
	DiaryID  *string             `json:"diary_id,omitempty"`
	Date     *openapi_types.Date `json:"date"`
	Category string              `json:"category"`
	Amount   string              `json:"amount"`
	Currency string              `json:"currency"`
	Memo     string              `json:"memo,omitempty"`
}

// ListExpenses handles GET /trips/{tripId}/expenses.
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.ListByTripID(r.Context(), domain.TripID(urlParam(r, "tripId")))
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusOK, expensesToResponse(expenses))
}

// CreateExpense handles POST /trips/{tripId}/expenses.
func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var body ExpenseInput
	if !decodeBody(w, r, &body) {
		return
	}
	e, ok := body.toDomain("")
	if !ok {
		requestError(w, "amount must be a decimal string")
		return
	}
	e.TripID = domain.TripID(urlParam(r, "tripId"))
	created, err := s.expenses.Create(r.Context(), e)
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusCreated, expenseToResponse(created))
}

// GetExpense handles GET /expenses/{expenseId}.
func (s *Server) GetExpense(w http.ResponseWriter, r *http.Request) {
	e, err := s.expenses.GetByID(r.Context(), domain.ExpenseID(urlParam(r, "expenseId")))
	if err != nil {
		s.writeError(w, r, "expense", err)
		return
	}
	writeJSON(w, http.StatusOK, expenseToResponse(e))
}

// UpdateExpense handles PUT /expenses/{expenseId}.
func (s *Server) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var body ExpenseInput
	if !decodeBody(w, r, &body) {
		return
	}
	id := domain.ExpenseID(urlParam(r, "expenseId"))
	e, ok := body.toDomain(id)
	if !ok {
		requestError(w, "amount must be a decimal string")
		return
	}
	existing, err := s.expenses.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, "expense", err)
		return
	}
	if e.TripID == "" {
		e.TripID = existing.TripID
	}
	updated, err := s.expenses.Update(r.Context(), e)
	if err != nil {
		s.writeError(w, r, "expense", err)
		return
	}
	writeJSON(w, http.StatusOK, expenseToResponse(updated))
}

// DeleteExpense handles DELETE /expenses/{expenseId}.
func (s *Server) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.Delete(r.Context(), domain.ExpenseID(urlParam(r, "expenseId"))); err != nil {
		s.writeError(w, r, "expense", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (in ExpenseInput) toDomain(id domain.ExpenseID) (domain.Expense, bool) {
	amount, ok := parseAmount(in.Amount)
	if !ok {
		return domain.Expense{}, false
	}
	e := domain.Expense{
		ID:       id,
		TripID:   domain.TripID(in.TripID),
		Date:     fromDate(in.Date),
		Category: domain.CategoryKey(in.Category),
		Amount:   amount,
		Currency: in.Currency,
		Memo:     in.Memo,
	}
	if in.DiaryID != nil && *in.DiaryID != "" {
		d := domain.DiaryID(*in.DiaryID)
		e.DiaryID = &d
	}
	return e, true
}

func expenseToResponse(e domain.Expense) Expense {
	out := Expense{
		ID:       string(e.ID),
		TripID:   string(e.TripID),
		Date:     toDate(e.Date),
		Category: string(e.Category),
		Amount:   amountString(e.Amount),
		Currency: e.Currency,
		Memo:     e.Memo,
	}
	if e.DiaryID != nil {
		d := string(*e.DiaryID)
		out.DiaryID = &d
	}
	return out
}

func expensesToResponse(es []domain.Expense) []Expense {
	out := make([]Expense, len(es))
	for i, e := range es {
		out[i] = expenseToResponse(e)
	}
	return out
}
