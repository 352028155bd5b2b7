package handler

import (
	"net/http"

	"github.com/pkordes/tripjournal/internal/domain"
)

// Budget is the JSON shape of a budget.
type Budget struct {
	ID       string `json:"id"`
	TripID   string `json:"trip_id"`
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
}

// BudgetInput is the body of POST /trips/{tripId}/budgets and
// PUT /budgets/{budgetId}. On update an empty trip_id keeps the current trip.
type BudgetInput struct {
	TripID   string `json:"trip_id,omitempty"`
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
}

// ListBudgets handles GET /trips/{tripId}/budgets.
func (s *Server) ListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.budgets.ListByTripID(r.Context(), domain.TripID(urlParam(r, "tripId")))
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	out := make([]Budget, len(budgets))
	for i, b := range budgets {
		out[i] = budgetToResponse(b)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateBudget handles POST /trips/{tripId}/budgets.
// A second budget in the same currency for the trip is a 409.
func (s *Server) CreateBudget(w http.ResponseWriter, r *http.Request) {
	var body BudgetInput
	if !decodeBody(w, r, &body) {
		return
	}
	amount, ok := parseAmount(body.Amount)
	if !ok {
		requestError(w, "amount must be a decimal string")
		return
	}
	created, err := s.budgets.Create(r.Context(), domain.Budget{
		TripID:   domain.TripID(urlParam(r, "tripId")),
		Currency: body.Currency,
		Amount:   amount,
	})
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusCreated, budgetToResponse(created))
}

// GetBudget handles GET /budgets/{budgetId}.
func (s *Server) GetBudget(w http.ResponseWriter, r *http.Request) {
	b, err := s.budgets.GetByID(r.Context(), domain.BudgetID(urlParam(r, "budgetId")))
	if err != nil {
		s.writeError(w, r, "budget", err)
		return
	}
	writeJSON(w, http.StatusOK, budgetToResponse(b))
}

// UpdateBudget handles PUT /budgets/{budgetId}.
func (s *Server) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	var body BudgetInput
	if !decodeBody(w, r, &body) {
		return
	}
	amount, ok := parseAmount(body.Amount)
	if !ok {
		requestError(w, "amount must be a decimal string")
		return
	}
	id := domain.BudgetID(urlParam(r, "budgetId"))
	existing, err := s.budgets.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, "budget", err)
		return
	}
	tripID := domain.TripID(body.TripID)
	if tripID == "" {
		tripID = existing.TripID
	}
	updated, err := s.budgets.Update(r.Context(), domain.Budget{
		ID:       id,
		TripID:   tripID,
		Currency: body.Currency,
		Amount:   amount,
	})
	if err != nil {
		s.writeError(w, r, "budget", err)
		return
	}
	writeJSON(w, http.StatusOK, budgetToResponse(updated))
}

// DeleteBudget handles DELETE /budgets/{budgetId}.
func (s *Server) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	if err := s.budgets.Delete(r.Context(), domain.BudgetID(urlParam(r, "budgetId"))); err != nil {
		s.writeError(w, r, "budget", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func budgetToResponse(b domain.Budget) Budget {
	return Budget{
		ID:       string(b.ID),
		TripID:   string(b.TripID),
		Currency: b.Currency,
		Amount:   amountString(b.Amount),
	}
}
