package handler

import (
	"net/http"

	"github.com/pkordes/tripjournal/internal/domain"
)

// Category is the JSON shape of a spend category.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	IsDefault bool   `json:"is_default"`
}

// CategoryInput is the body of POST /categories and PUT /categories/{categoryId}.
type CategoryInput struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// ListCategories handles GET /categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.expenses.ListCategories(r.Context())
	if err != nil {
		s.writeError(w, r, "category", err)
		return
	}
	out := make([]Category, len(cats))
	for i, c := range cats {
		out[i] = categoryToResponse(c)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateCategory handles POST /categories.
func (s *Server) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var body CategoryInput
	if !decodeBody(w, r, &body) {
		return
	}
	created, err := s.expenses.CreateCategory(r.Context(), body.toDomain(""))
	if err != nil {
		s.writeError(w, r, "category", err)
		return
	}
	writeJSON(w, http.StatusCreated, categoryToResponse(created))
}

// GetCategory handles GET /categories/{categoryId}.
func (s *Server) GetCategory(w http.ResponseWriter, r *http.Request) {
	c, err := s.expenses.GetCategory(r.Context(), domain.CategoryID(urlParam(r, "categoryId")))
	if err != nil {
		s.writeError(w, r, "category", err)
		return
	}
	writeJSON(w, http.StatusOK, categoryToResponse(c))
}

// UpdateCategory handles PUT /categories/{categoryId}.
func (s *Server) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var body CategoryInput
	if !decodeBody(w, r, &body) {
		return
	}
	updated, err := s.expenses.UpdateCategory(r.Context(), body.toDomain(domain.CategoryID(urlParam(r, "categoryId"))))
	if err != nil {
		s.writeError(w, r, "category", err)
		return
	}
	writeJSON(w, http.StatusOK, categoryToResponse(updated))
}

// DeleteCategory handles DELETE /categories/{categoryId}.
// Default categories are rejected with 422.
func (s *Server) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.DeleteCategory(r.Context(), domain.CategoryID(urlParam(r, "categoryId"))); err != nil {
		s.writeError(w, r, "category", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (in CategoryInput) toDomain(id domain.CategoryID) domain.Category {
	return domain.Category{ID: id, Name: in.Name, Icon: in.Icon, Color: in.Color}
}

func categoryToResponse(c domain.Category) Category {
	return Category{
		ID:        string(c.ID),
		Name:      c.Name,
		Icon:      c.Icon,
		Color:     c.Color,
		IsDefault: c.IsDefault,
	}
}
