package handler

import (
	"net/http"

	"github.com/pkordes/tripjournal/internal/fixtures"
)

// CategoryLookup is the display metadata of one expense category key.
type CategoryLookup struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// CurrencyLookup is the display metadata of one currency.
type CurrencyLookup struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Lookups is the body of GET /lookups.
type Lookups struct {
	Categories []CategoryLookup `json:"categories"`
	Currencies []CurrencyLookup `json:"currencies"`
}

// GetLookups handles GET /lookups. The tables are static.
func (s *Server) GetLookups(w http.ResponseWriter, r *http.Request) {
	styles := fixtures.CategoryStyles()
	currencies := fixtures.Currencies()
	out := Lookups{
		Categories: make([]CategoryLookup, len(styles)),
		Currencies: make([]CurrencyLookup, len(currencies)),
	}
	for i, st := range styles {
		out.Categories[i] = CategoryLookup{Key: string(st.Key), Label: st.Label, Icon: st.Icon, Color: st.Color}
	}
	for i, c := range currencies {
		out.Currencies[i] = CurrencyLookup{Code: c.Code, Symbol: c.Symbol, Name: c.Name}
	}
	writeJSON(w, http.StatusOK, out)
}
