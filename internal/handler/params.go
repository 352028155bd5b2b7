package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

func urlParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// queryInt returns nil when key is absent or not an integer, so
// domain.NewPaginationParams applies its defaults.
func queryInt(r *http.Request, key string) *int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func toDate(t time.Time) openapi_types.Date {
	return openapi_types.Date{Time: t}
}

// fromDate returns the zero time for a missing date so the service reports
// it as a validation error.
func fromDate(d *openapi_types.Date) time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time
}

func amountString(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// parseAmount parses a decimal string from a request body.
func parseAmount(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
