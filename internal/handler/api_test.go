package handler_test

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripjournal/internal/app"
	"github.com/pkordes/tripjournal/internal/handler"
	"github.com/pkordes/tripjournal/internal/service"
)

// newAPI serves the real services over the seeded memory backend, with the
// clock fixed to 2026-03-15 09:00 UTC.
func newAPI(t *testing.T) http.Handler {
	t.Helper()
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	svc := app.New(app.NewMemoryRepos(true), service.WithClock(func() time.Time { return now }))
	return handler.NewServer(handler.Deps{
		Trips:    svc.Trips,
		Diaries:  svc.Diaries,
		Expenses: svc.Expenses,
		Budgets:  svc.Budgets,
		Views:    svc.Views,
		Auth:     svc.Auth,
		Export:   svc.Export,
	}).Routes()
}

func TestAPI_tripStatsAndProgress(t *testing.T) {
	api := newAPI(t)

	rec := serve(api, http.MethodGet, "/trips/1/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, handler.TripStats{DiaryCount: 4, TotalExpense: "445.00", Currency: "USD"}, decode[handler.TripStats](t, rec))

	rec = serve(api, http.MethodGet, "/trips/1/progress", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	p := decode[handler.TripProgress](t, rec)
	assert.Equal(t, 92, p.TotalDays)
	assert.Equal(t, 15, p.DaysPassed)
	assert.Equal(t, 16, p.Rounded)
	assert.Equal(t, "D+15 / 92", p.Label)
}

func TestAPI_listTripsPastTheLastPage(t *testing.T) {
	api := newAPI(t)

	rec := serve(api, http.MethodGet, "/trips?page=100000000000000001&limit=100", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[handler.TripList](t, rec).Data)
}

func TestAPI_deleteTripCascades(t *testing.T) {
	api := newAPI(t)

	rec := serve(api, http.MethodDelete, "/trips/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, http.StatusNotFound, serve(api, http.MethodGet, "/trips/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, serve(api, http.MethodGet, "/diaries/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, serve(api, http.MethodGet, "/expenses/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, serve(api, http.MethodGet, "/budgets/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, serve(api, http.MethodGet, "/notes/1", nil).Code)

	rec = serve(api, http.MethodGet, "/budgets/3", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "other trips are untouched")

	rec = serve(api, http.MethodDelete, "/trips/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_createTripBecomesActive(t *testing.T) {
	api := newAPI(t)

	rec := serve(api, http.MethodPost, "/trips", jsonBody(t, map[string]any{
		"title":      "Weekend in Busan",
		"start_date": "2026-04-03",
		"end_date":   "2026-04-05",
		"status":     "ongoing",
	}))
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[handler.Trip](t, rec)
	assert.Equal(t, []string{}, created.Countries)

	rec = serve(api, http.MethodGet, "/session/active-trip", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	active := decode[handler.ActiveTrip](t, rec)
	require.NotNil(t, active.TripID)
	assert.Equal(t, created.ID, *active.TripID)

	rec = serve(api, http.MethodGet, "/trips?limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[handler.TripList](t, rec)
	assert.Equal(t, 3, list.Pagination.Total)
	require.Len(t, list.Data, 1)
}

func TestAPI_expenseValidation(t *testing.T) {
	api := newAPI(t)

	rec := serve(api, http.MethodPost, "/trips/1/expenses", jsonBody(t, map[string]any{
		"date": "2026-03-18", "category": "food", "amount": "12.345", "currency": "usd",
	}))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[handler.ErrorResponse](t, rec).Error.Message, "two decimal places")

	rec = serve(api, http.MethodPost, "/trips/1/expenses", jsonBody(t, map[string]any{
		"date": "2026-03-18", "category": "food", "amount": "twelve", "currency": "USD",
	}))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = serve(api, http.MethodPost, "/trips/2/expenses", jsonBody(t, map[string]any{
		"date": "2025-12-21", "category": "food", "amount": "10", "currency": "JPY", "diary_id": "1",
	}))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, "diary of another trip")

	rec = serve(api, http.MethodPost, "/trips/1/expenses", jsonBody(t, map[string]any{
		"date": "2026-03-18", "category": "food", "amount": "12.5", "currency": "usd", "diary_id": "1",
	}))
	require.Equal(t, http.StatusCreated, rec.Code)
	e := decode[handler.Expense](t, rec)
	assert.Equal(t, "12.50", e.Amount)
	assert.Equal(t, "USD", e.Currency)
	require.NotNil(t, e.DiaryID)

	rec = serve(api, http.MethodGet, "/diaries/1/expenses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	de := decode[handler.DiaryExpenses](t, rec)
	assert.Equal(t, 4, de.Count)
	assert.Equal(t, "112.50", de.Total)
}

func TestAPI_updateExpenseKeepsTrip(t *testing.T) {
	api := newAPI(t)

	rec := serve(api, http.MethodPut, "/expenses/13", jsonBody(t, map[string]any{
		"date": "2025-12-20", "category": "food", "amount": "4000", "currency": "JPY", "memo": "Better ramen",
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	e := decode[handler.Expense](t, rec)
	assert.Equal(t, "2", e.TripID)
	assert.Equal(t, "4000.00", e.Amount)
}

func TestAPI_budgetConflict(t *testing.T) {
	api := newAPI(t)

	rec := serve(api, http.MethodPost, "/trips/1/budgets", jsonBody(t, map[string]any{
		"currency": "usd", "amount": "100",
	}))
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", decode[handler.ErrorResponse](t, rec).Error.Code)

	rec = serve(api, http.MethodPost, "/trips/1/budgets", jsonBody(t, map[string]any{
		"currency": "EUR", "amount": "800",
	}))
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestAPI_diaryContentInterleavesPhotos(t *testing.T) {
	api := newAPI(t)

	rec := serve(api, http.MethodGet, "/diaries/1/content", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	blocks := decode[[]handler.Block](t, rec)
	require.Len(t, blocks, 4)
	assert.Equal(t, "paragraph", blocks[0].Kind)
	assert.Nil(t, blocks[0].PhotoIndex)
	for i, b := range blocks[1:] {
		assert.Equal(t, "photo", b.Kind)
		require.NotNil(t, b.PhotoIndex)
		assert.Equal(t, i, *b.PhotoIndex)
	}
}

func TestAPI_deleteDiaryRemovesLinkedExpenses(t *testing.T) {
	api := newAPI(t)

	require.Equal(t, http.StatusNoContent, serve(api, http.MethodDelete, "/diaries/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, serve(api, http.MethodGet, "/expenses/1", nil).Code)
	assert.Equal(t, http.StatusOK, serve(api, http.MethodGet, "/expenses/6", nil).Code)
}

func TestAPI_viewsScopedByTripParam(t *testing.T) {
	api := newAPI(t)

	rec := serve(api, http.MethodGet, "/views/currency-totals?trip=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	reports := decode[[]handler.CurrencyReport](t, rec)
	require.Len(t, reports, 1)
	assert.Equal(t, "JPY", reports[0].Currency)
	assert.Equal(t, "¥", reports[0].Symbol)
	assert.Equal(t, "5500.00", reports[0].Total)
	require.NotNil(t, reports[0].Usage)
	assert.EqualValues(t, 3, reports[0].Usage.Percent)

	rec = serve(api, http.MethodGet, "/views/diaries?trip=1&q=uyuni", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	months := decode[[]handler.MonthGroup](t, rec)
	require.Len(t, months, 1)
	assert.Equal(t, "2026-03", months[0].Key)

	rec = serve(api, http.MethodGet, "/views/places?trip=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	places := decode[[]handler.CountryGroup](t, rec)
	assert.NotEmpty(t, places)

	rec = serve(api, http.MethodGet, "/views/places/timeline?trip=1", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "country is required")

	rec = serve(api, http.MethodGet, "/views/places/timeline?trip=1&country=Peru", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	timeline := decode[[]handler.Diary](t, rec)
	require.NotEmpty(t, timeline)
	for i := 1; i < len(timeline); i++ {
		assert.False(t, timeline[i].Date.Time.Before(timeline[i-1].Date.Time), "oldest first")
	}
}

func TestAPI_categories(t *testing.T) {
	api := newAPI(t)

	rec := serve(api, http.MethodDelete, "/categories/1", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "default categories stay")

	rec = serve(api, http.MethodPost, "/categories", jsonBody(t, map[string]any{
		"name": "Tours", "icon": "tour", "color": "#123456",
	}))
	require.Equal(t, http.StatusCreated, rec.Code)
	c := decode[handler.Category](t, rec)
	assert.False(t, c.IsDefault)

	assert.Equal(t, http.StatusNoContent, serve(api, http.MethodDelete, "/categories/"+c.ID, nil).Code)
}

func TestAPI_authFlow(t *testing.T) {
	api := newAPI(t)

	rec := serve(api, http.MethodPost, "/auth/signup", jsonBody(t, map[string]any{
		"nickname": "mina", "email": "mina@example.com", "password": "pw", "confirm_password": "other",
	}))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = serve(api, http.MethodPost, "/auth/signup", jsonBody(t, map[string]any{
		"nickname": "mina", "email": "mina@example.com", "password": "pw", "confirm_password": "pw",
	}))
	require.Equal(t, http.StatusCreated, rec.Code)
	session := decode[handler.AuthSession](t, rec)
	assert.True(t, session.Authenticated)
	require.NotNil(t, session.Profile)
	assert.Equal(t, "KRW", session.Profile.Currency)
	assert.Equal(t, "Asia/Seoul", session.Profile.Timezone)

	rec = serve(api, http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[handler.AuthSession](t, rec).Authenticated)

	rec = serve(api, http.MethodPost, "/auth/login", jsonBody(t, map[string]any{"email": "mina@example.com"}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAPI_lookups(t *testing.T) {
	rec := serve(newAPI(t), http.MethodGet, "/lookups", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	l := decode[handler.Lookups](t, rec)
	assert.Len(t, l.Categories, 8)
	assert.Equal(t, "food", l.Categories[0].Key)
	assert.Equal(t, "USD", l.Currencies[0].Code)
}

func TestAPI_unknownFieldRejected(t *testing.T) {
	rec := serve(newAPI(t), http.MethodPut, "/session/tab", bytes.NewBufferString(`{"tab":"map","extra":1}`))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
