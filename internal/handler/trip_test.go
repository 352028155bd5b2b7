package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/handler"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	create     func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID    func(ctx context.Context, id domain.TripID) (domain.Trip, error)
	listPaged  func(ctx context.Context, status domain.TripStatusFilter, order domain.TripSort, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update     func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete     func(ctx context.Context, id domain.TripID) error
	createNote func(ctx context.Context, note domain.Note) (domain.Note, error)
	getNote    func(ctx context.Context, id domain.NoteID) (domain.Note, error)
	listNotes  func(ctx context.Context, tripID domain.TripID) ([]domain.Note, error)
	updateNote func(ctx context.Context, note domain.Note) (domain.Note, error)
	deleteNote func(ctx context.Context, id domain.NoteID) error
	activeTrip func() (domain.TripID, bool)
	setActive  func(ctx context.Context, id *domain.TripID) error
	currentTab func() domain.Tab
	setTab     func(tab domain.Tab) error
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id domain.TripID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, status domain.TripStatusFilter, order domain.TripSort, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, status, order, p)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, id domain.TripID) error {
	return m.delete(ctx, id)
}
func (m *mockTripServicer) CreateNote(ctx context.Context, n domain.Note) (domain.Note, error) {
	return m.createNote(ctx, n)
}
func (m *mockTripServicer) GetNote(ctx context.Context, id domain.NoteID) (domain.Note, error) {
	return m.getNote(ctx, id)
}
func (m *mockTripServicer) ListNotesByTripID(ctx context.Context, tripID domain.TripID) ([]domain.Note, error) {
	return m.listNotes(ctx, tripID)
}
func (m *mockTripServicer) UpdateNote(ctx context.Context, n domain.Note) (domain.Note, error) {
	return m.updateNote(ctx, n)
}
func (m *mockTripServicer) DeleteNote(ctx context.Context, id domain.NoteID) error {
	return m.deleteNote(ctx, id)
}
func (m *mockTripServicer) ActiveTrip() (domain.TripID, bool) { return m.activeTrip() }
func (m *mockTripServicer) SetActiveTrip(ctx context.Context, id *domain.TripID) error {
	return m.setActive(ctx, id)
}
func (m *mockTripServicer) CurrentTab() domain.Tab { return m.currentTab() }
func (m *mockTripServicer) SetCurrentTab(tab domain.Tab) error { return m.setTab(tab) }

// compile-time check: mockTripServicer must satisfy handler.TripServicer.
var _ handler.TripServicer = (*mockTripServicer)(nil)

// ---- helpers ---------------------------------------------------------------

func newHTTPHandler(svc handler.TripServicer) http.Handler {
	return handler.NewServer(handler.Deps{Trips: svc}).Routes()
}

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:         "trip-1",
		Title:      "Summer in Lisbon",
		CoverImage: domain.DefaultCoverImage,
		StartDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Countries:  []string{"Portugal"},
		Status:     domain.TripCompleted,
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func serve(h http.Handler, method, target string, body *bytes.Buffer) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// ---- POST /trips -----------------------------------------------------------

func TestCreateTrip_201(t *testing.T) {
	fixture := tripFixture()
	var got domain.Trip
	svc := &mockTripServicer{
		create: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			got = trip
			return fixture, nil
		},
	}

	rec := serve(newHTTPHandler(svc), http.MethodPost, "/trips", jsonBody(t, map[string]any{
		"title":      "Summer in Lisbon",
		"start_date": "2025-06-01",
		"end_date":   "2025-06-15",
		"countries":  []string{"Portugal"},
		"status":     "completed",
	}))

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decode[handler.Trip](t, rec)
	assert.Equal(t, "trip-1", resp.ID)
	assert.Equal(t, "2025-06-01", resp.StartDate.String())
	assert.Equal(t, fixture.StartDate, got.StartDate)
	assert.Equal(t, domain.TripCompleted, got.Status)
}

func TestCreateTrip_422_ValidationError(t *testing.T) {
	svc := &mockTripServicer{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
		},
	}

	rec := serve(newHTTPHandler(svc), http.MethodPost, "/trips", jsonBody(t, map[string]any{
		"title":      "",
		"start_date": "2025-06-01",
	}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decode[handler.ErrorResponse](t, rec)
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "title is required", resp.Error.Message)
}

func TestCreateTrip_422_MalformedBody(t *testing.T) {
	rec := serve(newHTTPHandler(&mockTripServicer{}), http.MethodPost, "/trips", bytes.NewBufferString(`{"title":`))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decode[handler.ErrorResponse](t, rec)
	assert.Contains(t, resp.Error.Message, "malformed request body")
}

func TestCreateTrip_422_MissingBody(t *testing.T) {
	rec := serve(newHTTPHandler(&mockTripServicer{}), http.MethodPost, "/trips", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- GET /trips ------------------------------------------------------------

func TestListTrips_200_PassesFilterAndPage(t *testing.T) {
	var (
		gotStatus domain.TripStatusFilter
		gotSort   domain.TripSort
		gotPage   domain.PaginationParams
	)
	svc := &mockTripServicer{
		listPaged: func(_ context.Context, status domain.TripStatusFilter, order domain.TripSort, p domain.PaginationParams) ([]domain.Trip, int64, error) {
			gotStatus, gotSort, gotPage = status, order, p
			return []domain.Trip{tripFixture()}, 7, nil
		},
	}

	rec := serve(newHTTPHandler(svc), http.MethodGet, "/trips?status=completed&sort=oldest&page=2&limit=5", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.FilterCompleted, gotStatus)
	assert.Equal(t, domain.SortOldest, gotSort)
	assert.Equal(t, domain.PaginationParams{Page: 2, Limit: 5}, gotPage)

	resp := decode[handler.TripList](t, rec)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, handler.Pagination{Page: 2, Limit: 5, Total: 7}, resp.Pagination)
}

func TestListTrips_200_Defaults(t *testing.T) {
	svc := &mockTripServicer{
		listPaged: func(_ context.Context, status domain.TripStatusFilter, order domain.TripSort, p domain.PaginationParams) ([]domain.Trip, int64, error) {
			assert.Equal(t, domain.FilterAll, status)
			assert.Equal(t, domain.SortNewest, order)
			return []domain.Trip{}, 0, nil
		},
	}

	rec := serve(newHTTPHandler(svc), http.MethodGet, "/trips", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	// Must be a JSON array, not null.
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

// ---- GET /trips/{tripId} ---------------------------------------------------

func TestGetTrip_200(t *testing.T) {
	svc := &mockTripServicer{
		getByID: func(_ context.Context, id domain.TripID) (domain.Trip, error) {
			require.Equal(t, domain.TripID("trip-1"), id)
			return tripFixture(), nil
		},
	}

	rec := serve(newHTTPHandler(svc), http.MethodGet, "/trips/trip-1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Summer in Lisbon", decode[handler.Trip](t, rec).Title)
}

func TestGetTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		getByID: func(_ context.Context, _ domain.TripID) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", domain.ErrNotFound)
		},
	}

	rec := serve(newHTTPHandler(svc), http.MethodGet, "/trips/nope", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decode[handler.ErrorResponse](t, rec)
	assert.Equal(t, handler.ErrorDetail{Code: "not_found", Message: "trip not found"}, resp.Error)
}

func TestGetTrip_500_HidesCause(t *testing.T) {
	svc := &mockTripServicer{
		getByID: func(_ context.Context, _ domain.TripID) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("connection refused")
		},
	}

	rec := serve(newHTTPHandler(svc), http.MethodGet, "/trips/trip-1", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

// ---- PUT /trips/{tripId} ---------------------------------------------------

func TestUpdateTrip_200_UsesPathID(t *testing.T) {
	svc := &mockTripServicer{
		update: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			assert.Equal(t, domain.TripID("trip-1"), trip.ID)
			return trip, nil
		},
	}

	rec := serve(newHTTPHandler(svc), http.MethodPut, "/trips/trip-1", jsonBody(t, map[string]any{
		"title":      "Renamed",
		"start_date": "2025-06-01",
		"end_date":   "2025-06-02",
		"status":     "ongoing",
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Renamed", decode[handler.Trip](t, rec).Title)
}

func TestUpdateTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		update: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}

	rec := serve(newHTTPHandler(svc), http.MethodPut, "/trips/nope", jsonBody(t, map[string]any{"title": "X"}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- DELETE /trips/{tripId} ------------------------------------------------

func TestDeleteTrip_204(t *testing.T) {
	svc := &mockTripServicer{
		delete: func(_ context.Context, _ domain.TripID) error { return nil },
	}

	rec := serve(newHTTPHandler(svc), http.MethodDelete, "/trips/trip-1", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		delete: func(_ context.Context, _ domain.TripID) error { return domain.ErrNotFound },
	}

	rec := serve(newHTTPHandler(svc), http.MethodDelete, "/trips/nope", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- /session --------------------------------------------------------------

func TestPutActiveTrip_clearsWithNull(t *testing.T) {
	var cleared bool
	svc := &mockTripServicer{
		setActive: func(_ context.Context, id *domain.TripID) error {
			cleared = id == nil
			return nil
		},
		activeTrip: func() (domain.TripID, bool) { return "", false },
	}

	rec := serve(newHTTPHandler(svc), http.MethodPut, "/session/active-trip", bytes.NewBufferString(`{"trip_id":null}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, cleared)
	assert.JSONEq(t, `{"trip_id":null}`, rec.Body.String())
}

func TestPutActiveTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		setActive: func(_ context.Context, _ *domain.TripID) error { return domain.ErrNotFound },
	}

	rec := serve(newHTTPHandler(svc), http.MethodPut, "/session/active-trip", bytes.NewBufferString(`{"trip_id":"nope"}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPutTab_422(t *testing.T) {
	svc := &mockTripServicer{
		setTab: func(tab domain.Tab) error {
			return fmt.Errorf("%w: unknown tab %q", domain.ErrValidation, tab)
		},
	}

	rec := serve(newHTTPHandler(svc), http.MethodPut, "/session/tab", bytes.NewBufferString(`{"tab":"settings"}`))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[handler.ErrorResponse](t, rec).Error.Message, "unknown tab")
}

// ---- notes -----------------------------------------------------------------

func TestUpdateNote_sendsPathID(t *testing.T) {
	svc := &mockTripServicer{
		updateNote: func(_ context.Context, n domain.Note) (domain.Note, error) {
			assert.Equal(t, domain.NoteID("note-9"), n.ID)
			n.TripID = "trip-1"
			return n, nil
		},
	}

	rec := serve(newHTTPHandler(svc), http.MethodPut, "/notes/note-9", jsonBody(t, map[string]any{
		"title": "Packing list",
		"tags":  []string{"gear"},
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[handler.Note](t, rec)
	assert.Equal(t, "trip-1", resp.TripID)
	assert.Equal(t, []string{"gear"}, resp.Tags)
}
