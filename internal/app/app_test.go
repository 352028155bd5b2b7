package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripjournal/internal/app"
	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/fixtures"
	"github.com/pkordes/tripjournal/internal/service"
)

func tripIDs(trips []domain.Trip) []domain.TripID {
	ids := make([]domain.TripID, len(trips))
	for i, t := range trips {
		ids[i] = t.ID
	}
	return ids
}

func TestNewMemoryRepos(t *testing.T) {
	ctx := context.Background()

	seeded := app.NewMemoryRepos(true)
	trips, err := seeded.Trips.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, tripIDs(fixtures.Trips()), tripIDs(trips))

	empty := app.NewMemoryRepos(false)
	trips, err = empty.Trips.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, trips)
}

func TestSeed_keepsFixtureOrder(t *testing.T) {
	ctx := context.Background()
	r := app.NewMemoryRepos(false)

	wrote, err := app.Seed(ctx, r)
	require.NoError(t, err)
	assert.True(t, wrote)

	trips, err := r.Trips.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, tripIDs(fixtures.Trips()), tripIDs(trips))

	diaries, err := r.Diaries.List(ctx)
	require.NoError(t, err)
	require.Len(t, diaries, len(fixtures.Diaries()))
	assert.Equal(t, fixtures.Diaries()[0].ID, diaries[0].ID)

	expenses, err := r.Expenses.List(ctx)
	require.NoError(t, err)
	assert.Len(t, expenses, len(fixtures.Expenses()))

	categories, err := r.Categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, len(fixtures.Categories()))
}

func TestSeed_skipsNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	r := app.NewMemoryRepos(true)

	wrote, err := app.Seed(ctx, r)
	require.NoError(t, err)
	assert.False(t, wrote)

	trips, err := r.Trips.List(ctx)
	require.NoError(t, err)
	assert.Len(t, trips, len(fixtures.Trips()))
}

func TestNew_viewsFollowActiveTrip(t *testing.T) {
	ctx := context.Background()
	svc := app.New(app.NewMemoryRepos(true),
		service.WithClock(func() time.Time { return time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC) }),
	)

	_, scoped := svc.Views.Scope("")
	assert.False(t, scoped, "no trip is active at start")

	trip, err := svc.Trips.Create(ctx, domain.Trip{
		Title:     "Weekend in Busan",
		StartDate: time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC),
		Status:    domain.TripOngoing,
	})
	require.NoError(t, err)

	id, scoped := svc.Views.Scope("")
	assert.True(t, scoped)
	assert.Equal(t, trip.ID, id)
}

func TestNew_panicsOnMissingRepo(t *testing.T) {
	r := app.NewMemoryRepos(false)
	r.Notes = nil
	assert.Panics(t, func() { app.New(r) })
}
