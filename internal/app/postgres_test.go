package app_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripjournal/internal/app"
	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/fixtures"
	"github.com/pkordes/tripjournal/testutil"
)

func TestSeedPostgres_loadsFixturesOnce(t *testing.T) {
	tx := testutil.NewTx(t)
	_, err := testutil.MigrateUp(context.Background(), os.Getenv(testutil.DSNEnv))
	require.NoError(t, err)
	ctx := context.Background()

	wrote, err := app.SeedPostgres(ctx, tx)
	require.NoError(t, err)
	assert.True(t, wrote)

	trips, err := app.NewPostgresRepos(tx).Trips.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, tripIDs(fixtures.Trips()), tripIDs(trips))

	wrote, err = app.SeedPostgres(ctx, tx)
	require.NoError(t, err)
	assert.False(t, wrote, "a store with trips is left alone")
}

// TestSeedPostgres_failureLeavesNothing makes the categories step fail after
// trips, diaries and expenses went in, and checks none of them remain.
func TestSeedPostgres_failureLeavesNothing(t *testing.T) {
	tx := testutil.NewTx(t)
	_, err := testutil.MigrateUp(context.Background(), os.Getenv(testutil.DSNEnv))
	require.NoError(t, err)
	ctx := context.Background()

	repos := app.NewPostgresRepos(tx)
	taken := fixtures.Categories()[0]
	_, err = repos.Categories.Create(ctx, domain.Category{ID: taken.ID, Name: "Already here"})
	require.NoError(t, err)

	_, err = app.SeedPostgres(ctx, tx)
	require.Error(t, err)

	trips, err := repos.Trips.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, trips)
	expenses, err := repos.Expenses.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, expenses)
}
