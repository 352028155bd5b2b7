package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/service"
	"github.com/pkordes/tripjournal/internal/views"
)

// staticActive is an ActiveTripper with a fixed answer.
type staticActive struct {
	id domain.TripID
}

func (s staticActive) ActiveTrip() (domain.TripID, bool) { return s.id, s.id != "" }

func TestViewService_Scope(t *testing.T) {
	none := service.NewViewService(seeded(), staticActive{})
	id, ok := none.Scope("")
	assert.False(t, ok)
	assert.Empty(t, id)

	active := service.NewViewService(seeded(), staticActive{id: "2"})
	id, ok = active.Scope("")
	assert.True(t, ok)
	assert.Equal(t, domain.TripID("2"), id)

	id, ok = active.Scope("1")
	assert.True(t, ok)
	assert.Equal(t, domain.TripID("1"), id, "explicit trip wins over the active one")
}

func TestViewService_Diaries_ScopedToActiveTrip(t *testing.T) {
	svc := service.NewViewService(seeded(), staticActive{id: "2"})

	groups, err := svc.Diaries(context.Background(), "", "")

	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "2025-12", groups[0].Key)
}

func TestViewService_Diaries_AllTripsWithoutActive(t *testing.T) {
	svc := service.NewViewService(seeded(), staticActive{})

	groups, err := svc.Diaries(context.Background(), "", "nomatch-xyz")

	require.NoError(t, err)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestViewService_TripProgress(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	svc := service.NewViewService(seeded(), staticActive{}, fixedClock(now))

	p, err := svc.TripProgress(context.Background(), "1")

	require.NoError(t, err)
	assert.Equal(t, 92, p.TotalDays)
	assert.Equal(t, 15, p.DaysPassed)

	_, err = svc.TripProgress(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestViewService_TripStats(t *testing.T) {
	svc := service.NewViewService(seeded(), staticActive{})

	s, err := svc.TripStats(context.Background(), "2")

	require.NoError(t, err)
	assert.Equal(t, 1, s.DiaryCount)
	assert.True(t, s.TotalExpense.Equal(decimal.NewFromInt(5500)))
	assert.Equal(t, "JPY", s.Currency)
}

func TestViewService_DiaryContent(t *testing.T) {
	svc := service.NewViewService(seeded(), staticActive{})

	blocks, err := svc.DiaryContent(context.Background(), "4") // 3 paragraphs, 2 photos

	require.NoError(t, err)
	var got []views.BlockKind
	for _, b := range blocks {
		got = append(got, b.Kind)
	}
	assert.Equal(t, []views.BlockKind{
		views.BlockParagraph, views.BlockPhoto,
		views.BlockParagraph, views.BlockPhoto,
		views.BlockParagraph,
	}, got)
}

func TestViewService_DiaryExpenses(t *testing.T) {
	svc := service.NewViewService(seeded(), staticActive{})

	expenses, sum, err := svc.DiaryExpenses(context.Background(), "1")

	require.NoError(t, err)
	assert.Len(t, expenses, 3)
	assert.True(t, sum.Total.Equal(decimal.NewFromInt(100)))

	_, _, err = svc.DiaryExpenses(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestViewService_CurrencyTotals(t *testing.T) {
	svc := service.NewViewService(seeded(), staticActive{id: "1"})

	reports, err := svc.CurrencyTotals(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "USD", reports[0].Currency)
	assert.Equal(t, "$", reports[0].Symbol)
	require.NotNil(t, reports[0].Usage)
	assert.Equal(t, int64(9), reports[0].Usage.Percent)
}

func TestViewService_Budgets(t *testing.T) {
	svc := service.NewViewService(seeded(), staticActive{})

	usage, err := svc.Budgets(context.Background(), "2")

	require.NoError(t, err)
	require.Len(t, usage, 1)
	assert.Equal(t, "JPY", usage[0].Budget.Currency)
	assert.Equal(t, int64(3), usage[0].Percent) // 5500 / 200000
}

func TestViewService_PlacesAndTimeline(t *testing.T) {
	svc := service.NewViewService(seeded(), staticActive{id: "1"})
	ctx := context.Background()

	places, err := svc.Places(ctx, "")
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "Peru", places[0].Country)

	timeline, err := svc.Timeline(ctx, "", "Bolivia", "")
	require.NoError(t, err)
	require.Len(t, timeline, 1)
	assert.Equal(t, domain.DiaryID("2"), timeline[0].ID)

	_, err = svc.Timeline(ctx, "", "", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
