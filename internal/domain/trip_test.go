package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wanderlust/internal/domain"
)

func TestDayNumber(t *testing.T) {
	n, err := domain.DayNumber("Day 12")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	for _, bad := range []string{"Day 0", "Day -1", "day 1", "Day", "Day x", ""} {
		_, err := domain.DayNumber(bad)
		assert.ErrorIs(t, err, domain.ErrValidation, bad)
	}
}

func TestValidateTrip(t *testing.T) {
	good := domain.NewTrip("t1", domain.TripTemplate{StartDate: "2024-07-10"}, time.Time{})
	require.NoError(t, domain.ValidateTrip(good))

	badDate := good.Clone()
	badDate.StartDate = "2024/07/10"
	assert.ErrorIs(t, domain.ValidateTrip(badDate), domain.ErrValidation)

	badLabel := good.Clone()
	badLabel.Dates = append(badLabel.Dates, "Arrival")
	assert.ErrorIs(t, domain.ValidateTrip(badLabel), domain.ErrValidation)
}

func TestNewTrip_Defaults(t *testing.T) {
	now := time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC)

	trip := domain.NewTrip("t1", domain.TripTemplate{}, now)

	assert.Equal(t, "t1", trip.ID)
	assert.Equal(t, domain.DefaultDestination, trip.Destination)
	assert.Equal(t, "2026-03-09", trip.StartDate)
	assert.Equal(t, []string{"Day 1", "Day 2", "Day 3"}, trip.Dates)
	for _, d := range trip.Dates {
		assert.NotNil(t, trip.Days[d])
		assert.Contains(t, trip.Notes, d)
	}
}

func TestSeedTrips(t *testing.T) {
	seed := domain.SeedTrips()

	require.Len(t, seed, 1)
	assert.Equal(t, domain.SeedTripID, seed[0].ID)
	assert.Equal(t, "2024-07-10", seed[0].StartDate)
	assert.Len(t, seed[0].Dates, 3)
}

func TestTrip_CloneIsDeep(t *testing.T) {
	orig := domain.NewTrip("t1", domain.TripTemplate{StartDate: "2025-01-01"}, time.Time{})
	orig.Days["Day 1"] = []domain.Item{{ID: "a", Title: "a"}}

	c := orig.Clone()
	c.Days["Day 1"][0].Title = "changed"
	c.Notes["Day 1"] = "changed"
	c.Dates[0] = "changed"

	assert.Equal(t, "a", orig.Days["Day 1"][0].Title)
	assert.Equal(t, "", orig.Notes["Day 1"])
	assert.Equal(t, "Day 1", orig.Dates[0])
}

func TestPaginationParams_Window(t *testing.T) {
	two, five := 2, 5

	lo, hi := domain.NewPaginationParams(&two, &five).Window(12)
	assert.Equal(t, 5, lo)
	assert.Equal(t, 10, hi)

	lo, hi = domain.NewPaginationParams(nil, nil).Window(3)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 3, hi)

	far := 9
	lo, hi = domain.NewPaginationParams(&far, &five).Window(12)
	assert.Equal(t, lo, hi)
}
