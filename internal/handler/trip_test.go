package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wanderlust/internal/domain"
	"github.com/pkordes/wanderlust/internal/handler"
)

// ---- POST /trips -----------------------------------------------------------

func TestCreateTrip_201(t *testing.T) {
	var got domain.TripTemplate
	svc := &mockTripServicer{
		create: func(_ context.Context, tpl domain.TripTemplate) (domain.Trip, error) {
			got = tpl
			return tripFixture(), nil
		},
	}

	rec := serve(t, handler.Services{Trips: svc}, http.MethodPost, "/trips", jsonBody(t, map[string]any{
		"destination": "京都",
		"startDate":   "2025-04-01",
		"days":        5,
	}))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.TripTemplate{Destination: "京都", StartDate: "2025-04-01", DayCount: 5}, got)
	assert.Equal(t, "t1", decode[domain.Trip](t, rec).ID)
}

func TestCreateTrip_201_EmptyBodyUsesTemplate(t *testing.T) {
	var got domain.TripTemplate
	svc := &mockTripServicer{
		create: func(_ context.Context, tpl domain.TripTemplate) (domain.Trip, error) {
			got = tpl
			return tripFixture(), nil
		},
	}

	rec := serve(t, handler.Services{Trips: svc}, http.MethodPost, "/trips", nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.TripTemplate{}, got)
}

func TestCreateTrip_422_BadDate(t *testing.T) {
	rec := serve(t, handler.Services{Trips: &mockTripServicer{}}, http.MethodPost, "/trips",
		strings.NewReader(`{"startDate":"10/07/2024"}`))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", errorCode(t, rec))
}

// ---- GET /trips ------------------------------------------------------------

func TestListTrips_Paged(t *testing.T) {
	trips := make([]domain.Trip, 5)
	for i := range trips {
		trips[i] = domain.Trip{ID: fmt.Sprintf("t%d", i+1)}
	}
	svc := &mockTripServicer{list: func(context.Context) []domain.Trip { return trips }}

	rec := serve(t, handler.Services{Trips: svc}, http.MethodGet, "/trips?page=2&limit=2", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[handler.TripList](t, rec)
	require.Len(t, body.Data, 2)
	assert.Equal(t, "t3", body.Data[0].ID)
	assert.Equal(t, handler.Pagination{Page: 2, Limit: 2, Total: 5}, body.Pagination)
}

func TestListTrips_EmptyIsArray(t *testing.T) {
	svc := &mockTripServicer{list: func(context.Context) []domain.Trip { return []domain.Trip{} }}

	rec := serve(t, handler.Services{Trips: svc}, http.MethodGet, "/trips", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestListTrips_422_BadPage(t *testing.T) {
	rec := serve(t, handler.Services{Trips: &mockTripServicer{}}, http.MethodGet, "/trips?page=two", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode[handler.ErrorResponse](t, rec)
	assert.Equal(t, "validation_error", body.Error.Code)
	assert.Contains(t, body.Error.Message, "parameter page")
}

func TestListTrips_422_BadLimit(t *testing.T) {
	rec := serve(t, handler.Services{Trips: &mockTripServicer{}}, http.MethodGet, "/trips?limit=1.5", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[handler.ErrorResponse](t, rec).Error.Message, "parameter limit")
}

// ---- GET /trips/{tripId} ---------------------------------------------------

func TestGetTrip_200(t *testing.T) {
	svc := &mockTripServicer{get: func(_ context.Context, id string) (domain.Trip, error) {
		require.Equal(t, "t1", id)
		return tripFixture(), nil
	}}

	rec := serve(t, handler.Services{Trips: svc}, http.MethodGet, "/trips/t1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[domain.Trip](t, rec)
	assert.Equal(t, []string{"Day 1", "Day 2", "Day 3"}, got.Dates)
}

func TestGetTrip_404(t *testing.T) {
	svc := &mockTripServicer{get: func(context.Context, string) (domain.Trip, error) {
		return domain.Trip{}, fmt.Errorf("service.TripStore.Get: %w", domain.ErrNotFound)
	}}

	rec := serve(t, handler.Services{Trips: svc}, http.MethodGet, "/trips/nope", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))
}

func TestGetTrip_500_LogsUnknownError(t *testing.T) {
	svc := &mockTripServicer{get: func(context.Context, string) (domain.Trip, error) {
		return domain.Trip{}, errors.New("boom")
	}}

	rec := serve(t, handler.Services{Trips: svc}, http.MethodGet, "/trips/t1", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

// ---- PATCH /trips/{tripId} -------------------------------------------------

func TestUpdateTrip_RenameAndMove(t *testing.T) {
	trip := tripFixture()
	svc := &mockTripServicer{
		get: func(context.Context, string) (domain.Trip, error) { return trip, nil },
		rename: func(_ context.Context, _ string, title string) (domain.Trip, error) {
			trip.Destination = title
			return trip, nil
		},
		setStartDate: func(_ context.Context, _ string, date string) (domain.Trip, error) {
			trip.StartDate = date
			return trip, nil
		},
	}

	rec := serve(t, handler.Services{Trips: svc}, http.MethodPatch, "/trips/t1",
		strings.NewReader(`{"destination":"北海道","startDate":"2025-12-24"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[domain.Trip](t, rec)
	assert.Equal(t, "北海道", got.Destination)
	assert.Equal(t, "2025-12-24", got.StartDate)
}

func TestUpdateTrip_422_EmptyTitle(t *testing.T) {
	svc := &mockTripServicer{
		get: func(context.Context, string) (domain.Trip, error) { return tripFixture(), nil },
		rename: func(context.Context, string, string) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("%w: destination is required", domain.ErrValidation)
		},
	}

	rec := serve(t, handler.Services{Trips: svc}, http.MethodPatch, "/trips/t1", strings.NewReader(`{"destination":""}`))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "destination is required", decode[handler.ErrorResponse](t, rec).Error.Message)
}

func TestUpdateTrip_422_NothingToUpdate(t *testing.T) {
	rec := serve(t, handler.Services{Trips: &mockTripServicer{}}, http.MethodPatch, "/trips/t1", strings.NewReader(`{}`))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUpdateTrip_404(t *testing.T) {
	svc := &mockTripServicer{get: func(context.Context, string) (domain.Trip, error) {
		return domain.Trip{}, domain.ErrNotFound
	}}

	rec := serve(t, handler.Services{Trips: svc}, http.MethodPatch, "/trips/nope", strings.NewReader(`{"destination":"x"}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- DELETE /trips/{tripId} ------------------------------------------------

func TestDeleteTrip_409_WithoutConfirm(t *testing.T) {
	called := false
	svc := &mockTripServicer{delete: func(context.Context, string) error { called = true; return nil }}

	rec := serve(t, handler.Services{Trips: svc}, http.MethodDelete, "/trips/t1", nil)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "confirmation_required", errorCode(t, rec))
	assert.False(t, called)
}

func TestDeleteTrip_409_UnparsableConfirm(t *testing.T) {
	called := false
	svc := &mockTripServicer{delete: func(context.Context, string) error { called = true; return nil }}

	rec := serve(t, handler.Services{Trips: svc}, http.MethodDelete, "/trips/t1?confirm=yes", nil)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, called)
}

func TestDeleteTrip_204_ClearsActive(t *testing.T) {
	var deleted, cleared string
	trips := &mockTripServicer{delete: func(_ context.Context, id string) error { deleted = id; return nil }}
	session := &mockSessionServicer{clearIfActive: func(_ context.Context, id string) error { cleared = id; return nil }}

	rec := serve(t, handler.Services{Trips: trips, Session: session}, http.MethodDelete, "/trips/t1?confirm=true", nil)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "t1", deleted)
	assert.Equal(t, "t1", cleared)
}
