package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wanderlust/internal/domain"
	"github.com/pkordes/wanderlust/internal/handler"
)

func TestAddItem_201(t *testing.T) {
	var got domain.Item
	svc := &mockItineraryServicer{addItem: func(_ context.Context, tripID, day string, draft domain.Item) (domain.Item, error) {
		require.Equal(t, "t1", tripID)
		require.Equal(t, "Day 2", day)
		got = draft
		draft.ID = "new"
		return draft, nil
	}}

	rec := serve(t, handler.Services{Itinerary: svc}, http.MethodPost, "/trips/t1/days/Day%202/items",
		strings.NewReader(`{"time":"09:30","title":"Aquarium","category":"fun","cost":2180}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.Cost("2180"), got.Cost, "numeric cost is accepted")
	assert.Equal(t, "new", decode[domain.Item](t, rec).ID)
}

func TestAddItem_422_Validation(t *testing.T) {
	svc := &mockItineraryServicer{addItem: func(context.Context, string, string, domain.Item) (domain.Item, error) {
		return domain.Item{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}}

	rec := serve(t, handler.Services{Itinerary: svc}, http.MethodPost, "/trips/t1/days/Day%201/items", strings.NewReader(`{"title":""}`))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "title is required", decode[handler.ErrorResponse](t, rec).Error.Message)
}

func TestAddItem_422_MalformedJSON(t *testing.T) {
	rec := serve(t, handler.Services{Itinerary: &mockItineraryServicer{}}, http.MethodPost, "/trips/t1/days/Day%201/items", strings.NewReader(`{"title":`))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAddItemFromPlace_201(t *testing.T) {
	catalog := &mockCatalogServicer{get: func(_ context.Context, id string) (domain.Place, error) {
		return domain.Place{ID: id, Title: "萬座毛"}, nil
	}}
	var gotPlace domain.Place
	itin := &mockItineraryServicer{addFromPlace: func(_ context.Context, _, _ string, p domain.Place) (domain.Item, error) {
		gotPlace = p
		return domain.Item{ID: "x", Title: p.Title, Time: "14:00"}, nil
	}}

	rec := serve(t, handler.Services{Itinerary: itin, Catalog: catalog}, http.MethodPost,
		"/trips/t1/days/Day%201/items/from-place/ok_04", nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "ok_04", gotPlace.ID)
}

func TestAddItemFromPlace_404_UnknownPlace(t *testing.T) {
	catalog := &mockCatalogServicer{get: func(context.Context, string) (domain.Place, error) {
		return domain.Place{}, domain.ErrNotFound
	}}

	rec := serve(t, handler.Services{Catalog: catalog}, http.MethodPost, "/trips/t1/days/Day%201/items/from-place/zz", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "place not found", decode[handler.ErrorResponse](t, rec).Error.Message)
}

func TestEditItem_200(t *testing.T) {
	var gotPatch domain.ItemPatch
	svc := &mockItineraryServicer{editItem: func(_ context.Context, _, _, id string, p domain.ItemPatch) ([]domain.Item, error) {
		require.Equal(t, "a", id)
		gotPatch = p
		return []domain.Item{{ID: "a", Title: "Renamed"}}, nil
	}}

	rec := serve(t, handler.Services{Itinerary: svc}, http.MethodPut, "/trips/t1/days/Day%201/items/a",
		strings.NewReader(`{"title":"Renamed"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotPatch.Title)
	assert.Equal(t, "Renamed", *gotPatch.Title)
	assert.Nil(t, gotPatch.Time, "absent fields stay nil")
	assert.Len(t, decode[handler.ItemsResponse](t, rec).Items, 1)
}

func TestDeleteItem_204(t *testing.T) {
	svc := &mockItineraryServicer{deleteItem: func(_ context.Context, _, _, id string) error {
		require.Equal(t, "a", id)
		return nil
	}}

	rec := serve(t, handler.Services{Itinerary: svc}, http.MethodDelete, "/trips/t1/days/Day%201/items/a", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteItemAt_204(t *testing.T) {
	var gotIndex int
	svc := &mockItineraryServicer{deleteItemAt: func(_ context.Context, _, _ string, index int) error {
		gotIndex = index
		return nil
	}}

	rec := serve(t, handler.Services{Itinerary: svc}, http.MethodDelete, "/trips/t1/days/Day%201/positions/2", nil)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 2, gotIndex)
}

func TestDeleteItemAt_422_NotANumber(t *testing.T) {
	rec := serve(t, handler.Services{Itinerary: &mockItineraryServicer{}}, http.MethodDelete, "/trips/t1/days/Day%201/positions/first", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode[handler.ErrorResponse](t, rec)
	assert.Equal(t, "validation_error", body.Error.Code)
	assert.Contains(t, body.Error.Message, "parameter index")
}

func TestReorderItems_200(t *testing.T) {
	svc := &mockItineraryServicer{reorder: func(_ context.Context, _, _ string, from, to int) ([]domain.Item, error) {
		require.Equal(t, 0, from)
		require.Equal(t, 2, to)
		return []domain.Item{{ID: "b"}, {ID: "c"}, {ID: "a"}}, nil
	}}

	rec := serve(t, handler.Services{Itinerary: svc}, http.MethodPost, "/trips/t1/days/Day%201/reorder",
		strings.NewReader(`{"from":0,"to":2}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a", decode[handler.ItemsResponse](t, rec).Items[2].ID)
}

func TestReorderItems_422_MissingIndex(t *testing.T) {
	rec := serve(t, handler.Services{Itinerary: &mockItineraryServicer{}}, http.MethodPost, "/trips/t1/days/Day%201/reorder",
		strings.NewReader(`{"from":0}`))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestReorderItems_422_OutOfRange(t *testing.T) {
	svc := &mockItineraryServicer{reorder: func(context.Context, string, string, int, int) ([]domain.Item, error) {
		return nil, fmt.Errorf("%w: reorder indices out of range", domain.ErrValidation)
	}}

	rec := serve(t, handler.Services{Itinerary: svc}, http.MethodPost, "/trips/t1/days/Day%201/reorder",
		strings.NewReader(`{"from":0,"to":9}`))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
