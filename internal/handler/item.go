package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/wanderlust/internal/domain"
)

var errBadOrigin = errors.New("lat and lng must both be valid coordinates")

// ReorderRequest is the body of POST .../reorder: move the item at From to To.
type ReorderRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

// ItemsResponse wraps a day's items after a mutation that may re-order them.
type ItemsResponse struct {
	Items []domain.Item `json:"items"`
}

// AddItem handles POST /trips/{tripId}/days/{day}/items.
// The body is an item without an id; category defaults to misc.
func (s *Server) AddItem(w http.ResponseWriter, r *http.Request) {
	var draft domain.Item
	if err := decodeJSON(r, &draft, false); err != nil {
		s.rejectBody(w, r, err)
		return
	}
	item, err := s.itinerary.AddItem(r.Context(), chi.URLParam(r, "tripId"), chi.URLParam(r, "day"), draft)
	if err != nil {
		s.writeError(w, r, err, "trip or day not found")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// AddItemFromPlace handles POST .../items/from-place/{placeId}.
func (s *Server) AddItemFromPlace(w http.ResponseWriter, r *http.Request) {
	place, err := s.catalog.Get(r.Context(), chi.URLParam(r, "placeId"))
	if err != nil {
		s.writeError(w, r, err, "place not found")
		return
	}
	item, err := s.itinerary.AddFromPlace(r.Context(), chi.URLParam(r, "tripId"), chi.URLParam(r, "day"), place)
	if err != nil {
		s.writeError(w, r, err, "trip or day not found")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// EditItem handles PUT .../items/{itemId}. Fields left out of the body keep
// their value. An unknown item id leaves the day unchanged.
func (s *Server) EditItem(w http.ResponseWriter, r *http.Request) {
	var patch domain.ItemPatch
	if err := decodeJSON(r, &patch, false); err != nil {
		s.rejectBody(w, r, err)
		return
	}
	items, err := s.itinerary.EditItem(r.Context(),
		chi.URLParam(r, "tripId"), chi.URLParam(r, "day"), chi.URLParam(r, "itemId"), patch)
	if err != nil {
		s.writeError(w, r, err, "trip or day not found")
		return
	}
	writeJSON(w, http.StatusOK, ItemsResponse{Items: items})
}

// DeleteItem handles DELETE .../items/{itemId}.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	err := s.itinerary.DeleteItem(r.Context(),
		chi.URLParam(r, "tripId"), chi.URLParam(r, "day"), chi.URLParam(r, "itemId"))
	if err != nil {
		s.writeError(w, r, err, "trip or day not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteItemAt handles DELETE .../positions/{index}.
func (s *Server) DeleteItemAt(w http.ResponseWriter, r *http.Request) {
	index, err := pathInt(r, "index")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	if err := s.itinerary.DeleteItemAt(r.Context(), chi.URLParam(r, "tripId"), chi.URLParam(r, "day"), index); err != nil {
		s.writeError(w, r, err, "trip or day not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderItems handles POST .../reorder.
func (s *Server) ReorderItems(w http.ResponseWriter, r *http.Request) {
	var body ReorderRequest
	if err := decodeJSON(r, &body, false); err != nil {
		s.rejectBody(w, r, err)
		return
	}
	if body.From == nil || body.To == nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("from and to are required"))
		return
	}
	items, err := s.itinerary.Reorder(r.Context(), chi.URLParam(r, "tripId"), chi.URLParam(r, "day"), *body.From, *body.To)
	if err != nil {
		s.writeError(w, r, err, "trip or day not found")
		return
	}
	writeJSON(w, http.StatusOK, ItemsResponse{Items: items})
}
