package handler

import (
	"net/http"

	"github.com/pkordes/wanderlust/internal/domain"
	"github.com/pkordes/wanderlust/internal/service"
)

// PlaceList is the body of GET /places.
type PlaceList struct {
	Keyword string         `json:"keyword"`
	Data    []domain.Place `json:"data"`
}

// TranslateResponse is the body of GET /translate.
type TranslateResponse struct {
	service.Translation
	// URL opens the full translator with the same text.
	URL string `json:"url"`
}

// SearchPlaces handles GET /places?q=&category=.
// Without q, ?tripId= pre-fills the keyword from that trip's destination.
func (s *Server) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	keyword := q.Get("q")
	if !q.Has("q") && q.Get("tripId") != "" {
		trip, err := s.trips.Get(r.Context(), q.Get("tripId"))
		if err != nil {
			s.writeError(w, r, err, "trip not found")
			return
		}
		keyword = service.SuggestKeyword(trip.Destination)
	}

	places, err := s.catalog.Search(r.Context(), keyword, q.Get("category"))
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, PlaceList{Keyword: keyword, Data: places})
}

// Translate handles GET /translate?text=.
func (s *Server) Translate(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	tr, err := s.translator.Translate(r.Context(), text)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, TranslateResponse{Translation: tr, URL: service.TranslateURL(text)})
}
