package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/wanderlust/internal/domain"
	"github.com/pkordes/wanderlust/internal/service"
)

// ResizeDaysRequest is the body of PUT /trips/{tripId}/days.
type ResizeDaysRequest struct {
	Days int `json:"days"`
}

// NoteRequest is the body of PUT /trips/{tripId}/days/{day}/note.
type NoteRequest struct {
	Note string `json:"note"`
}

// SummaryResponse is the body of GET .../summary.
type SummaryResponse struct {
	Text string `json:"text"`
}

// ResizeDays handles PUT /trips/{tripId}/days. Counts below 1 are clamped.
func (s *Server) ResizeDays(w http.ResponseWriter, r *http.Request) {
	var body ResizeDaysRequest
	if err := decodeJSON(r, &body, false); err != nil {
		s.rejectBody(w, r, err)
		return
	}
	trip, err := s.itinerary.ResizeDays(r.Context(), chi.URLParam(r, "tripId"), body.Days)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// GetDay handles GET /trips/{tripId}/days/{day}.
func (s *Server) GetDay(w http.ResponseWriter, r *http.Request) {
	view, err := s.itinerary.Day(r.Context(), chi.URLParam(r, "tripId"), chi.URLParam(r, "day"))
	if err != nil {
		s.writeError(w, r, err, "trip or day not found")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SetNote handles PUT /trips/{tripId}/days/{day}/note.
func (s *Server) SetNote(w http.ResponseWriter, r *http.Request) {
	var body NoteRequest
	if err := decodeJSON(r, &body, false); err != nil {
		s.rejectBody(w, r, err)
		return
	}
	if err := s.itinerary.SetNote(r.Context(), chi.URLParam(r, "tripId"), chi.URLParam(r, "day"), body.Note); err != nil {
		s.writeError(w, r, err, "trip or day not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSummary handles GET /trips/{tripId}/days/{day}/summary.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	text, err := s.itinerary.Summary(r.Context(), chi.URLParam(r, "tripId"), chi.URLParam(r, "day"))
	if err != nil {
		s.writeError(w, r, err, "trip or day not found")
		return
	}
	writeJSON(w, http.StatusOK, SummaryResponse{Text: text})
}

// GetRoute handles GET /trips/{tripId}/days/{day}/route.
// Optional query: lat and lng for the traveller's position, item to route
// straight to one item of the day.
func (s *Server) GetRoute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	origin, err := parseOrigin(q.Get("lat"), q.Get("lng"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	view, err := s.itinerary.Day(r.Context(), chi.URLParam(r, "tripId"), chi.URLParam(r, "day"))
	if err != nil {
		s.writeError(w, r, err, "trip or day not found")
		return
	}

	var focused *domain.Item
	if id := q.Get("item"); id != "" {
		for i := range view.Items {
			if view.Items[i].ID == id {
				focused = &view.Items[i]
				break
			}
		}
		if focused == nil {
			writeJSON(w, http.StatusNotFound, notFoundBody("item not found"))
			return
		}
	}
	writeJSON(w, http.StatusOK, service.DayRoute(origin, view.Items, focused))
}

// parseOrigin reads an optional coordinate pair. Both or neither must be set.
func parseOrigin(lat, lng string) (*service.LatLng, error) {
	if lat == "" && lng == "" {
		return nil, nil
	}
	la, errLat := strconv.ParseFloat(lat, 64)
	ln, errLng := strconv.ParseFloat(lng, 64)
	if errLat != nil || errLng != nil || la < -90 || la > 90 || ln < -180 || ln > 180 {
		return nil, errBadOrigin
	}
	return &service.LatLng{Lat: la, Lng: ln}, nil
}
