package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/wanderlust/internal/domain"
)

// CreateTripRequest is the optional body of POST /trips. Omitted fields take
// the blank-template defaults.
type CreateTripRequest struct {
	Destination string              `json:"destination"`
	StartDate   *openapi_types.Date `json:"startDate,omitempty"`
	Days        int                 `json:"days"`
}

// UpdateTripRequest is the body of PATCH /trips/{tripId}. Only the fields
// present are changed.
type UpdateTripRequest struct {
	Destination *string             `json:"destination,omitempty"`
	StartDate   *openapi_types.Date `json:"startDate,omitempty"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripList is the body of GET /trips.
type TripList struct {
	Data       []domain.Trip `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body CreateTripRequest
	if err := decodeJSON(r, &body, true); err != nil {
		s.rejectBody(w, r, err)
		return
	}

	tpl := domain.TripTemplate{Destination: body.Destination, DayCount: body.Days}
	if body.StartDate != nil {
		tpl.StartDate = body.StartDate.Format(domain.DateLayout)
	}
	created, err := s.trips.Create(r.Context(), tpl)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	page, err := optionalInt(r, "page")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	limit, err := optionalInt(r, "limit")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	params := domain.NewPaginationParams(page, limit)
	trips := s.trips.List(r.Context())
	lo, hi := params.Window(len(trips))
	writeJSON(w, http.StatusOK, TripList{
		Data: trips[lo:hi],
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: len(trips),
		},
	})
}

// GetTrip handles GET /trips/{tripId}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.Get(r.Context(), chi.URLParam(r, "tripId"))
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PATCH /trips/{tripId}: rename and/or move the start date.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tripId")
	var body UpdateTripRequest
	if err := decodeJSON(r, &body, false); err != nil {
		s.rejectBody(w, r, err)
		return
	}
	if body.Destination == nil && body.StartDate == nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("nothing to update"))
		return
	}

	trip, err := s.trips.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	if body.Destination != nil {
		if trip, err = s.trips.Rename(r.Context(), id, *body.Destination); err != nil {
			s.writeError(w, r, err, "trip not found")
			return
		}
	}
	if body.StartDate != nil {
		if trip, err = s.trips.SetStartDate(r.Context(), id, body.StartDate.Format(domain.DateLayout)); err != nil {
			s.writeError(w, r, err, "trip not found")
			return
		}
	}
	// The store reports a trip deleted mid-request as an empty result.
	if trip.ID == "" {
		writeJSON(w, http.StatusNotFound, notFoundBody("trip not found"))
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// DeleteTrip handles DELETE /trips/{tripId}?confirm=true.
// Deleting is destructive, so an unconfirmed request gets 409.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tripId")
	if !confirmed(r) {
		s.writeError(w, r, domain.ErrConfirmationRequired, "")
		return
	}
	if err := s.trips.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	if err := s.session.ClearIfActive(r.Context(), id); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- parameter helpers ------------------------------------------------------

// optionalInt binds an optional form-style integer query parameter.
func optionalInt(r *http.Request, name string) (*int, error) {
	var n *int
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &n); err != nil {
		return nil, &paramError{name: name, err: err}
	}
	return n, nil
}

// pathInt binds a required simple-style integer path parameter.
func pathInt(r *http.Request, name string) (int, error) {
	var n int
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &n,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return 0, &paramError{name: name, err: err}
	}
	return n, nil
}

// confirmed reports whether ?confirm=true was sent. Anything unparsable
// counts as not confirmed.
func confirmed(r *http.Request) bool {
	var ok *bool
	if err := runtime.BindQueryParameter("form", true, false, "confirm", r.URL.Query(), &ok); err != nil || ok == nil {
		return false
	}
	return *ok
}

// paramError reports a parameter the binder could not convert.
type paramError struct {
	name string
	err  error
}

func (e *paramError) Error() string {
	return "invalid format for parameter " + e.name + ": " + e.err.Error()
}

func (e *paramError) Unwrap() error { return e.err }
