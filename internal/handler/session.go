package handler

import (
	"net/http"

	"github.com/pkordes/wanderlust/internal/domain"
)

// UpdateSessionRequest is the body of PUT /session. Fields left out are
// unchanged; an empty activeTripId returns to the trip list.
type UpdateSessionRequest struct {
	ActiveTripID *string     `json:"activeTripId,omitempty"`
	ActiveTab    *domain.Tab `json:"activeTab,omitempty"`
	CurrentDay   *string     `json:"currentDay,omitempty"`
}

// DragHintResponse is the body of POST /session/drag-hint.
type DragHintResponse struct {
	Show bool `json:"show"`
}

// GetSession handles GET /session.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session.Get(r.Context())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// UpdateSession handles PUT /session. The active trip is applied first so a
// new current day is checked against the new trip.
func (s *Server) UpdateSession(w http.ResponseWriter, r *http.Request) {
	var body UpdateSessionRequest
	if err := decodeJSON(r, &body, false); err != nil {
		s.rejectBody(w, r, err)
		return
	}
	ctx := r.Context()

	if body.ActiveTripID != nil {
		var err error
		if *body.ActiveTripID == "" {
			err = s.session.Deactivate(ctx)
		} else {
			_, err = s.session.Activate(ctx, *body.ActiveTripID)
		}
		if err != nil {
			s.writeError(w, r, err, "trip not found")
			return
		}
	}
	if body.ActiveTab != nil {
		if err := s.session.SetTab(ctx, *body.ActiveTab); err != nil {
			s.writeError(w, r, err, "")
			return
		}
	}
	if body.CurrentDay != nil {
		if err := s.session.SetCurrentDay(ctx, *body.CurrentDay); err != nil {
			s.writeError(w, r, err, "")
			return
		}
	}
	s.GetSession(w, r)
}

// ConsumeDragHint handles POST /session/drag-hint. It answers show=true the
// first time only.
func (s *Server) ConsumeDragHint(w http.ResponseWriter, r *http.Request) {
	show, err := s.session.ConsumeDragHint(r.Context())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, DragHintResponse{Show: show})
}
