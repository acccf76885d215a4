// Package handler implements the HTTP handlers for the Wanderlust API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, day.go, item.go, ...) but share the same Server struct so
// they can access its dependencies. Routes wires them into a chi router.
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/wanderlust/internal/domain"
	"github.com/pkordes/wanderlust/internal/service"
)

// TripServicer defines the trip collection operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching storage or the service layer.
type TripServicer interface {
	List(ctx context.Context) []domain.Trip
	Get(ctx context.Context, id string) (domain.Trip, error)
	Create(ctx context.Context, tpl domain.TripTemplate) (domain.Trip, error)
	Delete(ctx context.Context, id string) error
	Rename(ctx context.Context, id, title string) (domain.Trip, error)
	SetStartDate(ctx context.Context, id, date string) (domain.Trip, error)
}

// ItineraryServicer defines the per-day itinerary operations.
type ItineraryServicer interface {
	ResizeDays(ctx context.Context, tripID string, n int) (domain.Trip, error)
	AddItem(ctx context.Context, tripID, day string, draft domain.Item) (domain.Item, error)
	AddFromPlace(ctx context.Context, tripID, day string, place domain.Place) (domain.Item, error)
	EditItem(ctx context.Context, tripID, day, id string, patch domain.ItemPatch) ([]domain.Item, error)
	DeleteItem(ctx context.Context, tripID, day, id string) error
	DeleteItemAt(ctx context.Context, tripID, day string, index int) error
	Reorder(ctx context.Context, tripID, day string, from, to int) ([]domain.Item, error)
	SetNote(ctx context.Context, tripID, day, note string) error
	Day(ctx context.Context, tripID, day string) (service.DayView, error)
	Summary(ctx context.Context, tripID, day string) (string, error)
}

// ExportServicer defines backup, share and restore.
type ExportServicer interface {
	ExportTrip(ctx context.Context, id string) ([]byte, error)
	ExportAll(ctx context.Context) ([]byte, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	Import(ctx context.Context, data []byte, confirm bool) (service.ImportResult, error)
}

// CatalogServicer defines place lookups for the explore view.
type CatalogServicer interface {
	Search(ctx context.Context, keyword, category string) ([]domain.Place, error)
	Get(ctx context.Context, id string) (domain.Place, error)
}

// SessionServicer defines the persisted UI state operations.
type SessionServicer interface {
	Get(ctx context.Context) (domain.Session, error)
	Activate(ctx context.Context, id string) (domain.Session, error)
	Deactivate(ctx context.Context) error
	ClearIfActive(ctx context.Context, id string) error
	SetCurrentDay(ctx context.Context, day string) error
	SetTab(ctx context.Context, tab domain.Tab) error
	ConsumeDragHint(ctx context.Context) (bool, error)
}

// Services bundles the dependencies of Server. Nil fields are allowed in
// tests that only exercise other routes.
type Services struct {
	Trips      TripServicer
	Itinerary  ItineraryServicer
	Export     ExportServicer
	Catalog    CatalogServicer
	Session    SessionServicer
	Translator service.Translator
	// OpenAPI is served verbatim at /openapi.yaml when non-empty.
	OpenAPI []byte
}

// Server holds the handler dependencies.
type Server struct {
	trips      TripServicer
	itinerary  ItineraryServicer
	export     ExportServicer
	catalog    CatalogServicer
	session    SessionServicer
	translator service.Translator
	openAPI    []byte
	log        *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		trips:      svc.Trips,
		itinerary:  svc.Itinerary,
		export:     svc.Export,
		catalog:    svc.Catalog,
		session:    svc.Session,
		translator: svc.Translator,
		openAPI:    svc.OpenAPI,
		log:        log,
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(Services{}, nil)
}

// Routes returns the API routes. Cross-cutting middleware (request id,
// logging, CORS, body limits) is applied by the caller.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)
		r.Route("/{tripId}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Patch("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Get("/export", s.ExportTrip)
			r.Put("/days", s.ResizeDays)
			r.Route("/days/{day}", func(r chi.Router) {
				r.Get("/", s.GetDay)
				r.Put("/note", s.SetNote)
				r.Get("/summary", s.GetSummary)
				r.Get("/route", s.GetRoute)
				r.Post("/reorder", s.ReorderItems)
				r.Post("/items", s.AddItem)
				r.Post("/items/from-place/{placeId}", s.AddItemFromPlace)
				r.Put("/items/{itemId}", s.EditItem)
				r.Delete("/items/{itemId}", s.DeleteItem)
				r.Delete("/positions/{index}", s.DeleteItemAt)
			})
		})
	})

	r.Get("/export", s.ExportAll)
	r.Post("/import", s.Import)
	r.Get("/places", s.SearchPlaces)
	r.Get("/translate", s.Translate)
	r.Get("/session", s.GetSession)
	r.Put("/session", s.UpdateSession)
	r.Post("/session/drag-hint", s.ConsumeDragHint)

	return r
}
