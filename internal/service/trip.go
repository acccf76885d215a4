// Package service contains the business logic for the Wanderlust planner.
// Services validate inputs, enforce business rules, and orchestrate
// persistence. No storage details live here; services depend on the
// repo.KV interface, not a backend.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/wanderlust/internal/domain"
	"github.com/pkordes/wanderlust/internal/itinerary"
	"github.com/pkordes/wanderlust/internal/repo"
)

// TripStore owns the canonical, ordered list of trips. Every successful
// mutation writes the whole collection to the KV store under repo.KeyTrips
// before it becomes visible, so a failed write leaves the store unchanged.
//
// All methods are safe for concurrent use; each mutation runs
// read-compute-replace-persist as one step under the store's lock.
type TripStore struct {
	mu     sync.Mutex
	kv     repo.KV
	trips  []domain.Trip
	engine *itinerary.Engine
	now    func() time.Time
	newID  func() string
}

// TripStoreOption customises a TripStore at construction.
type TripStoreOption func(*TripStore)

// WithClock sets the clock used for the blank template's start date.
func WithClock(now func() time.Time) TripStoreOption {
	return func(s *TripStore) { s.now = now }
}

// WithTripIDs sets the trip id generator.
func WithTripIDs(gen func() string) TripStoreOption {
	return func(s *TripStore) { s.newID = gen }
}

// WithEngine sets the itinerary engine used to normalize incoming trips.
func WithEngine(e *itinerary.Engine) TripStoreOption {
	return func(s *TripStore) { s.engine = e }
}

func newTripStore(kv repo.KV, opts []TripStoreOption) *TripStore {
	s := &TripStore{
		kv:     kv,
		engine: itinerary.New(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenTripStore loads the trip collection from kv. When nothing is stored
// yet it starts from domain.SeedTrips and persists them.
// Returns domain.ErrPersistenceRead if the stored collection cannot be decoded.
func OpenTripStore(ctx context.Context, kv repo.KV, opts ...TripStoreOption) (*TripStore, error) {
	s := newTripStore(kv, opts)

	raw, err := kv.Get(ctx, repo.KeyTrips)
	if errors.Is(err, domain.ErrNotFound) {
		if err := s.seed(ctx); err != nil {
			return nil, fmt.Errorf("service.OpenTripStore: %w", err)
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("service.OpenTripStore: %w", err)
	}

	var trips []domain.Trip
	if err := json.Unmarshal(raw, &trips); err != nil {
		return nil, fmt.Errorf("service.OpenTripStore: %w: %v", domain.ErrPersistenceRead, err)
	}
	for i := range trips {
		trips[i] = s.engine.Normalize(trips[i])
	}
	s.trips = trips
	return s, nil
}

// OpenTripStoreWithFallback is OpenTripStore for process start: an unreadable
// collection is logged and replaced by the default seed instead of failing.
// Backend errors (e.g. the database is down) are still returned.
func OpenTripStoreWithFallback(ctx context.Context, kv repo.KV, log *slog.Logger, opts ...TripStoreOption) (*TripStore, error) {
	s, err := OpenTripStore(ctx, kv, opts...)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, domain.ErrPersistenceRead) {
		return nil, err
	}

	log.WarnContext(ctx, "stored trips unreadable, restoring default seed", "error", err)
	s = newTripStore(kv, opts)
	if err := s.seed(ctx); err != nil {
		return nil, fmt.Errorf("service.OpenTripStoreWithFallback: %w", err)
	}
	return s, nil
}

func (s *TripStore) seed(ctx context.Context) error {
	seed := domain.SeedTrips()
	if err := s.persist(ctx, seed); err != nil {
		return err
	}
	s.trips = seed
	return nil
}

// List returns all trips in insertion order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripStore) List(ctx context.Context) []domain.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Trip, len(s.trips))
	for i, t := range s.trips {
		out[i] = t.Clone()
	}
	return out
}

// Get returns the trip with the given id.
// Returns domain.ErrNotFound if no such trip exists.
func (s *TripStore) Get(ctx context.Context, id string) (domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(id); i >= 0 {
		return s.trips[i].Clone(), nil
	}
	return domain.Trip{}, fmt.Errorf("service.TripStore.Get %q: %w", id, domain.ErrNotFound)
}

// Create builds a trip from tpl with a fresh id, appends it and persists.
// Empty template fields take the blank-template defaults.
// Returns domain.ErrValidation if tpl.StartDate is set but not YYYY-MM-DD.
func (s *TripStore) Create(ctx context.Context, tpl domain.TripTemplate) (domain.Trip, error) {
	if tpl.StartDate != "" {
		if _, err := domain.ParseDate(tpl.StartDate); err != nil {
			return domain.Trip{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	trip := domain.NewTrip(s.newID(), tpl, s.now())
	next := append(s.snapshot(), trip)
	if err := s.commit(ctx, next); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripStore.Create: %w", err)
	}
	return trip.Clone(), nil
}

// Delete removes the trip with the given id. A missing id is a no-op.
// Clearing the active-trip reference is the caller's job.
func (s *TripStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return nil
	}
	next := s.snapshot()
	next = append(next[:i], next[i+1:]...)
	if err := s.commit(ctx, next); err != nil {
		return fmt.Errorf("service.TripStore.Delete: %w", err)
	}
	return nil
}

// Update applies fn to the trip with the given id, stores the result in
// place and persists. The trip id is preserved whatever fn returns.
//
// A missing id is a silent no-op: Update returns the zero Trip and a nil
// error. Callers that need to tell the difference check with Get first, or
// test the returned trip's ID.
// An error from fn aborts the update with no state change.
func (s *TripStore) Update(ctx context.Context, id string, fn func(domain.Trip) (domain.Trip, error)) (domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return domain.Trip{}, nil
	}
	updated, err := fn(s.trips[i].Clone())
	if err != nil {
		return domain.Trip{}, err
	}
	updated.ID = id

	next := s.snapshot()
	next[i] = updated
	if err := s.commit(ctx, next); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripStore.Update: %w", err)
	}
	return updated.Clone(), nil
}

// Rename replaces only the trip's destination title.
// Returns domain.ErrValidation for an empty title.
func (s *TripStore) Rename(ctx context.Context, id, title string) (domain.Trip, error) {
	if strings.TrimSpace(title) == "" {
		return domain.Trip{}, fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	return s.Update(ctx, id, func(t domain.Trip) (domain.Trip, error) {
		t.Destination = title
		return t, nil
	})
}

// SetStartDate replaces only the trip's start date.
// Returns domain.ErrValidation if date is not YYYY-MM-DD.
func (s *TripStore) SetStartDate(ctx context.Context, id, date string) (domain.Trip, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return domain.Trip{}, err
	}
	return s.Update(ctx, id, func(t domain.Trip) (domain.Trip, error) {
		t.StartDate = date
		return t, nil
	})
}

// Replace swaps the whole collection for trips (a full restore). Trips are
// normalized; missing or duplicate ids are replaced with fresh ones.
// Returns domain.ErrValidation, with the collection unchanged, if any trip
// fails domain.ValidateTrip.
func (s *TripStore) Replace(ctx context.Context, trips []domain.Trip) ([]domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Trip, 0, len(trips))
	seen := make(map[string]bool, len(trips))
	for i, t := range trips {
		t = s.engine.Normalize(t)
		if err := domain.ValidateTrip(t); err != nil {
			return nil, fmt.Errorf("service.TripStore.Replace: trip %d: %w", i+1, err)
		}
		if t.ID == "" || seen[t.ID] {
			t.ID = s.newID()
		}
		seen[t.ID] = true
		next = append(next, t)
	}
	if err := s.commit(ctx, next); err != nil {
		return nil, fmt.Errorf("service.TripStore.Replace: %w", err)
	}
	out := make([]domain.Trip, len(next))
	for i, t := range next {
		out[i] = t.Clone()
	}
	return out, nil
}

// Append adds trip as a new entry with a fresh id, whatever id it carried.
// Returns domain.ErrValidation, with nothing stored, if the trip fails
// domain.ValidateTrip.
func (s *TripStore) Append(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip = s.engine.Normalize(trip)
	if err := domain.ValidateTrip(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripStore.Append: %w", err)
	}
	trip.ID = s.newID()
	next := append(s.snapshot(), trip)
	if err := s.commit(ctx, next); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripStore.Append: %w", err)
	}
	return trip.Clone(), nil
}

// index returns the position of id or -1. Callers hold s.mu.
func (s *TripStore) index(id string) int {
	for i, t := range s.trips {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// snapshot returns a copy of the slice header contents. Callers hold s.mu.
func (s *TripStore) snapshot() []domain.Trip {
	return append(make([]domain.Trip, 0, len(s.trips)+1), s.trips...)
}

// commit persists next and, only if that succeeds, makes it current.
func (s *TripStore) commit(ctx context.Context, next []domain.Trip) error {
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.trips = next
	return nil
}

func (s *TripStore) persist(ctx context.Context, trips []domain.Trip) error {
	if trips == nil {
		trips = []domain.Trip{}
	}
	data, err := json.Marshal(trips)
	if err != nil {
		return fmt.Errorf("encode trips: %w", err)
	}
	if err := s.kv.Put(ctx, repo.KeyTrips, data); err != nil {
		return fmt.Errorf("persist trips: %w", err)
	}
	return nil
}
