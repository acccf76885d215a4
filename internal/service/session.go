package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/pkordes/wanderlust/internal/domain"
	"github.com/pkordes/wanderlust/internal/repo"
)

// SessionService keeps the last-viewed UI state: the active trip, the tab
// and the current day, plus the one-time drag hint flag. Each field lives
// under its own KV key.
//
// The active trip is a weak reference. Reads clear it when the trip has
// been deleted, and reset the current day when the trip no longer has it.
type SessionService struct {
	kv    repo.KV
	trips *TripStore
}

// NewSessionService constructs a SessionService over kv, checking trip
// references against trips.
func NewSessionService(kv repo.KV, trips *TripStore) *SessionService {
	return &SessionService{kv: kv, trips: trips}
}

// Get returns the current session with dangling references repaired.
func (s *SessionService) Get(ctx context.Context) (domain.Session, error) {
	sess := domain.Session{ActiveTab: domain.TabItinerary, CurrentDay: domain.DayLabel(1)}

	active, err := s.read(ctx, repo.KeyActiveTripID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.SessionService.Get: %w", err)
	}
	if tab, err := s.read(ctx, repo.KeyActiveTab); err != nil {
		return domain.Session{}, fmt.Errorf("service.SessionService.Get: %w", err)
	} else if domain.Tab(tab).Valid() {
		sess.ActiveTab = domain.Tab(tab)
	}
	if day, err := s.read(ctx, repo.KeyCurrentDay); err != nil {
		return domain.Session{}, fmt.Errorf("service.SessionService.Get: %w", err)
	} else if day != "" {
		sess.CurrentDay = day
	}
	hint, err := s.read(ctx, repo.KeyHasSeenDragHint)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.SessionService.Get: %w", err)
	}
	sess.HasSeenDragHint, _ = strconv.ParseBool(hint)

	if active == "" {
		return sess, nil
	}
	trip, err := s.trips.Get(ctx, active)
	if errors.Is(err, domain.ErrNotFound) {
		if err := s.kv.Delete(ctx, repo.KeyActiveTripID); err != nil {
			return domain.Session{}, fmt.Errorf("service.SessionService.Get: %w", err)
		}
		return sess, nil
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.SessionService.Get: %w", err)
	}
	sess.ActiveTripID = active
	if !trip.HasDay(sess.CurrentDay) {
		sess.CurrentDay = trip.FirstDay()
		if err := s.write(ctx, repo.KeyCurrentDay, sess.CurrentDay); err != nil {
			return domain.Session{}, fmt.Errorf("service.SessionService.Get: %w", err)
		}
	}
	return sess, nil
}

// Activate makes id the active trip. The current day falls back to the
// trip's first day when the trip does not have it.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *SessionService) Activate(ctx context.Context, id string) (domain.Session, error) {
	if _, err := s.trips.Get(ctx, id); err != nil {
		return domain.Session{}, fmt.Errorf("service.SessionService.Activate: %w", err)
	}
	if err := s.write(ctx, repo.KeyActiveTripID, id); err != nil {
		return domain.Session{}, fmt.Errorf("service.SessionService.Activate: %w", err)
	}
	return s.Get(ctx)
}

// Deactivate clears the active trip (back to the trip list).
func (s *SessionService) Deactivate(ctx context.Context) error {
	if err := s.kv.Delete(ctx, repo.KeyActiveTripID); err != nil {
		return fmt.Errorf("service.SessionService.Deactivate: %w", err)
	}
	return nil
}

// ClearIfActive clears the active trip if it is id. Call after deleting a trip.
func (s *SessionService) ClearIfActive(ctx context.Context, id string) error {
	active, err := s.read(ctx, repo.KeyActiveTripID)
	if err != nil {
		return fmt.Errorf("service.SessionService.ClearIfActive: %w", err)
	}
	if active != id {
		return nil
	}
	return s.Deactivate(ctx)
}

// SetCurrentDay records day as the current day.
// Returns domain.ErrValidation if a trip is active and has no such day, or
// if day is not a "Day N" label.
func (s *SessionService) SetCurrentDay(ctx context.Context, day string) error {
	if _, err := domain.DayNumber(day); err != nil {
		return err
	}
	sess, err := s.Get(ctx)
	if err != nil {
		return err
	}
	if sess.ActiveTripID != "" {
		trip, err := s.trips.Get(ctx, sess.ActiveTripID)
		if err != nil {
			return fmt.Errorf("service.SessionService.SetCurrentDay: %w", err)
		}
		if !trip.HasDay(day) {
			return fmt.Errorf("%w: trip has no %q", domain.ErrValidation, day)
		}
	}
	if err := s.write(ctx, repo.KeyCurrentDay, day); err != nil {
		return fmt.Errorf("service.SessionService.SetCurrentDay: %w", err)
	}
	return nil
}

// SetTab records the last-viewed tab.
// Returns domain.ErrValidation for an unknown tab.
func (s *SessionService) SetTab(ctx context.Context, tab domain.Tab) error {
	if !tab.Valid() {
		return fmt.Errorf("%w: unknown tab %q", domain.ErrValidation, tab)
	}
	if err := s.write(ctx, repo.KeyActiveTab, string(tab)); err != nil {
		return fmt.Errorf("service.SessionService.SetTab: %w", err)
	}
	return nil
}

// ConsumeDragHint reports whether the drag hint should be shown. It returns
// true once and false on every later call.
func (s *SessionService) ConsumeDragHint(ctx context.Context) (bool, error) {
	seen, err := s.read(ctx, repo.KeyHasSeenDragHint)
	if err != nil {
		return false, fmt.Errorf("service.SessionService.ConsumeDragHint: %w", err)
	}
	if ok, _ := strconv.ParseBool(seen); ok {
		return false, nil
	}
	if err := s.write(ctx, repo.KeyHasSeenDragHint, "true"); err != nil {
		return false, fmt.Errorf("service.SessionService.ConsumeDragHint: %w", err)
	}
	return true, nil
}

// RepairCurrentDay resets the current day to the trip's first day when trip
// is the active trip and no longer has the current day (e.g. after
// shrinking its day count).
func (s *SessionService) RepairCurrentDay(ctx context.Context, trip domain.Trip) error {
	active, err := s.read(ctx, repo.KeyActiveTripID)
	if err != nil {
		return fmt.Errorf("service.SessionService.RepairCurrentDay: %w", err)
	}
	if active != trip.ID {
		return nil
	}
	day, err := s.read(ctx, repo.KeyCurrentDay)
	if err != nil {
		return fmt.Errorf("service.SessionService.RepairCurrentDay: %w", err)
	}
	if trip.HasDay(day) {
		return nil
	}
	if err := s.write(ctx, repo.KeyCurrentDay, trip.FirstDay()); err != nil {
		return fmt.Errorf("service.SessionService.RepairCurrentDay: %w", err)
	}
	return nil
}

// read returns the string under key, or "" when the key is absent.
func (s *SessionService) read(ctx context.Context, key string) (string, error) {
	v, err := s.kv.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *SessionService) write(ctx context.Context, key, value string) error {
	return s.kv.Put(ctx, key, []byte(value))
}
