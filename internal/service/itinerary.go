package service

import (
	"context"
	"fmt"

	"github.com/pkordes/wanderlust/internal/domain"
	"github.com/pkordes/wanderlust/internal/itinerary"
)

// DayView is everything the itinerary screen renders for one day.
type DayView struct {
	Day   string         `json:"day"`
	Info  domain.DayInfo `json:"info"`
	Items []domain.Item  `json:"items"`
	Cost  int            `json:"cost"`
	Note  string         `json:"note"`
}

// ItineraryService applies itinerary rules to stored trips. Each call is one
// TripStore.Update, so the rule and the persist happen atomically.
type ItineraryService struct {
	trips   *TripStore
	session *SessionService
	engine  *itinerary.Engine
}

// NewItineraryService constructs an ItineraryService. session may be nil, in
// which case no current-day repair happens after a resize.
func NewItineraryService(trips *TripStore, session *SessionService, engine *itinerary.Engine) *ItineraryService {
	return &ItineraryService{trips: trips, session: session, engine: engine}
}

// mutate runs fn through TripStore.Update and turns the store's silent miss
// into domain.ErrNotFound for API callers.
func (s *ItineraryService) mutate(ctx context.Context, op, tripID string, fn func(domain.Trip) (domain.Trip, error)) (domain.Trip, error) {
	trip, err := s.trips.Update(ctx, tripID, fn)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.%s: %w", op, err)
	}
	if trip.ID == "" {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.%s: trip %q: %w", op, tripID, domain.ErrNotFound)
	}
	return trip, nil
}

// ResizeDays sets the trip to n days and moves the session's current day
// back to the first label when it was dropped.
func (s *ItineraryService) ResizeDays(ctx context.Context, tripID string, n int) (domain.Trip, error) {
	trip, err := s.mutate(ctx, "ResizeDays", tripID, func(t domain.Trip) (domain.Trip, error) {
		return itinerary.ResizeDays(t, n), nil
	})
	if err != nil {
		return domain.Trip{}, err
	}
	if s.session != nil {
		if err := s.session.RepairCurrentDay(ctx, trip); err != nil {
			return domain.Trip{}, fmt.Errorf("service.ItineraryService.ResizeDays: %w", err)
		}
	}
	return trip, nil
}

// AddItem appends draft to day and returns the stored item with its new id.
func (s *ItineraryService) AddItem(ctx context.Context, tripID, day string, draft domain.Item) (domain.Item, error) {
	var added domain.Item
	_, err := s.mutate(ctx, "AddItem", tripID, func(t domain.Trip) (domain.Trip, error) {
		out, item, err := s.engine.AddItem(t, day, draft)
		added = item
		return out, err
	})
	if err != nil {
		return domain.Item{}, err
	}
	return added, nil
}

// AddFromPlace adds a catalog place to day as a pre-filled item.
func (s *ItineraryService) AddFromPlace(ctx context.Context, tripID, day string, place domain.Place) (domain.Item, error) {
	return s.AddItem(ctx, tripID, day, itinerary.DraftFromPlace(place))
}

// EditItem applies patch to the item with id in day.
func (s *ItineraryService) EditItem(ctx context.Context, tripID, day, id string, patch domain.ItemPatch) ([]domain.Item, error) {
	trip, err := s.mutate(ctx, "EditItem", tripID, func(t domain.Trip) (domain.Trip, error) {
		return s.engine.EditItem(t, day, id, patch)
	})
	if err != nil {
		return nil, err
	}
	return trip.Days[day], nil
}

// DeleteItem removes the item with id from day.
func (s *ItineraryService) DeleteItem(ctx context.Context, tripID, day, id string) error {
	_, err := s.mutate(ctx, "DeleteItem", tripID, func(t domain.Trip) (domain.Trip, error) {
		return itinerary.DeleteItem(t, day, id)
	})
	return err
}

// DeleteItemAt removes the item at index from day.
func (s *ItineraryService) DeleteItemAt(ctx context.Context, tripID, day string, index int) error {
	_, err := s.mutate(ctx, "DeleteItemAt", tripID, func(t domain.Trip) (domain.Trip, error) {
		return itinerary.DeleteItemAt(t, day, index)
	})
	return err
}

// Reorder moves the item at from to to within day.
func (s *ItineraryService) Reorder(ctx context.Context, tripID, day string, from, to int) ([]domain.Item, error) {
	trip, err := s.mutate(ctx, "Reorder", tripID, func(t domain.Trip) (domain.Trip, error) {
		return itinerary.Reorder(t, day, from, to)
	})
	if err != nil {
		return nil, err
	}
	return trip.Days[day], nil
}

// SetNote replaces the note of day.
func (s *ItineraryService) SetNote(ctx context.Context, tripID, day, note string) error {
	_, err := s.mutate(ctx, "SetNote", tripID, func(t domain.Trip) (domain.Trip, error) {
		return itinerary.SetNote(t, day, note)
	})
	return err
}

// Day returns the derived view of one day.
func (s *ItineraryService) Day(ctx context.Context, tripID, day string) (DayView, error) {
	trip, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return DayView{}, fmt.Errorf("service.ItineraryService.Day: %w", err)
	}
	if !trip.HasDay(day) {
		return DayView{}, fmt.Errorf("service.ItineraryService.Day: day %q: %w", day, domain.ErrNotFound)
	}
	info, err := itinerary.DayInfo(trip, day)
	if err != nil {
		return DayView{}, fmt.Errorf("service.ItineraryService.Day: %w", err)
	}
	return DayView{
		Day:   day,
		Info:  info,
		Items: trip.Days[day],
		Cost:  itinerary.DailyCost(trip, day),
		Note:  trip.Notes[day],
	}, nil
}

// Summary returns the shareable text for one day.
func (s *ItineraryService) Summary(ctx context.Context, tripID, day string) (string, error) {
	trip, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return "", fmt.Errorf("service.ItineraryService.Summary: %w", err)
	}
	text, err := itinerary.Summary(trip, day)
	if err != nil {
		return "", fmt.Errorf("service.ItineraryService.Summary: %w", err)
	}
	return text, nil
}
