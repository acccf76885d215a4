// Package itinerary implements the mutation and derivation rules for a single
// trip: day resizing, item add/edit/delete, drag reorder, cost aggregation,
// and calendar labels. Every function here is pure: it takes a domain.Trip
// and returns a new one without touching the input or doing any I/O.
// Persistence is the service layer's job.
package itinerary

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/wanderlust/internal/domain"
)

// Engine applies itinerary rules. The only state it carries is the item id
// generator, which tests replace for deterministic ids.
type Engine struct {
	newID func() string
}

// New returns an Engine that assigns UUIDv7 item ids: a millisecond
// timestamp prefix followed by random bits.
func New() *Engine {
	return &Engine{newID: newItemID}
}

// NewWithIDs returns an Engine that takes item ids from gen.
func NewWithIDs(gen func() string) *Engine {
	return &Engine{newID: gen}
}

func newItemID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// ResizeDays sets the trip to exactly n days labelled "Day 1".."Day n".
// n is clamped to at least 1. Days that already existed keep their items and
// note; new days start empty; days beyond n are dropped with their data.
func ResizeDays(trip domain.Trip, n int) domain.Trip {
	if n < 1 {
		n = 1
	}
	out := trip.Clone()
	out.Dates = make([]string, 0, n)
	days := make(map[string][]domain.Item, n)
	notes := make(map[string]string, n)
	for i := 1; i <= n; i++ {
		label := domain.DayLabel(i)
		out.Dates = append(out.Dates, label)

		items, ok := out.Days[label]
		if !ok || items == nil {
			items = []domain.Item{}
		}
		days[label] = items
		notes[label] = out.Notes[label]
	}
	out.Days = days
	out.Notes = notes
	return out
}

// AddItem validates draft, gives it a fresh id, appends it to day and
// re-sorts the day by time. Items with equal times keep arrival order, so
// the new item lands after existing ties.
// Returns domain.ErrValidation for an invalid draft and domain.ErrNotFound
// when day is not one of the trip's labels.
func (e *Engine) AddItem(trip domain.Trip, day string, draft domain.Item) (domain.Trip, domain.Item, error) {
	if !trip.HasDay(day) {
		return trip, domain.Item{}, fmt.Errorf("itinerary.AddItem: day %q: %w", day, domain.ErrNotFound)
	}
	if draft.Category == "" {
		draft.Category = domain.CategoryMisc
	}
	if err := domain.ValidateItem(draft); err != nil {
		return trip, domain.Item{}, err
	}

	draft.ID = e.newID()
	out := trip.Clone()
	list := append(out.Days[day], draft)
	SortByTime(list)
	out.Days[day] = list
	return out, draft, nil
}

// EditItem replaces the item with the given id by the patched copy of it and
// re-sorts the day. An id that is not in the day leaves its items as they
// are (the day is still re-sorted).
// Only the fields the patch sets are validated; an item imported with a
// loose time can still be renamed.
// Returns domain.ErrValidation if a patched field breaks ValidateItem rules.
func (e *Engine) EditItem(trip domain.Trip, day, id string, patch domain.ItemPatch) (domain.Trip, error) {
	if !trip.HasDay(day) {
		return trip, fmt.Errorf("itinerary.EditItem: day %q: %w", day, domain.ErrNotFound)
	}
	if err := domain.ValidatePatch(patch); err != nil {
		return trip, err
	}

	out := trip.Clone()
	list := out.Days[day]
	for i, item := range list {
		if item.ID == id {
			list[i] = patch.Apply(item)
		}
	}
	SortByTime(list)
	out.Days[day] = list
	return out, nil
}

// DeleteItem removes the item with the given id from day.
// A missing id is a no-op.
func DeleteItem(trip domain.Trip, day, id string) (domain.Trip, error) {
	if !trip.HasDay(day) {
		return trip, fmt.Errorf("itinerary.DeleteItem: day %q: %w", day, domain.ErrNotFound)
	}
	out := trip.Clone()
	out.Days[day] = slices.DeleteFunc(out.Days[day], func(it domain.Item) bool {
		return it.ID == id
	})
	return out, nil
}

// DeleteItemAt removes the item at position index in day.
// An index outside the list is a no-op.
func DeleteItemAt(trip domain.Trip, day string, index int) (domain.Trip, error) {
	if !trip.HasDay(day) {
		return trip, fmt.Errorf("itinerary.DeleteItemAt: day %q: %w", day, domain.ErrNotFound)
	}
	out := trip.Clone()
	list := out.Days[day]
	if index < 0 || index >= len(list) {
		return out, nil
	}
	out.Days[day] = slices.Delete(list, index, index+1)
	return out, nil
}

// Reorder moves the item at from to position to within day. The time sort
// is deliberately not applied: the manual order stands until the next add or
// edit on that day sorts it again.
// Returns domain.ErrValidation if either index is outside [0, len).
func Reorder(trip domain.Trip, day string, from, to int) (domain.Trip, error) {
	if !trip.HasDay(day) {
		return trip, fmt.Errorf("itinerary.Reorder: day %q: %w", day, domain.ErrNotFound)
	}
	n := len(trip.Days[day])
	if from < 0 || from >= n || to < 0 || to >= n {
		return trip, fmt.Errorf("%w: reorder indices %d to %d out of range for %d items", domain.ErrValidation, from, to, n)
	}

	out := trip.Clone()
	list := out.Days[day]
	moved := list[from]
	list = slices.Delete(list, from, from+1)
	list = slices.Insert(list, to, moved)
	out.Days[day] = list
	return out, nil
}

// SetNote replaces the free-text note of day.
func SetNote(trip domain.Trip, day, note string) (domain.Trip, error) {
	if !trip.HasDay(day) {
		return trip, fmt.Errorf("itinerary.SetNote: day %q: %w", day, domain.ErrNotFound)
	}
	out := trip.Clone()
	out.Notes[day] = note
	return out, nil
}

// SortByTime stable-sorts items by their HH:MM time string.
func SortByTime(items []domain.Item) {
	slices.SortStableFunc(items, func(a, b domain.Item) int {
		return strings.Compare(a.Time, b.Time)
	})
}

// DraftFromPlace pre-fills an item from a catalog entry the way the explore
// view does: 14:00, the place title as both title and location, the place's
// category, no cost, and its description as the note.
func DraftFromPlace(p domain.Place) domain.Item {
	cat := p.Category
	if !cat.Valid() {
		cat = domain.CategoryMisc
	}
	return domain.Item{
		Time:     "14:00",
		Title:    p.Title,
		Location: p.Title,
		Category: cat,
		Notes:    p.Description,
	}
}
