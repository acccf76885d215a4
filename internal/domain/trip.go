// Package domain contains the core data types for the Wanderlust planner.
// This package has zero external dependencies and is imported by every other
// internal package (repo, itinerary, service, handler).
package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the persisted form of Trip.StartDate.
const DateLayout = "2006-01-02"

// dayPrefix is the fixed prefix of every day label ("Day 1", "Day 2", ...).
const dayPrefix = "Day "

// Trip is one planned journey. Dates holds the ordered day labels; Days and
// Notes are keyed by the same labels and always cover exactly that set.
type Trip struct {
	ID          string            `json:"id"`
	Destination string            `json:"destination"`
	StartDate   string            `json:"startDate"`
	Dates       []string          `json:"dates"`
	Days        map[string][]Item `json:"days"`
	Notes       map[string]string `json:"notes"`
}

// Clone returns a deep copy of t so callers can mutate the result without
// touching the original's slices or maps.
func (t Trip) Clone() Trip {
	out := t
	out.Dates = append([]string(nil), t.Dates...)
	out.Days = make(map[string][]Item, len(t.Days))
	for k, items := range t.Days {
		out.Days[k] = append([]Item{}, items...)
	}
	out.Notes = make(map[string]string, len(t.Notes))
	for k, v := range t.Notes {
		out.Notes[k] = v
	}
	return out
}

// HasDay reports whether label is one of the trip's day labels.
func (t Trip) HasDay(label string) bool {
	for _, d := range t.Dates {
		if d == label {
			return true
		}
	}
	return false
}

// FirstDay returns the first day label, or "Day 1" for a trip with no days.
func (t Trip) FirstDay() string {
	if len(t.Dates) == 0 {
		return DayLabel(1)
	}
	return t.Dates[0]
}

// Start parses StartDate. Returns ErrValidation if it is not YYYY-MM-DD.
func (t Trip) Start() (time.Time, error) {
	return ParseDate(t.StartDate)
}

// ParseDate parses a YYYY-MM-DD string in UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: start date must be YYYY-MM-DD, got %q", ErrValidation, s)
	}
	return d, nil
}

// DayLabel returns the label for the n-th day (1-based).
func DayLabel(n int) string {
	return dayPrefix + strconv.Itoa(n)
}

// DayNumber parses a "Day N" label and returns N.
// Returns ErrValidation for anything that is not a positive day ordinal.
func DayNumber(label string) (int, error) {
	rest, ok := strings.CutPrefix(label, dayPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: day label %q must look like \"Day N\"", ErrValidation, label)
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: day label %q must look like \"Day N\"", ErrValidation, label)
	}
	return n, nil
}

// ValidateTrip checks the fields every derived view depends on: StartDate
// must be YYYY-MM-DD and every label in Dates must be "Day N".
// Returns ErrValidation naming the first offending field.
func ValidateTrip(t Trip) error {
	if _, err := ParseDate(t.StartDate); err != nil {
		return err
	}
	for _, label := range t.Dates {
		if _, err := DayNumber(label); err != nil {
			return err
		}
	}
	return nil
}

// TripTemplate carries the fields a new trip is created from.
type TripTemplate struct {
	Destination string
	StartDate   string
	DayCount    int
}

// DefaultDestination is the title given to trips created from the blank template.
const DefaultDestination = "沖繩 Okinawa Trip"

// DefaultDayCount is the number of days in a freshly created trip.
const DefaultDayCount = 3

// NewTripTemplate returns the blank template: the default destination, a
// start date of today, and three empty days.
func NewTripTemplate(now time.Time) TripTemplate {
	return TripTemplate{
		Destination: DefaultDestination,
		StartDate:   now.Format(DateLayout),
		DayCount:    DefaultDayCount,
	}
}

// NewTrip builds a Trip with the given id from tpl. Empty template fields
// fall back to the blank-template defaults.
func NewTrip(id string, tpl TripTemplate, now time.Time) Trip {
	def := NewTripTemplate(now)
	if strings.TrimSpace(tpl.Destination) == "" {
		tpl.Destination = def.Destination
	}
	if tpl.StartDate == "" {
		tpl.StartDate = def.StartDate
	}
	if tpl.DayCount < 1 {
		tpl.DayCount = def.DayCount
	}

	t := Trip{
		ID:          id,
		Destination: tpl.Destination,
		StartDate:   tpl.StartDate,
		Dates:       make([]string, 0, tpl.DayCount),
		Days:        make(map[string][]Item, tpl.DayCount),
		Notes:       make(map[string]string, tpl.DayCount),
	}
	for i := 1; i <= tpl.DayCount; i++ {
		label := DayLabel(i)
		t.Dates = append(t.Dates, label)
		t.Days[label] = []Item{}
		t.Notes[label] = ""
	}
	return t
}

// SeedTripID is the id of the trip every empty store starts with.
const SeedTripID = "default_okinawa"

// SeedTrips returns the default collection used when nothing is stored yet
// or the stored collection is unreadable.
func SeedTrips() []Trip {
	return []Trip{
		NewTrip(SeedTripID, TripTemplate{
			Destination: "沖繩自駕遊",
			StartDate:   "2024-07-10",
			DayCount:    DefaultDayCount,
		}, time.Time{}),
	}
}
