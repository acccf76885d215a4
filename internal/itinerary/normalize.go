package itinerary

import (
	"slices"

	"github.com/pkordes/wanderlust/internal/domain"
)

// Normalize repairs a trip that came from outside (an import or an older
// stored format) so that Dates, the keys of Days and the keys of Notes are
// the same set again:
//   - Dates is de-duplicated; when empty it is rebuilt from the "Day N" keys
//     of Days and Notes in numeric order, or the default three days.
//   - Every label gets a non-nil item list and a note.
//   - Keys that are not in Dates are dropped.
//   - Items without an id get one; unknown categories become misc.
//
// Item order within a day is left untouched.
func (e *Engine) Normalize(trip domain.Trip) domain.Trip {
	out := trip.Clone()

	dates := make([]string, 0, len(out.Dates))
	for _, d := range out.Dates {
		if !slices.Contains(dates, d) {
			dates = append(dates, d)
		}
	}
	if len(dates) == 0 {
		dates = labelsFromKeys(out)
	}
	if len(dates) == 0 {
		for i := 1; i <= domain.DefaultDayCount; i++ {
			dates = append(dates, domain.DayLabel(i))
		}
	}

	days := make(map[string][]domain.Item, len(dates))
	notes := make(map[string]string, len(dates))
	for _, label := range dates {
		items := out.Days[label]
		if items == nil {
			items = []domain.Item{}
		}
		for i := range items {
			if items[i].ID == "" {
				items[i].ID = e.newID()
			}
			if !items[i].Category.Valid() {
				items[i].Category = domain.CategoryMisc
			}
		}
		days[label] = items
		notes[label] = out.Notes[label]
	}

	out.Dates = dates
	out.Days = days
	out.Notes = notes
	return out
}

// labelsFromKeys collects the valid day labels used as keys in Days or
// Notes, ordered by day number.
func labelsFromKeys(t domain.Trip) []string {
	seen := map[int]bool{}
	for k := range t.Days {
		if n, err := domain.DayNumber(k); err == nil {
			seen[n] = true
		}
	}
	for k := range t.Notes {
		if n, err := domain.DayNumber(k); err == nil {
			seen[n] = true
		}
	}
	nums := make([]int, 0, len(seen))
	for n := range seen {
		nums = append(nums, n)
	}
	slices.Sort(nums)

	labels := make([]string, len(nums))
	for i, n := range nums {
		labels[i] = domain.DayLabel(n)
	}
	return labels
}
