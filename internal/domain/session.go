package domain

// Tab names the last-viewed section of the client.
type Tab string

const (
	TabItinerary Tab = "itinerary"
	TabMap       Tab = "map"
	TabExplore   Tab = "recommend"
	TabTranslate Tab = "translate"
)

// Valid reports whether t is a known tab.
func (t Tab) Valid() bool {
	switch t {
	case TabItinerary, TabMap, TabExplore, TabTranslate:
		return true
	}
	return false
}

// Session is the small amount of UI state that survives restarts.
// ActiveTripID is a weak reference: it is cleared when the trip is gone.
type Session struct {
	ActiveTripID    string `json:"activeTripId,omitempty"`
	ActiveTab       Tab    `json:"activeTab"`
	CurrentDay      string `json:"currentDay"`
	HasSeenDragHint bool   `json:"hasSeenDragHint"`
}

// DayInfo is the derived calendar view of one day label.
type DayInfo struct {
	Date         string `json:"date"`
	DateLabel    string `json:"dateLabel"`
	Weekday      string `json:"weekday"`
	WeekdayLabel string `json:"weekdayLabel"`
	Weather      string `json:"weather"`
}
