package domain

// ExportRow is a single row in the flat CSV export.
// It is a denormalized view: one row per item, with trip and day fields
// repeated for every item on that day. Days with no items yield one row with
// empty item fields so every day is represented.
type ExportRow struct {
	// Trip fields: repeated for every row of the trip.
	TripID          string
	TripDestination string
	TripStartDate   string

	// Day fields.
	Day     string
	Date    string // "2006-01-02", empty when the start date is malformed
	DayNote string

	// Item fields: zero values when the day has no items.
	ItemTime     string
	ItemTitle    string
	ItemLocation string
	ItemCategory Category
	ItemCost     int
	ItemNotes    string
}
