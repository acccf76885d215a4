package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pkordes/wanderlust/internal/domain"
	"github.com/pkordes/wanderlust/internal/itinerary"
)

// ImportMode says which branch an import took.
type ImportMode string

const (
	// ImportRestore replaced the whole collection.
	ImportRestore ImportMode = "restore"
	// ImportAppend added one trip as a new entry.
	ImportAppend ImportMode = "append"
)

// ImportResult reports what an import changed.
type ImportResult struct {
	Mode  ImportMode    `json:"mode"`
	Trips []domain.Trip `json:"trips"`
}

// ExportService serializes trips for backup and sharing, and restores them.
type ExportService struct {
	trips   *TripStore
	session *SessionService
}

// NewExportService constructs an ExportService. session may be nil, in which
// case imports leave the active trip alone.
func NewExportService(trips *TripStore, session *SessionService) *ExportService {
	return &ExportService{trips: trips, session: session}
}

// ExportTrip returns one trip as indented JSON (the single-trip share format).
func (s *ExportService) ExportTrip(ctx context.Context, id string) ([]byte, error) {
	trip, err := s.trips.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.ExportTrip: %w", err)
	}
	data, err := json.MarshalIndent(trip, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.ExportTrip: %w", err)
	}
	return data, nil
}

// ExportAll returns every trip as an indented JSON array (the full backup format).
func (s *ExportService) ExportAll(ctx context.Context) ([]byte, error) {
	data, err := json.MarshalIndent(s.trips.List(ctx), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.ExportAll: %w", err)
	}
	return data, nil
}

// Rows returns one ExportRow per item across all trips.
// Days with no items contribute one row with empty item fields.
func (s *ExportService) Rows(ctx context.Context) []domain.ExportRow {
	var rows []domain.ExportRow
	for _, trip := range s.trips.List(ctx) {
		for _, day := range trip.Dates {
			base := domain.ExportRow{
				TripID:          trip.ID,
				TripDestination: trip.Destination,
				TripStartDate:   trip.StartDate,
				Day:             day,
				DayNote:         trip.Notes[day],
			}
			if info, err := itinerary.DayInfo(trip, day); err == nil {
				base.Date = info.Date
			}

			items := trip.Days[day]
			if len(items) == 0 {
				rows = append(rows, base)
				continue
			}
			for _, item := range items {
				row := base
				row.ItemTime = item.Time
				row.ItemTitle = item.Title
				row.ItemLocation = item.Location
				row.ItemCategory = item.Category
				row.ItemCost = item.Cost.Value()
				row.ItemNotes = item.Notes
				rows = append(rows, row)
			}
		}
	}
	if rows == nil {
		rows = []domain.ExportRow{}
	}
	return rows
}

var csvHeader = []string{
	"trip_id", "destination", "start_date", "day", "date", "day_note",
	"time", "title", "location", "category", "cost", "notes",
}

// ExportCSV writes Rows as CSV with a header line.
func (s *ExportService) ExportCSV(ctx context.Context, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("service.ExportService.ExportCSV: %w", err)
	}
	for _, r := range s.Rows(ctx) {
		cost := ""
		if r.ItemTitle != "" {
			cost = strconv.Itoa(r.ItemCost)
		}
		rec := []string{
			r.TripID, r.TripDestination, r.TripStartDate, r.Day, r.Date, r.DayNote,
			r.ItemTime, r.ItemTitle, r.ItemLocation, string(r.ItemCategory), cost, r.ItemNotes,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("service.ExportService.ExportCSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("service.ExportService.ExportCSV: %w", err)
	}
	return nil
}

// Import restores data produced by ExportAll or ExportTrip.
//
// A JSON array replaces the whole collection, but only when confirm is true;
// otherwise domain.ErrConfirmationRequired is returned and nothing changes.
// A JSON object with "destination" and "days" is added as a new trip with a
// fresh id and becomes the active trip.
// Malformed JSON or any other shape returns domain.ErrValidation.
func (s *ExportService) Import(ctx context.Context, data []byte, confirm bool) (ImportResult, error) {
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return ImportResult{}, fmt.Errorf("%w: import is not valid JSON", domain.ErrValidation)
	}

	switch data[0] {
	case '[':
		return s.importAll(ctx, data, confirm)
	case '{':
		return s.importOne(ctx, data)
	}
	return ImportResult{}, fmt.Errorf("%w: import must be a trip or a list of trips", domain.ErrValidation)
}

func (s *ExportService) importAll(ctx context.Context, data []byte, confirm bool) (ImportResult, error) {
	var trips []domain.Trip
	if err := json.Unmarshal(data, &trips); err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if !confirm {
		return ImportResult{}, fmt.Errorf("service.ExportService.Import: replacing %d trips: %w", len(trips), domain.ErrConfirmationRequired)
	}

	restored, err := s.trips.Replace(ctx, trips)
	if err != nil {
		return ImportResult{}, fmt.Errorf("service.ExportService.Import: %w", err)
	}
	if s.session != nil {
		if err := s.session.Deactivate(ctx); err != nil {
			return ImportResult{}, fmt.Errorf("service.ExportService.Import: %w", err)
		}
	}
	return ImportResult{Mode: ImportRestore, Trips: restored}, nil
}

func (s *ExportService) importOne(ctx context.Context, data []byte) (ImportResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	_, hasDest := fields["destination"]
	_, hasDays := fields["days"]
	if !hasDest || !hasDays {
		return ImportResult{}, fmt.Errorf("%w: trip must have destination and days", domain.ErrValidation)
	}

	var trip domain.Trip
	if err := json.Unmarshal(data, &trip); err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	added, err := s.trips.Append(ctx, trip)
	if err != nil {
		return ImportResult{}, fmt.Errorf("service.ExportService.Import: %w", err)
	}
	if s.session != nil {
		if _, err := s.session.Activate(ctx, added.ID); err != nil {
			return ImportResult{}, fmt.Errorf("service.ExportService.Import: %w", err)
		}
		if err := s.session.SetCurrentDay(ctx, added.FirstDay()); err != nil {
			return ImportResult{}, fmt.Errorf("service.ExportService.Import: %w", err)
		}
	}
	return ImportResult{Mode: ImportAppend, Trips: []domain.Trip{added}}, nil
}
