package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/wanderlust/internal/domain"
	"github.com/pkordes/wanderlust/internal/handler"
	"github.com/pkordes/wanderlust/internal/service"
)

// Hand-written test doubles for the handler's servicer interfaces.
// Each method is a function field; set only the ones your test needs.

type mockTripServicer struct {
	list         func(ctx context.Context) []domain.Trip
	get          func(ctx context.Context, id string) (domain.Trip, error)
	create       func(ctx context.Context, tpl domain.TripTemplate) (domain.Trip, error)
	delete       func(ctx context.Context, id string) error
	rename       func(ctx context.Context, id, title string) (domain.Trip, error)
	setStartDate func(ctx context.Context, id, date string) (domain.Trip, error)
}

func (m *mockTripServicer) List(ctx context.Context) []domain.Trip { return m.list(ctx) }
func (m *mockTripServicer) Get(ctx context.Context, id string) (domain.Trip, error) {
	return m.get(ctx, id)
}
func (m *mockTripServicer) Create(ctx context.Context, tpl domain.TripTemplate) (domain.Trip, error) {
	return m.create(ctx, tpl)
}
func (m *mockTripServicer) Delete(ctx context.Context, id string) error { return m.delete(ctx, id) }
func (m *mockTripServicer) Rename(ctx context.Context, id, title string) (domain.Trip, error) {
	return m.rename(ctx, id, title)
}
func (m *mockTripServicer) SetStartDate(ctx context.Context, id, date string) (domain.Trip, error) {
	return m.setStartDate(ctx, id, date)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockItineraryServicer struct {
	resizeDays   func(ctx context.Context, tripID string, n int) (domain.Trip, error)
	addItem      func(ctx context.Context, tripID, day string, draft domain.Item) (domain.Item, error)
	addFromPlace func(ctx context.Context, tripID, day string, place domain.Place) (domain.Item, error)
	editItem     func(ctx context.Context, tripID, day, id string, patch domain.ItemPatch) ([]domain.Item, error)
	deleteItem   func(ctx context.Context, tripID, day, id string) error
	deleteItemAt func(ctx context.Context, tripID, day string, index int) error
	reorder      func(ctx context.Context, tripID, day string, from, to int) ([]domain.Item, error)
	setNote      func(ctx context.Context, tripID, day, note string) error
	day          func(ctx context.Context, tripID, day string) (service.DayView, error)
	summary      func(ctx context.Context, tripID, day string) (string, error)
}

func (m *mockItineraryServicer) ResizeDays(ctx context.Context, tripID string, n int) (domain.Trip, error) {
	return m.resizeDays(ctx, tripID, n)
}
func (m *mockItineraryServicer) AddItem(ctx context.Context, tripID, day string, draft domain.Item) (domain.Item, error) {
	return m.addItem(ctx, tripID, day, draft)
}
func (m *mockItineraryServicer) AddFromPlace(ctx context.Context, tripID, day string, place domain.Place) (domain.Item, error) {
	return m.addFromPlace(ctx, tripID, day, place)
}
func (m *mockItineraryServicer) EditItem(ctx context.Context, tripID, day, id string, patch domain.ItemPatch) ([]domain.Item, error) {
	return m.editItem(ctx, tripID, day, id, patch)
}
func (m *mockItineraryServicer) DeleteItem(ctx context.Context, tripID, day, id string) error {
	return m.deleteItem(ctx, tripID, day, id)
}
func (m *mockItineraryServicer) DeleteItemAt(ctx context.Context, tripID, day string, index int) error {
	return m.deleteItemAt(ctx, tripID, day, index)
}
func (m *mockItineraryServicer) Reorder(ctx context.Context, tripID, day string, from, to int) ([]domain.Item, error) {
	return m.reorder(ctx, tripID, day, from, to)
}
func (m *mockItineraryServicer) SetNote(ctx context.Context, tripID, day, note string) error {
	return m.setNote(ctx, tripID, day, note)
}
func (m *mockItineraryServicer) Day(ctx context.Context, tripID, day string) (service.DayView, error) {
	return m.day(ctx, tripID, day)
}
func (m *mockItineraryServicer) Summary(ctx context.Context, tripID, day string) (string, error) {
	return m.summary(ctx, tripID, day)
}

var _ handler.ItineraryServicer = (*mockItineraryServicer)(nil)

type mockExportServicer struct {
	exportTrip func(ctx context.Context, id string) ([]byte, error)
	exportAll  func(ctx context.Context) ([]byte, error)
	exportCSV  func(ctx context.Context, w io.Writer) error
	importData func(ctx context.Context, data []byte, confirm bool) (service.ImportResult, error)
}

func (m *mockExportServicer) ExportTrip(ctx context.Context, id string) ([]byte, error) {
	return m.exportTrip(ctx, id)
}
func (m *mockExportServicer) ExportAll(ctx context.Context) ([]byte, error) { return m.exportAll(ctx) }
func (m *mockExportServicer) ExportCSV(ctx context.Context, w io.Writer) error {
	return m.exportCSV(ctx, w)
}
func (m *mockExportServicer) Import(ctx context.Context, data []byte, confirm bool) (service.ImportResult, error) {
	return m.importData(ctx, data, confirm)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

type mockCatalogServicer struct {
	search func(ctx context.Context, keyword, category string) ([]domain.Place, error)
	get    func(ctx context.Context, id string) (domain.Place, error)
}

func (m *mockCatalogServicer) Search(ctx context.Context, keyword, category string) ([]domain.Place, error) {
	return m.search(ctx, keyword, category)
}
func (m *mockCatalogServicer) Get(ctx context.Context, id string) (domain.Place, error) {
	return m.get(ctx, id)
}

var _ handler.CatalogServicer = (*mockCatalogServicer)(nil)

type mockSessionServicer struct {
	get             func(ctx context.Context) (domain.Session, error)
	activate        func(ctx context.Context, id string) (domain.Session, error)
	deactivate      func(ctx context.Context) error
	clearIfActive   func(ctx context.Context, id string) error
	setCurrentDay   func(ctx context.Context, day string) error
	setTab          func(ctx context.Context, tab domain.Tab) error
	consumeDragHint func(ctx context.Context) (bool, error)
}

func (m *mockSessionServicer) Get(ctx context.Context) (domain.Session, error) { return m.get(ctx) }
func (m *mockSessionServicer) Activate(ctx context.Context, id string) (domain.Session, error) {
	return m.activate(ctx, id)
}
func (m *mockSessionServicer) Deactivate(ctx context.Context) error { return m.deactivate(ctx) }
func (m *mockSessionServicer) ClearIfActive(ctx context.Context, id string) error {
	return m.clearIfActive(ctx, id)
}
func (m *mockSessionServicer) SetCurrentDay(ctx context.Context, day string) error {
	return m.setCurrentDay(ctx, day)
}
func (m *mockSessionServicer) SetTab(ctx context.Context, tab domain.Tab) error {
	return m.setTab(ctx, tab)
}
func (m *mockSessionServicer) ConsumeDragHint(ctx context.Context) (bool, error) {
	return m.consumeDragHint(ctx)
}

var _ handler.SessionServicer = (*mockSessionServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// serve wires a Server with the given services into its chi router, exactly
// as main.go does, and runs one request through it.
func serve(t *testing.T, svc handler.Services, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.NewServer(svc, nil).Routes().ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[handler.ErrorResponse](t, rec).Error.Code
}

func tripFixture() domain.Trip {
	return domain.NewTrip("t1", domain.TripTemplate{Destination: "沖繩 Okinawa Trip", StartDate: "2024-07-10"}, time.Time{})
}
