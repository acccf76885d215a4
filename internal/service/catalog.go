package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pkordes/wanderlust/internal/catalog"
	"github.com/pkordes/wanderlust/internal/domain"
)

// CategoryAll disables the category filter in Search.
const CategoryAll = "all"

// CatalogService caches the place catalog and answers explore searches.
// The catalog is loaded once; a failed load leaves a single
// connection-error entry in its place so the explore view still renders.
type CatalogService struct {
	source catalog.Source
	log    *slog.Logger

	mu     sync.RWMutex
	places []domain.Place
	loaded bool
}

// NewCatalogService constructs a CatalogService reading from source.
func NewCatalogService(source catalog.Source, log *slog.Logger) *CatalogService {
	return &CatalogService{source: source, log: log}
}

// Load fetches the catalog. It never fails: a fetch error is logged and
// replaced by domain.ConnectionErrorPlace.
func (s *CatalogService) Load(ctx context.Context) {
	places, err := s.source.Fetch(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "place catalog unavailable", "error", err)
		places = []domain.Place{domain.ConnectionErrorPlace()}
	}

	s.mu.Lock()
	s.places = places
	s.loaded = true
	s.mu.Unlock()
	s.log.InfoContext(ctx, "place catalog loaded", "count", len(places))
}

func (s *CatalogService) all(ctx context.Context) []domain.Place {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if !loaded {
		s.Load(ctx)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.places
}

// Search returns the places matching keyword, optionally limited to one
// category. A place matches when keyword is a case-insensitive substring of
// its city, search keyword, title or description, or when keyword contains
// the place's search keyword (so "Okinawa trip" finds places tagged Okinawa).
// An empty keyword matches everything; category "" or "all" disables the
// filter.
// Returns domain.ErrValidation for an unknown category.
func (s *CatalogService) Search(ctx context.Context, keyword, category string) ([]domain.Place, error) {
	var cat domain.Category
	if category != "" && category != CategoryAll {
		cat = domain.Category(category)
		if !cat.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, category)
		}
	}

	q := strings.ToLower(strings.TrimSpace(keyword))
	out := []domain.Place{}
	for _, p := range s.all(ctx) {
		if cat != "" && p.Category != cat {
			continue
		}
		if q == "" || matches(p, q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func matches(p domain.Place, q string) bool {
	for _, field := range []string{p.City, p.Keyword, p.Title, p.Description} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return p.Keyword != "" && strings.Contains(q, strings.ToLower(p.Keyword))
}

// Get returns the place with id.
// Returns domain.ErrNotFound if the catalog has no such place.
func (s *CatalogService) Get(ctx context.Context, id string) (domain.Place, error) {
	for _, p := range s.all(ctx) {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Place{}, fmt.Errorf("service.CatalogService.Get %q: %w", id, domain.ErrNotFound)
}

// SuggestKeyword returns the search term pre-filled from a trip destination:
// its first space-separated word.
func SuggestKeyword(destination string) string {
	fields := strings.Fields(destination)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
