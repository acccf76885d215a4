package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/pkordes/wanderlust/internal/domain"
)

// SheetSource reads the catalog from a spreadsheet published as CSV. The
// first row names the columns; unknown columns are ignored and missing ones
// leave the field empty.
type SheetSource struct {
	url     string
	client  *http.Client
	backoff retry.Backoff
}

// SheetOption customises a SheetSource.
type SheetOption func(*SheetSource)

// WithHTTPClient sets the client used for the download.
func WithHTTPClient(c *http.Client) SheetOption {
	return func(s *SheetSource) { s.client = c }
}

// WithBackoff sets the retry policy for transient failures.
func WithBackoff(b retry.Backoff) SheetOption {
	return func(s *SheetSource) { s.backoff = b }
}

// NewSheetSource returns a SheetSource for url. By default it retries a
// failed download three times with exponential backoff from 200ms.
func NewSheetSource(url string, timeout time.Duration, opts ...SheetOption) *SheetSource {
	s := &SheetSource{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		backoff: retry.WithMaxRetries(3, retry.NewExponential(200*time.Millisecond)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch downloads and parses the sheet. Network errors and 5xx responses
// are retried; any other failure is returned at once.
// Errors wrap domain.ErrExternalFetch.
func (s *SheetSource) Fetch(ctx context.Context) ([]domain.Place, error) {
	var places []domain.Place
	err := retry.Do(ctx, s.backoff, func(ctx context.Context) error {
		p, err := s.fetchOnce(ctx)
		if err != nil {
			return err
		}
		places = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog.SheetSource.Fetch: %w: %v", domain.ErrExternalFetch, err)
	}
	return places, nil
}

func (s *SheetSource) fetchOnce(ctx context.Context) ([]domain.Place, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, retry.RetryableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, retry.RetryableError(fmt.Errorf("sheet responded %s", resp.Status))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet responded %s", resp.Status)
	}
	return ParseCSV(resp.Body)
}

// ParseCSV decodes catalog rows. Blank lines are skipped, cells are
// trimmed, and quotes inside unquoted cells are tolerated.
func ParseCSV(r io.Reader) ([]domain.Place, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []domain.Place{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	places := []domain.Place{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		cell := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		p := domain.Place{
			ID:          cell("id"),
			City:        cell("city"),
			Keyword:     cell("keyword"),
			Category:    domain.Category(cell("category")),
			Icon:        cell("img"),
			Title:       cell("title"),
			Location:    cell("location"),
			Description: cell("description"),
			MapsLink:    cell("mapsLink"),
		}
		if p.ID == "" && p.Title == "" {
			continue
		}
		if !p.Category.Valid() {
			p.Category = domain.CategoryMisc
		}
		places = append(places, p)
	}
	return places, nil
}
