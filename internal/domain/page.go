package domain

// PaginationParams carries page/limit values from the HTTP layer to list
// operations. Page is 1-indexed. Limit is capped at 100 by NewPaginationParams.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of entries to return.
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// Nil pointers fall back to sane defaults (page=1, limit=20).
// The limit is capped at 100.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 20}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > 100 {
			p.Limit = 100
		}
	}
	return p
}

// Offset returns the zero-based index of the first entry on the page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Window returns the [lo, hi) bounds of the page within a list of n
// entries. A page past the end yields an empty window.
func (p PaginationParams) Window(n int) (lo, hi int) {
	lo = min(p.Offset(), n)
	hi = min(lo+p.Limit, n)
	return lo, hi
}
