package domain

import "math"

// PaginationParams carries page/limit values from the HTTP layer to the service layer.
// Page is 1-indexed. Limit is capped at 100 by NewPaginationParams.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of items to return.
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// Nil pointers fall back to sane defaults (page=1, limit=20).
// The limit is capped at 100 to prevent runaway responses.
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

// Offset returns the zero-based item offset of the first item on the page.
// It saturates at math.MaxInt instead of overflowing.
func (p PaginationParams) Offset() int {
	if p.Limit > 0 && p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Bounds returns the half-open [start, end) window of the page over a list of
// n items. Pages past the end yield an empty window.
func (p PaginationParams) Bounds(n int) (int, int) {
	if p.Limit <= 0 || p.Page-1 > n/p.Limit {
		return n, n
	}
	start := p.Offset()
	if start > n {
		start = n
	}
	end := start + p.Limit
	if end > n {
		end = n
	}
	return start, end
}
