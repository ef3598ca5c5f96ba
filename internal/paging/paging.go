// Package paging slices ordered result sets into fixed-size pages.
//
// Page boundaries are defined over the filtered set a caller passes in, so the
// same rows and parameters always yield the same page. Page numbers are 1-based;
// a page number outside [1, page_count] is a not-found condition, never an empty page.
package paging

import (
	"fmt"

	dErrors "njgeo/pkg/domain-errors"
)

const (
	DefaultPageSize   = 100
	DefaultPageNumber = 1
)

// Params selects one page of a result set. Both fields are >= 1 once parsed.
type Params struct {
	PageSize   int
	PageNumber int
}

// Defaults returns the parameters used when a caller supplies none.
func Defaults() Params {
	return Params{PageSize: DefaultPageSize, PageNumber: DefaultPageNumber}
}

// Meta describes the query behind a result. Page fields are set for paginated
// results only; the query fields are stamped by the service that ran the query.
type Meta struct {
	PageSize    int    `json:"page_size,omitempty"`
	PageNumber  int    `json:"page_number,omitempty"`
	PageCount   int    `json:"page_count,omitempty"`
	RecordCount int    `json:"record_count,omitempty"`
	Year        int    `json:"year,omitempty"`
	YearRef     int    `json:"year_ref,omitempty"`
	GEOID       string `json:"GEOID,omitempty"`
}

// Paginated reports whether m carries page information.
func (m Meta) Paginated() bool {
	return m.PageSize > 0
}

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Items []T
	Meta  Meta
}

// PageCount returns ceil(n / size) without overflowing for sizes near MaxInt.
func PageCount(n, size int) int {
	if n == 0 {
		return 0
	}
	return (n-1)/size + 1
}

// Paginate returns the rows of page p.PageNumber. RecordCount is len(rows).
// The returned items alias rows with their capacity clipped, so appending to
// them never writes into the shared table.
func Paginate[T any](rows []T, p Params) (Page[T], error) {
	if p.PageSize < 1 {
		return Page[T]{}, dErrors.New(dErrors.CodeInternal, fmt.Sprintf("page size %d is not positive", p.PageSize))
	}
	count := PageCount(len(rows), p.PageSize)
	if p.PageNumber < 1 || p.PageNumber > count {
		return Page[T]{}, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("Page number %d not found", p.PageNumber))
	}

	offset := (p.PageNumber - 1) * p.PageSize
	end := min(offset+p.PageSize, len(rows))
	return Page[T]{
		Items: rows[offset:end:end],
		Meta: Meta{
			PageSize:    p.PageSize,
			PageNumber:  p.PageNumber,
			PageCount:   count,
			RecordCount: len(rows),
		},
	}, nil
}

// Map projects the items of a page, keeping its metadata.
func Map[T, U any](page Page[T], fn func(T) U) Page[U] {
	items := make([]U, len(page.Items))
	for i, item := range page.Items {
		items[i] = fn(item)
	}
	return Page[U]{Items: items, Meta: page.Meta}
}
