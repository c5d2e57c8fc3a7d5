package lastfm

import "time"

// PaginatedResult is one page of a collection response. Result is kept for
// diagnostics; on failure Items is empty and Page and TotalPages are 0.
type PaginatedResult[T any] struct {
	Items      []T
	Page       int
	TotalPages int
	// PerPage and Total are filled when the service sends them.
	PerPage int
	Total   int
	Result  *Result
}

// Empty reports whether the page holds no items.
func (p PaginatedResult[T]) Empty() bool {
	return len(p.Items) == 0
}

// HasNext reports whether a later page exists.
func (p PaginatedResult[T]) HasNext() bool {
	return p.Page > 0 && p.Page < p.TotalPages
}

// Chart is a paginated result bounded by the chart's time range.
type Chart[T any] struct {
	PaginatedResult[T]
	From time.Time
	To   time.Time
}

// ChartRange is one entry of a weekly chart list.
type ChartRange struct {
	From time.Time
	To   time.Time
}

func failedPage[T any](res *Result) PaginatedResult[T] {
	return PaginatedResult[T]{Items: []T{}, Result: res}
}
