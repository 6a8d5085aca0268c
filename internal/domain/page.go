package domain

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListQuery is the search, filter and paging input of every list screen.
type ListQuery struct {
	Page   int
	Size   int
	Search string
	Status string
	Role   string
}

// Normalize clamps paging: page >= 0, size defaults to 10 and is capped at 100.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Size <= 0 {
		q.Size = DefaultPageSize
	}
	if q.Size > MaxPageSize {
		q.Size = MaxPageSize
	}
	return q
}

// Page is one page of a remote list. Page numbers are zero-based.
type Page[T any] struct {
	Items      []T
	Page       int
	TotalPages int
}

func (p Page[T]) HasPrev() bool {
	return p.Page > 0
}

func (p Page[T]) HasNext() bool {
	return p.Page+1 < p.TotalPages
}

// Number is the one-based page number shown to users.
func (p Page[T]) Number() int {
	return p.Page + 1
}

// PageAfterDelete is the page to show after removing one row from p: deleting
// the only row of a later page steps back one page.
func PageAfterDelete(page, rowsOnPage int) int {
	if rowsOnPage <= 1 && page > 0 {
		return page - 1
	}
	return page
}

// Option is a value/label pair for select inputs.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
