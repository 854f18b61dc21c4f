package models

// Page is one page of a server-side paginated collection, mirroring the
// Spring-style page envelope the backend returns.
//
// Invariants maintained by the backend: len(Content) <= Size, and Number is in
// [0, TotalPages) whenever TotalElements > 0. The console treats the envelope
// as read-only and never re-derives the totals.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
}

// IsEmpty reports whether the page carries no records
func (p *Page[T]) IsEmpty() bool {
	return len(p.Content) == 0
}

// IsFirst reports whether this is the first page
func (p *Page[T]) IsFirst() bool {
	return p.Number == 0
}

// IsLast reports whether this is the last page
func (p *Page[T]) IsLast() bool {
	return p.Number >= p.TotalPages-1
}
