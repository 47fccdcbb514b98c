package store

import (
	"strings"
	"unicode"
)

// Query describes a filtered, paginated read over a store.
// Page is 1-indexed; PageSize is fixed per screen.
type Query struct {
	Search   string
	Page     int
	PageSize int
}

// Page is one derived page of a filtered collection.
//
// Number is the effective page after clamping: when the filtered set
// shrinks below the requested page, the view snaps back to page 1 rather
// than pointing past the end.
type Page[T any] struct {
	Items      []T
	Number     int
	PageSize   int
	Total      int
	TotalPages int
}

// View filters the collection with match against q.Search (entities with no
// matcher semantics can pass nil to skip filtering) and slices out the
// requested page. Pure recomputation on every call.
func (s *Store[T]) View(q Query, match func(T, string) bool) Page[T] {
	filtered := s.Where(func(e T) bool {
		if q.Search == "" || match == nil {
			return true
		}
		return match(e, q.Search)
	})
	return Paginate(filtered, q.Page, q.PageSize)
}

// Paginate slices items into the requested 1-indexed page.
// totalPages = ceil(len/pageSize); a page beyond totalPages clamps to 1.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = 1
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	if page < 1 || page > totalPages {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      items[start:end],
		Number:     page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// ContainsFold reports whether sub occurs in s, case-insensitively.
func ContainsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// Digits strips everything but decimal digits, so phone numbers match
// regardless of spacing and punctuation.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
