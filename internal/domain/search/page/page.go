// Package page slices ranked results into clamped pages.
package page

// DefaultSize is the business page size: five documents per page.
const DefaultSize = 5

// Page is one slice of a ranked list.
// Page is always within [1, max(1, TotalPages)].
type Page[T any] struct {
	Items         []T
	Page          int
	PageSize      int
	TotalPages    int
	TotalItems    int
	RequestedPage int
}

// Paginate returns page `page` of items with `size` items per page.
// An out-of-range page is clamped to the nearest valid one rather than
// returned empty; an empty list is page 1 of 1. A size below 1 falls back
// to DefaultSize.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size < 1 {
		size = DefaultSize
	}
	total := len(items)
	pages := max(1, (total+size-1)/size)
	requested := page
	page = min(max(page, 1), pages)

	start := min((page-1)*size, total)
	end := min(start+size, total)
	out := make([]T, end-start)
	copy(out, items[start:end])

	return Page[T]{
		Items:         out,
		Page:          page,
		PageSize:      size,
		TotalPages:    pages,
		TotalItems:    total,
		RequestedPage: requested,
	}
}

// Clamped reports whether the returned page differs from the requested one.
func (p Page[T]) Clamped() bool { return p.Page != p.RequestedPage }

// HasNext reports whether a following page exists.
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }

// HasPrev reports whether a preceding page exists.
func (p Page[T]) HasPrev() bool { return p.Page > 1 }

// Map converts the items of a page, keeping its bounds.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, len(p.Items))
	for i, it := range p.Items {
		items[i] = fn(it)
	}
	return Page[U]{
		Items:         items,
		Page:          p.Page,
		PageSize:      p.PageSize,
		TotalPages:    p.TotalPages,
		TotalItems:    p.TotalItems,
		RequestedPage: p.RequestedPage,
	}
}

// TotalPages returns the page count for n items, at least 1.
func TotalPages(n, size int) int {
	if size < 1 {
		size = DefaultSize
	}
	return max(1, (n+size-1)/size)
}
