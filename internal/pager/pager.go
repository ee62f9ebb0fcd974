// Package pager slices an ordered collection into fixed-size pages.
//
// A Pager never validates the page index: any integer is accepted and pages
// outside 1..TotalPages simply have no items. Re-binding a new collection keeps
// the current page, so a shrinking collection can leave the caller on an empty
// page.
package pager

import "math"

// PageSize is the number of items on every page.
const PageSize = 10

// Pager holds the current page index for one list view.
// It is not safe for concurrent use; each view owns its own Pager.
type Pager[T any] struct {
	currentPage int
	items       []T
}

// New returns a Pager over items positioned on the first page.
func New[T any](items []T) *Pager[T] {
	return &Pager[T]{currentPage: 1, items: items}
}

// Bind replaces the underlying collection and keeps the current page.
func (p *Pager[T]) Bind(items []T) {
	p.items = items
}

// Paginate moves to pageNumber as-is.
func (p *Pager[T]) Paginate(pageNumber int) {
	p.currentPage = pageNumber
}

// CurrentPage returns the page index last set by New or Paginate.
func (p *Pager[T]) CurrentPage() int {
	return p.currentPage
}

// TotalItems returns the size of the bound collection.
func (p *Pager[T]) TotalItems() int {
	return len(p.items)
}

// TotalPages returns ceil(len(items)/PageSize); 0 for an empty collection.
func (p *Pager[T]) TotalPages() int {
	return (len(p.items) + PageSize - 1) / PageSize
}

// CurrentItems returns the slice for the current page, or an empty slice when
// the page is out of range.
func (p *Pager[T]) CurrentItems() []T {
	if p.currentPage < 1 || p.currentPage > p.TotalPages() {
		return []T{}
	}
	first := (p.currentPage - 1) * PageSize
	last := min(first+PageSize, len(p.items))
	out := make([]T, last-first)
	copy(out, p.items[first:last])
	return out
}

// Nav describes which navigation controls are enabled for the current page and
// where each one leads.
type Nav struct {
	HasFirst bool `json:"has_first"`
	HasPrev  bool `json:"has_prev"`
	HasNext  bool `json:"has_next"`
	HasLast  bool `json:"has_last"`
	First    int  `json:"first"`
	Prev     int  `json:"prev"`
	Next     int  `json:"next"`
	Last     int  `json:"last"`
}

// Nav reports the first/prev/next/last controls. First and prev are disabled on
// page 1; next and last are disabled on the last page or when there are no pages.
// Prev and Next saturate at the int bounds instead of wrapping.
func (p *Pager[T]) Nav() Nav {
	total := p.TotalPages()
	back := p.currentPage != 1
	forward := p.currentPage != total && total != 0
	return Nav{
		HasFirst: back,
		HasPrev:  back,
		HasNext:  forward,
		HasLast:  forward,
		First:    1,
		Prev:     max(p.currentPage, math.MinInt+1) - 1,
		Next:     min(p.currentPage, math.MaxInt-1) + 1,
		Last:     total,
	}
}
