package helpers

import (
	"net/http"
	"strconv"

	"schooladmin/internal/pager"
)

// DefaultPage is used when the page query parameter is missing or not a number.
const DefaultPage = 1

// ParsePage reads the page query parameter. Numeric values are returned as-is,
// including zero and negatives; the Pager answers those with an empty page.
func ParsePage(r *http.Request) int {
	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return DefaultPage
}

// PaginationMeta is the pagination metadata included in paginated list responses.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta builds PaginationMeta from the current page, page size, and total count.
// TotalPages is computed as ceiling(total / pageSize); if pageSize is 0, TotalPages is 0.
func NewPaginationMeta(page, pageSize, total int) PaginationMeta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Page is one page of a list response.
type Page[T any] struct {
	Items      []T            `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
	Nav        pager.Nav      `json:"nav"`
}

// NewPage renders the current page of p.
func NewPage[T any](p *pager.Pager[T]) Page[T] {
	return Page[T]{
		Items:      p.CurrentItems(),
		Pagination: NewPaginationMeta(p.CurrentPage(), pager.PageSize, p.TotalItems()),
		Nav:        p.Nav(),
	}
}

// Paginate binds items to a fresh Pager positioned on page and renders it.
func Paginate[T any](items []T, page int) Page[T] {
	p := pager.New(items)
	p.Paginate(page)
	return NewPage(p)
}
