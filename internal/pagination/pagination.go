// Package pagination provides page/offset handling shared by every
// listing endpoint.
package pagination

import (
	"errors"
	"strconv"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var (
	ErrInvalidPage     = errors.New("page must be a positive integer")
	ErrInvalidPageSize = errors.New("page_size must be a positive integer")
)

type Params struct {
	Page     int
	PageSize int
}

// Parse converts raw query values into Params. Empty strings fall back
// to the defaults. A page_size above MaxPageSize is clamped rather than
// rejected.
func Parse(pageStr, pageSizeStr string) (Params, error) {
	p := Params{Page: 1, PageSize: DefaultPageSize}

	if pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return Params{}, ErrInvalidPage
		}
		p.Page = page
	}

	if pageSizeStr != "" {
		size, err := strconv.Atoi(pageSizeStr)
		if err != nil || size < 1 {
			return Params{}, ErrInvalidPageSize
		}
		if size > MaxPageSize {
			size = MaxPageSize
		}
		p.PageSize = size
	}

	return p, nil
}

func (p Params) Limit() int {
	return p.PageSize
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page is the listing response envelope.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func NewPage[T any](items []T, total int64, p Params) Page[T] {
	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
	}

	if items == nil {
		items = []T{}
	}

	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: totalPages,
	}
}
