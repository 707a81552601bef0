package dto

import (
	"net/url"
	"strconv"
)

// Page is the "data" of every list endpoint.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// ListQuery carries paging and free-text search shared by list endpoints.
type ListQuery struct {
	Page   int    `json:"page,omitempty" validate:"gte=0"`
	Limit  int    `json:"limit,omitempty" validate:"gte=0,lte=100"`
	Search string `json:"search,omitempty"`
}

// Values renders q as URL query parameters, skipping zero values.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

// Message is the data of endpoints that only acknowledge.
type Message struct {
	Message string `json:"message,omitempty"`
}

// DefaultPageLimit applies when a list query names no limit.
const DefaultPageLimit = 20

// Paginate cuts the page q asks for out of items. Pages are 1-based; page 0
// means the first page.
func Paginate[T any](items []T, q ListQuery) Page[T] {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	page := max(q.Page, 1)

	start := min((page-1)*limit, len(items))
	end := min(start+limit, len(items))
	out := make([]T, end-start)
	copy(out, items[start:end])
	return Page[T]{Items: out, Total: len(items), Page: page, Limit: limit}
}
