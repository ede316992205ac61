package service

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination echoes the page window that was actually used.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// ListResult is a page of items plus the counts needed to render pagination.
type ListResult[T any] struct {
	Items      []T
	Total      int
	TotalPages int
	Pagination Pagination
}

// normalizePage replaces non-positive values with the defaults and caps limit at MaxLimit.
func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// offsetFor saturates at math.MaxInt so a page far past the end still yields an empty page.
func offsetFor(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

func totalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
