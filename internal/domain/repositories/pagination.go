package repositories

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination is a 1-indexed page request.
type Pagination struct {
	Page  int
	Limit int
}

// NewPagination applies defaults to non-positive values and clamps the limit.
// The page is capped so Offset never overflows; a capped page is still past
// the end of any real result set.
func NewPagination(page, limit int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if maxPage := math.MaxInt32 / limit; page > maxPage {
		page = maxPage
	}
	return Pagination{Page: page, Limit: limit}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

type PageInfo struct {
	CurrentPage int
	TotalPages  int
	TotalCount  int64
	HasNext     bool
	HasPrev     bool
}

// Info derives page counters for a result set of total rows.
func (p Pagination) Info(total int64) PageInfo {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return PageInfo{
		CurrentPage: p.Page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNext:     p.Page < totalPages,
		HasPrev:     p.Page > 1,
	}
}
