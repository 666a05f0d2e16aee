package common

import (
	"time"
)

type ProductResult struct {
	Id        uint      `json:"id"`
	Name      string    `json:"name"`
	Qty       int       `json:"qty"`
	Price     float64   `json:"price"`
	Category  *string   `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PaginationResult struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}
