package repositories

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationDefaults(t *testing.T) {
	p := NewPagination(0, 0)
	assert.Equal(t, Pagination{Page: 1, Limit: 10}, p)
	assert.Equal(t, 0, p.Offset())

	p = NewPagination(-3, 1000)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxLimit, p.Limit)
}

func TestPaginationOffset(t *testing.T) {
	assert.Equal(t, 20, NewPagination(3, 10).Offset())
	assert.Equal(t, 5, NewPagination(2, 5).Offset())
}

func TestPaginationOffset_HugePageStaysPositive(t *testing.T) {
	for _, limit := range []int{1, 10, MaxLimit} {
		p := NewPagination(92233720368547760, limit)
		assert.Positive(t, p.Offset(), "limit %d", limit)
		assert.LessOrEqual(t, p.Offset(), math.MaxInt32)

		info := p.Info(3)
		assert.False(t, info.HasNext)
		assert.Greater(t, info.CurrentPage, info.TotalPages)
	}
}

func TestPaginationInfo(t *testing.T) {
	tests := []struct {
		name  string
		page  Pagination
		total int64
		want  PageInfo
	}{
		{
			name:  "last of three pages",
			page:  NewPagination(3, 10),
			total: 25,
			want:  PageInfo{CurrentPage: 3, TotalPages: 3, TotalCount: 25, HasNext: false, HasPrev: true},
		},
		{
			name:  "first page",
			page:  NewPagination(1, 10),
			total: 25,
			want:  PageInfo{CurrentPage: 1, TotalPages: 3, TotalCount: 25, HasNext: true, HasPrev: false},
		},
		{
			name:  "exact multiple",
			page:  NewPagination(2, 10),
			total: 20,
			want:  PageInfo{CurrentPage: 2, TotalPages: 2, TotalCount: 20, HasNext: false, HasPrev: true},
		},
		{
			name:  "empty",
			page:  NewPagination(1, 10),
			total: 0,
			want:  PageInfo{CurrentPage: 1, TotalPages: 0, TotalCount: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.page.Info(tt.total))
		})
	}
}
