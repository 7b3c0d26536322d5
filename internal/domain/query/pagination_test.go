package query

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationDefaults(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, PageSize: 10}, NewPagination(0, 0))
	assert.Equal(t, Pagination{Page: 1, PageSize: 10}, NewPagination(-3, -1))
	assert.Equal(t, Pagination{Page: 3, PageSize: 5}, NewPagination(3, 5))
}

func TestNewPaginationCapsSize(t *testing.T) {
	assert.Equal(t, Pagination{Page: 2, PageSize: MaxPageSize}, NewPagination(2, math.MaxInt))
	assert.Equal(t, Pagination{Page: 1, PageSize: MaxPageSize}, NewPagination(1, MaxPageSize+1))
}

func TestOffsetSaturates(t *testing.T) {
	assert.Equal(t, 0, NewPagination(1, 50).Offset())
	assert.Equal(t, 100, NewPagination(3, 50).Offset())
	assert.Equal(t, math.MaxInt, Pagination{Page: math.MaxInt, PageSize: math.MaxInt}.Offset())
	assert.Equal(t, math.MaxInt, NewPagination(math.MaxInt, MaxPageSize).Offset())
}

func TestWindow(t *testing.T) {
	cases := []struct {
		page, size, total int
		start, end        int
	}{
		{1, 10, 3, 0, 3},
		{2, 2, 5, 2, 4},
		{3, 2, 5, 4, 5},
		{4, 2, 5, 5, 5},
		{1, 10, 0, 0, 0},
		{2, math.MaxInt, 3, 3, 3},
		{math.MaxInt, math.MaxInt, 3, 3, 3},
	}
	for _, tc := range cases {
		start, end := NewPagination(tc.page, tc.size).Window(tc.total)
		assert.Equal(t, tc.start, start, "page=%d size=%d", tc.page, tc.size)
		assert.Equal(t, tc.end, end, "page=%d size=%d", tc.page, tc.size)
	}
}

func TestWindowUnclampedPagination(t *testing.T) {
	start, end := Pagination{Page: 2, PageSize: math.MaxInt}.Window(3)

	assert.Equal(t, 3, start)
	assert.Equal(t, 3, end)

	start, end = Pagination{Page: 1, PageSize: math.MaxInt}.Window(3)

	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)
}
