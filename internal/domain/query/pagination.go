package query

import "math"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Pagination describes a 1-based page request.
type Pagination struct {
	Page     int
	PageSize int
}

// NewPagination builds a pagination, replacing non-positive values with
// defaults and capping the page size at MaxPageSize.
func NewPagination(page, pageSize int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

// Offset returns the number of rows to skip, saturating at math.MaxInt.
func (p Pagination) Offset() int {
	if p.Page <= 1 || p.PageSize <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// Window returns the [start, end) bounds of the page inside a list of total items.
func (p Pagination) Window(total int) (int, int) {
	start := p.Offset()
	if start > total {
		start = total
	}
	end := total
	if p.PageSize > 0 && p.PageSize < total-start {
		end = start + p.PageSize
	}
	return start, end
}
