package shared

// Pagination holds page parameters for list queries
type Pagination struct {
	Page     int
	PageSize int
}

// DefaultPagination returns page 1 with 20 rows
func DefaultPagination() Pagination {
	return Pagination{Page: 1, PageSize: 20}
}

// Normalize clamps page values into a usable range. PageSize 0 means
// "no paging" and is left alone.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 0 {
		p.PageSize = 0
	}
	if p.PageSize > 500 {
		p.PageSize = 500
	}
	return p
}

// Offset returns the row offset of the page
func (p Pagination) Offset() int {
	if p.PageSize == 0 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := 1
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
