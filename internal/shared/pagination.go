package shared

import "math"

// Pagination contains metadata for paginated listings. PerPage 0 means the
// whole result is returned on one page.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes pagination metadata.
func NewPagination(page, perPage, total int) Pagination {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		return Pagination{Page: 1, PerPage: 0, Total: total, TotalPages: 1}
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}
