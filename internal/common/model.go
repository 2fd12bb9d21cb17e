// File: internal/common/model.go
package common

// Pagination struct for paginated API responses
type Pagination struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// NewPagination creates a pagination object.
func NewPagination(totalItems int64, page, pageSize int) *Pagination {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	totalPages := int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	if totalPages == 0 && totalItems > 0 {
		totalPages = 1
	}
	if totalItems == 0 {
		totalPages = 0
	}

	return &Pagination{
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    pageSize,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// Paginate slices a full in-memory collection down to the requested page.
// The stores hold complete collections, so pagination is a view concern.
func Paginate[T any](items []T, page, pageSize int) ([]T, *Pagination) {
	pagination := NewPagination(int64(len(items)), page, pageSize)
	start := (pagination.CurrentPage - 1) * pagination.PageSize
	if start >= len(items) {
		return []T{}, pagination
	}
	end := start + pagination.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], pagination
}
