package service

// Page is one window over a fully materialized collection.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// Paginate windows items into 1-indexed pages. A page past the end yields an
// empty window, not an error. Cost is linear in the collection, never the
// page: callers materialize and project first.
func Paginate[T any](items []T, page, pageSize int) (Page[T], error) {
	if pageSize <= 0 || page < 1 {
		return Page[T]{}, ErrInvalidArgument
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	window := make([]T, end-start)
	copy(window, items[start:end])

	return Page[T]{
		Items:      window,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}
