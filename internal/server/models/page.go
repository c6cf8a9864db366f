package models

const (
	DefaultPage  = 1
	DefaultLimit = 25
	MaxLimit     = 100
)

// PageParams selects a 1-based page of a listing.
type PageParams struct {
	Page  int
	Limit int
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Beyond reports whether the page starts after the last of total rows.
// It never multiplies, so a huge Page cannot overflow into a negative offset.
// Limit must be positive.
func (p PageParams) Beyond(total int) bool {
	if total <= 0 {
		return true
	}
	return p.Page-1 > (total-1)/p.Limit
}

// Page is one slice of a listing together with the totals needed to walk it.
type Page[T any] struct {
	Results      []T
	Page         int
	Limit        int
	TotalPages   int
	TotalResults int
}

// NewPage builds a Page, computing TotalPages as ceil(total/limit).
func NewPage[T any](results []T, params PageParams, total int) Page[T] {
	pages := 0
	if params.Limit > 0 && total > 0 {
		pages = (total + params.Limit - 1) / params.Limit
	}
	if results == nil {
		results = []T{}
	}
	return Page[T]{
		Results:      results,
		Page:         params.Page,
		Limit:        params.Limit,
		TotalPages:   pages,
		TotalResults: total,
	}
}
