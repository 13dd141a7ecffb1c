package entity

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 100

	// MaxPage keeps Offset within int for every accepted limit.
	MaxPage = math.MaxInt / MaxLimit
)

type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

// NewPagination expects page and limit already normalised by NormalizePage.
func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 && total > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}

// NormalizePage replaces non-positive values with the defaults, caps
// limit at MaxLimit and page at MaxPage.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func Offset(page, limit int) int {
	return (page - 1) * limit
}
