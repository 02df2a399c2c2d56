package util

const (
	// DefaultPageSize applies when no limit is supplied.
	DefaultPageSize = 10
	// MaxPageSize is the server-side clamp on requested limits.
	MaxPageSize = 100
)

// PageRequest normalizes page/limit query input.
type PageRequest struct {
	Page  int
	Limit int
}

// NormalizePage clamps page to >=1 and limit to [1, MaxPageSize],
// falling back to defaults on zero or negative inputs.
func NormalizePage(page, limit int) PageRequest {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return PageRequest{Page: page, Limit: limit}
}

// Offset returns the row offset for the page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination describes a page of a larger result set.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination computes page metadata. Pages is ceil(total/limit); a
// page past the end is valid and simply holds no rows.
func NewPagination(req PageRequest, total int64) Pagination {
	pages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return Pagination{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
		Pages: pages,
	}
}
