// Package pagination holds the offset paging arithmetic shared by list endpoints.
package pagination

import (
	"fmt"
	"math"
)

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100

	DefaultTopLimit = 10
	MaxTopLimit     = 50
)

// Params is a validated page request.
type Params struct {
	Page int
	Size int
}

// Meta describes where a page sits in the full result set.
type Meta struct {
	Page          int   `json:"page"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
}

// ParamError names the query parameter that failed validation.
type ParamError struct {
	Field   string
	Message string
}

func (e *ParamError) Error() string {
	return e.Message
}

// NewParams validates page and size against the given upper bound for size.
func NewParams(page, size, maxSize int) (Params, error) {
	if page < 1 {
		return Params{}, &ParamError{Field: "page", Message: fmt.Sprintf("page must be >= 1, got %d", page)}
	}
	if size < 1 || size > maxSize {
		return Params{}, &ParamError{Field: "size", Message: fmt.Sprintf("size must be between 1 and %d, got %d", maxSize, size)}
	}
	return Params{Page: page, Size: size}, nil
}

// ValidateLimit checks a Top-N limit against [1, maxLimit].
func ValidateLimit(limit, maxLimit int) error {
	if limit < 1 || limit > maxLimit {
		return &ParamError{Field: "limit", Message: fmt.Sprintf("limit must be between 1 and %d, got %d", maxLimit, limit)}
	}
	return nil
}

// Offset is the number of rows preceding the requested page. It saturates
// at math.MaxInt instead of overflowing for very large pages.
func (p Params) Offset() int {
	if p.Size > 0 && p.Page-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Size
}

// PastEnd reports whether the page starts beyond the last of total rows.
func (p Params) PastEnd(total int64) bool {
	return int64(p.Offset()) >= total
}

// TotalPages returns ceil(total/size), with an empty result still counting
// as one page.
func TotalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}

// NewMeta builds the metadata for page p of a result set of total rows.
func NewMeta(p Params, total int64) Meta {
	return Meta{
		Page:          p.Page,
		TotalPages:    TotalPages(total, p.Size),
		TotalElements: total,
	}
}
