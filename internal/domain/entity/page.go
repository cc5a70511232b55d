package entity

// SortOrder is the direction of a list ordering.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// Sort is a validated ordering over a whitelisted column.
type Sort struct {
	Column string
	Order  SortOrder
}

// Desc reports whether the sort is descending.
func (s Sort) Desc() bool {
	return s.Order == SortDesc
}

// PageRequest is a validated one-based page and a positive limit.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int {
	if p.Page <= 1 {
		return 0
	}

	return (p.Page - 1) * p.Limit
}

// PageInfo describes the position of a page within a result set.
type PageInfo struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// NewPageInfo computes TotalPages as ceil(total/limit).
func NewPageInfo(req PageRequest, total int64) PageInfo {
	var pages int
	if req.Limit > 0 {
		pages = int((total + int64(req.Limit) - 1) / int64(req.Limit))
	}

	return PageInfo{
		CurrentPage:  req.Page,
		TotalPages:   pages,
		TotalItems:   total,
		ItemsPerPage: req.Limit,
	}
}

// Page is a slice of items with its page info.
type Page[T any] struct {
	Items    []T      `json:"items"`
	PageInfo PageInfo `json:"pagination"`
}

// ListQuery is a validated search, filter, sort and page request.
type ListQuery struct {
	Search       string
	SearchFields []string
	Role         Role
	Sort         Sort
	Page         PageRequest
}
