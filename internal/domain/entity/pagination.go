package entity

// Sortable user columns and directions accepted by ListQuery.
const (
	SortByName      = "name"
	SortByEmail     = "email"
	SortByCreatedAt = "createdAt"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListQuery filters, sorts and pages a user listing. Page is 1-based.
type ListQuery struct {
	Page       int
	Limit      int
	Search     string
	OnlyActive bool
	SortBy     string
	SortOrder  string
}

// Offset returns the number of rows skipped before the requested page.
func (q ListQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// Pagination describes where a page sits in the full result set.
type Pagination struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalUsers      int  `json:"totalUsers"`
	Limit           int  `json:"limit"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// NewPagination computes page metadata; totalPages is ceil(total/limit).
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalUsers:      total,
		Limit:           limit,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

// UserPage is one page of a listing.
type UserPage struct {
	Users      []User
	Pagination Pagination
}
