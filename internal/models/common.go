package models

// MaxUserIDLength matches the size of every user_id column
const MaxUserIDLength = 128

// ListParams carries the paging, ordering and whitelisted filters accepted by list endpoints.
type ListParams struct {
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
	Ordering string `json:"ordering,omitempty"`
	Search   string `json:"search,omitempty"`

	Active        *bool `json:"active,omitempty"`
	CategoryID    *uint `json:"categoryId,omitempty"`
	SubcategoryID *uint `json:"subcategoryId,omitempty"`
	BrandID       *uint `json:"brandId,omitempty"`
}

// Offset returns the row offset for the requested page
func (p ListParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

type PaginationInfo struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

// NewPaginationInfo builds pagination metadata for a page of results
func NewPaginationInfo(page, limit int, total int64) *PaginationInfo {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &PaginationInfo{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

type ErrorResponse struct {
	Success bool  `json:"success"`
	Error   Error `json:"error"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type SuccessResponse struct {
	Success    bool            `json:"success"`
	Data       interface{}     `json:"data,omitempty"`
	Message    *string         `json:"message,omitempty"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
}
