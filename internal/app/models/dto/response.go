package dto

import "time"

// APIResponse is the envelope every JSON endpoint returns
type APIResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message,omitempty"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewSuccessResponse wraps data in a successful envelope
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewErrorAPIResponse wraps an error detail in a failed envelope
func NewErrorAPIResponse(detail *ErrorDetail) APIResponse {
	return APIResponse{
		Success:   false,
		Error:     detail,
		Timestamp: time.Now(),
	}
}

// PaginationInfo describes one page of a filtered listing. Pages is the window
// of page links around CurrentPage.
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
	HasPrev     bool  `json:"hasPrev"`
	HasNext     bool  `json:"hasNext"`
	PrevPage    int   `json:"prevPage,omitempty"`
	NextPage    int   `json:"nextPage,omitempty"`
	Pages       []int `json:"pages"`
}

// PagedResponse is a page of items with its pagination block
type PagedResponse[T any] struct {
	Items      []T            `json:"items"`
	TotalCount int64          `json:"totalCount"`
	Pagination PaginationInfo `json:"pagination"`
}

// LinkResponse is returned by the association endpoints
type LinkResponse struct {
	Message       string      `json:"message"`
	AlreadyLinked bool        `json:"alreadyLinked,omitempty"`
	Result        interface{} `json:"result,omitempty"`
}
