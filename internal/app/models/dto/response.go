package dto

import "time"

// APIResponse is the standard response envelope for all endpoints.
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2026-08-29T12:01:05.123Z"`
}

// PaginationInfo carries pagination metadata for list responses.
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"5"`
	PageSize    int   `json:"pageSize" example:"20"`
	TotalItems  int64 `json:"totalItems" example:"93"`
}

// SuccessResponse represents a standard success response with message only.
type SuccessResponse struct {
	Message string `json:"message"`
}
