// Package dto provides Data Transfer Objects for API requests/responses.
package dto

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// IDResponse returns the identifier of a created record.
type IDResponse struct {
	ID int64 `json:"id"`
}

// SuccessResponse is a generic acknowledgement.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
