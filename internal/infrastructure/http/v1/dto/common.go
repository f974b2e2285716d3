// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"strings"

	"storekeeper/internal/core/id"
	"storekeeper/internal/domain"
)

// --- List Query ---

// ListQuery contains common query parameters for list endpoints.
type ListQuery struct {
	Search         string `form:"search"`
	IDs            string `form:"ids"` // comma-separated
	IncludeDeleted bool   `form:"includeDeleted"`
	OrderBy        string `form:"orderBy"`
	Limit          int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset         int    `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter converts query parameters to a domain list filter.
func (q *ListQuery) ToFilter() domain.ListFilter {
	f := domain.DefaultListFilter()
	f.Search = q.Search
	f.IncludeDeleted = q.IncludeDeleted

	if q.OrderBy != "" {
		f.OrderBy = q.OrderBy
	}
	if q.Limit > 0 {
		f.Limit = q.Limit
	}
	f.Offset = q.Offset

	if q.IDs != "" {
		for _, raw := range strings.Split(q.IDs, ",") {
			parsed, err := id.Parse(strings.TrimSpace(raw))
			if err != nil {
				continue
			}
			f.IDs = append(f.IDs, parsed)
		}
	}

	return f
}

// --- List Response ---

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// NewListResponse builds a list response from mapped items and the
// domain result that produced them.
func NewListResponse[T any, R any](result domain.ListResult[T], mapped []R) ListResponse {
	return ListResponse{
		Items:      mapped,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	}
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// NewSuccessResponse creates success response.
func NewSuccessResponse(message string) SuccessResponse {
	return SuccessResponse{Success: true, Message: message}
}

// --- Error Response ---

// ErrorResponse is the error body shape (actual writing happens in the
// error middleware; this type documents the contract).
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// --- Deletion Mark ---

// SetDeletionMarkRequest toggles the soft-delete flag.
type SetDeletionMarkRequest struct {
	Marked bool `json:"marked"`
}
