package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// GetPaginationParams extracts and validates pagination parameters from the request
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPageSize)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	// Keep the offset and the end of the page representable
	if maxPage := math.MaxInt/limit - 1; page > maxPage {
		page = maxPage
	}

	offset := (page - 1) * limit

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: offset,
	}
}

// Page returns the window of items selected by params. Filtering and sorting
// happen in memory, so paging does too.
func Page[T any](items []T, params PaginationParams) []T {
	if params.Offset < 0 || params.Limit <= 0 || params.Offset >= len(items) {
		return []T{}
	}
	end := params.Offset + params.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[params.Offset:end]
}

// NewPaginationResponse builds the pagination metadata for total items
func NewPaginationResponse(params PaginationParams, total int) PaginationResponse {
	totalPages := total / params.Limit
	if total%params.Limit > 0 {
		totalPages++
	}
	return PaginationResponse{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      int64(total),
		TotalPages: totalPages,
	}
}
