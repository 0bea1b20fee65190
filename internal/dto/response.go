package dto

import (
	"github.com/taskflowhq/taskflow-api/internal/utils"
)

// Response is the API envelope for single resources.
type Response struct {
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
	Error      bool        `json:"error"`
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
}

// PaginatedResponse is the API envelope for paginated collections.
type PaginatedResponse struct {
	Message    string                `json:"message"`
	Success    bool                  `json:"success"`
	Error      bool                  `json:"error"`
	StatusCode int                   `json:"statusCode"`
	Data       interface{}           `json:"data"`
	Links      utils.PaginationLinks `json:"links"`
	Meta       utils.PaginationMeta  `json:"meta"`
}

// NewResponse builds a success envelope.
func NewResponse(data interface{}, message string, statusCode int) Response {
	return Response{
		Message:    message,
		Success:    true,
		Error:      false,
		StatusCode: statusCode,
		Data:       data,
	}
}

// NewPaginatedResponse builds a success envelope with pagination blocks.
func NewPaginatedResponse(data interface{}, message string, statusCode int, links utils.PaginationLinks, meta utils.PaginationMeta) PaginatedResponse {
	return PaginatedResponse{
		Message:    message,
		Success:    true,
		Error:      false,
		StatusCode: statusCode,
		Data:       data,
		Links:      links,
		Meta:       meta,
	}
}
