package utils

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskflowhq/taskflow-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationMeta mirrors the meta block of paginated responses.
// From and To are 1-based positions within the whole result set; both are
// zero when the page is empty.
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	From        int   `json:"from"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	To          int   `json:"to"`
	Total       int64 `json:"total"`
}

// PaginationLinks holds the navigation URLs of a paginated response.
type PaginationLinks struct {
	First string `json:"first"`
	Last  string `json:"last"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
}

// GetPaginationParams extracts and validates pagination parameters from the request
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.DefaultPage)))
	limit, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(constants.DefaultPageSize)))

	if page < constants.DefaultPage {
		page = constants.DefaultPage
	}
	if limit < 1 || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	offset := (page - 1) * limit

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: offset,
	}
}

// BuildPaginationMeta computes the meta block for a page of pageLen items.
func BuildPaginationMeta(params PaginationParams, pageLen int, total int64) PaginationMeta {
	lastPage := int(total) / params.Limit
	if int(total)%params.Limit > 0 {
		lastPage++
	}
	if lastPage < 1 {
		lastPage = 1
	}

	meta := PaginationMeta{
		CurrentPage: params.Page,
		LastPage:    lastPage,
		PerPage:     params.Limit,
		Total:       total,
	}
	if pageLen > 0 {
		meta.From = params.Offset + 1
		meta.To = params.Offset + pageLen
	}
	return meta
}

// BuildPaginationLinks builds first/last/prev/next URLs preserving the
// request's other query parameters.
func BuildPaginationLinks(c *gin.Context, params PaginationParams, lastPage int) PaginationLinks {
	pageURL := func(page int) string {
		values := url.Values{}
		for k, vs := range c.Request.URL.Query() {
			if k == "page" {
				continue
			}
			for _, v := range vs {
				values.Add(k, v)
			}
		}
		values.Set("page", strconv.Itoa(page))
		return fmt.Sprintf("%s?%s", c.Request.URL.Path, values.Encode())
	}

	links := PaginationLinks{
		First: pageURL(1),
		Last:  pageURL(lastPage),
	}
	if params.Page > 1 {
		links.Prev = pageURL(params.Page - 1)
	}
	if params.Page < lastPage {
		links.Next = pageURL(params.Page + 1)
	}
	return links
}
