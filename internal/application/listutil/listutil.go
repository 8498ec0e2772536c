// Package listutil parses pagination parameters for list endpoints.
package listutil

import (
	"net/url"
	"slices"
	"strconv"
)

// DefaultPerPage is used when per_page is missing or not one of PerPageOptions.
const DefaultPerPage = 50

// PerPageOptions are the accepted per_page values.
var PerPageOptions = []int{10, 25, 50, 100, 200}

// PageParams is the page request as parsed from the query string.
type PageParams struct {
	Page    int // 1-indexed
	PerPage int
}

// PageInfo describes the page actually served.
type PageInfo struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// ParsePageParams reads page and per_page from q.
// PRE: none
// POST: Page >= 1; PerPage is one of PerPageOptions
func ParsePageParams(q url.Values) PageParams {
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(q.Get("per_page"))
	if err != nil || !slices.Contains(PerPageOptions, perPage) {
		perPage = DefaultPerPage
	}
	return PageParams{Page: page, PerPage: perPage}
}

// NewPageInfo clamps the requested page to the pages that exist for total rows.
// PRE: total >= 0
// POST: 1 <= Page <= TotalPages; TotalPages >= 1
func NewPageInfo(p PageParams, total int) PageInfo {
	perPage := p.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	pages := max((total+perPage-1)/perPage, 1)
	page := min(max(p.Page, 1), pages)
	return PageInfo{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: pages,
		HasNext:    page < pages,
	}
}

// Offset is the number of rows before the current page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}
