// Package pagination implements the page-number scheme the API uses on every
// list endpoint: a 1-based "page" query parameter and a fixed page size.
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Page is the list response envelope.
type Page struct {
	Count    int64 `json:"count"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Results  any   `json:"results"`
}

// FromRequest reads the "page" query parameter, clamping it to 1.
func FromRequest(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Apply adds LIMIT/OFFSET for the given page to a query.
func Apply(query *gorm.DB, page, pageSize int) *gorm.DB {
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}

// Envelope wraps results with their paging metadata.
func Envelope(count int64, page, pageSize int, results any) Page {
	return Page{Count: count, Page: page, PageSize: pageSize, Results: results}
}
