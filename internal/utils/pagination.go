// internal/utils/pagination.go
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

type PaginationParams struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	return PaginationParams{Page: page, Limit: limit}
}

// Window cuts a page out of an already-materialized result set. The
// catalog queries deliberately sort (or deliberately do not sort) before
// paging, so slicing happens after the façade has shaped the list.
func Window[T any](items []T, params PaginationParams) []T {
	start := (params.Page - 1) * params.Limit
	if start >= len(items) {
		return []T{}
	}
	end := start + params.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
