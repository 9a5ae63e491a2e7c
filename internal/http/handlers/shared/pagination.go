package shared

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// NormalizePagination 归一化分页参数。
func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// ParsePagination 读取 page/limit 查询参数，兼容 page_size。
func ParsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	raw := c.Query("limit")
	if raw == "" {
		raw = c.Query("page_size")
	}
	limit, _ := strconv.Atoi(raw)
	return NormalizePagination(page, limit)
}
