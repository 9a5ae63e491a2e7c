package admin

import (
	"strconv"

	"github.com/yhdfc-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

func queryLimit(c *gin.Context) int {
	limit, _ := strconv.Atoi(c.Query("limit"))
	return limit
}

// GetAnalyticsStats 访问概览
func (h *Handler) GetAnalyticsStats(c *gin.Context) {
	stats, err := h.AnalyticsService.Stats()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, stats)
}

// GetAnalyticsCountries 按国家聚合的访问量
func (h *Handler) GetAnalyticsCountries(c *gin.Context) {
	countries, err := h.AnalyticsService.Countries(queryLimit(c))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, countries)
}

// GetAnalyticsRecent 最近访问记录
func (h *Handler) GetAnalyticsRecent(c *gin.Context) {
	visits, err := h.AnalyticsService.Recent(queryLimit(c))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, visits)
}

// GetAnalyticsDaily 每日访问趋势，days 默认 30
func (h *Handler) GetAnalyticsDaily(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))
	daily, err := h.AnalyticsService.Daily(days)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, daily)
}
