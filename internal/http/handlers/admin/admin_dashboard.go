package admin

import (
	"strconv"

	"github.com/yhdfc-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats 仪表盘统计（含环比变化），refresh=true 跳过缓存
func (h *Handler) GetDashboardStats(c *gin.Context) {
	forceRefresh, _ := strconv.ParseBool(c.DefaultQuery("refresh", "false"))
	data, err := h.DashboardService.GetStats(c.Request.Context(), forceRefresh)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, data)
}

// GetDashboardActivity 最近动态（文章与咨询按时间合并）
func (h *Handler) GetDashboardActivity(c *gin.Context) {
	data, err := h.DashboardService.GetActivity()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, data)
}
