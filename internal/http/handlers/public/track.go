package public

import (
	"github.com/yhdfc-next/internal/http/handlers/shared"
	"github.com/yhdfc-next/internal/http/response"
	"github.com/yhdfc-next/internal/service"

	"github.com/gin-gonic/gin"
)

// TrackRequest 访问埋点
type TrackRequest struct {
	PagePath string `json:"page_path"`
}

// TrackVisit 记录页面访问；埋点不影响页面，始终返回成功
func (h *Handler) TrackVisit(c *gin.Context) {
	var req TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Success(c, gin.H{"success": true})
		return
	}

	ip := service.ResolveClientIP(c.GetHeader("X-Forwarded-For"), c.GetHeader("X-Real-IP"), c.Request.RemoteAddr)
	visit, err := h.TrackingService.Track(c.Request.Context(), service.TrackInput{
		PagePath:  req.PagePath,
		ClientIP:  ip,
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
	})
	if err != nil {
		shared.RequestLog(c).Warnw("track_visit_failed", "page_path", req.PagePath, "error", err)
	} else if visit != nil {
		h.Metrics.VisitTracked()
	}
	response.Success(c, gin.H{"success": true})
}
