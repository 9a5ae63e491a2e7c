package public

import (
	"net/http"

	"github.com/yhdfc-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// GetSitemap sitemap.xml
func (h *Handler) GetSitemap(c *gin.Context) {
	body, err := h.SitemapService.SitemapXML()
	if err != nil {
		shared.RequestLog(c).Errorw("sitemap_build_failed", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// GetRobots robots.txt
func (h *Handler) GetRobots(c *gin.Context) {
	c.String(http.StatusOK, h.SitemapService.RobotsTXT())
}
