package public

import (
	"time"

	"github.com/yhdfc-next/internal/cache"
	handlershared "github.com/yhdfc-next/internal/http/handlers/shared"
	"github.com/yhdfc-next/internal/http/response"
	"github.com/yhdfc-next/internal/service"

	"github.com/gin-gonic/gin"
)

const publicSettingsCacheTTL = 60 * time.Second

// GetPublicSettings 前台可见的站点设置与验证码开关
func (h *Handler) GetPublicSettings(c *gin.Context) {
	ctx := c.Request.Context()
	var cached map[string]interface{}
	if hit, err := cache.GetJSON(ctx, handlershared.PublicSettingsCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	site, err := h.SettingService.GetSiteSetting(ctx)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	captcha, err := h.CaptchaService.GetPublicSetting()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}

	data := map[string]interface{}(service.PublicSiteSetting(site))
	data["captcha"] = captcha
	data["site_name"] = h.Config.Site.Name
	if err := cache.SetJSON(ctx, handlershared.PublicSettingsCacheKey, data, publicSettingsCacheTTL); err != nil {
		handlershared.RequestLog(c).Warnw("public_settings_cache_write_failed", "error", err)
	}
	response.Success(c, data)
}
