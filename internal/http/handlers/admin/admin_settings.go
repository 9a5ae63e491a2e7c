package admin

import (
	"errors"

	"github.com/yhdfc-next/internal/cache"
	handlershared "github.com/yhdfc-next/internal/http/handlers/shared"
	"github.com/yhdfc-next/internal/http/response"
	"github.com/yhdfc-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetSettings 获取站点设置
func (h *Handler) GetSettings(c *gin.Context) {
	setting, err := h.SettingService.GetSiteSetting(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, setting)
}

// UpdateSettings 部分更新站点设置
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req service.SiteSettingPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	setting, err := h.SettingService.PatchSiteSetting(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrSiteSettingInvalid) {
			respondErrorWithMsg(c, response.CodeBadRequest, err.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	_ = cache.Del(c.Request.Context(), handlershared.PublicSettingsCacheKey)
	response.Success(c, setting)
}
