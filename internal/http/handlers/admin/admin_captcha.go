package admin

import (
	"errors"

	"github.com/yhdfc-next/internal/cache"
	handlershared "github.com/yhdfc-next/internal/http/handlers/shared"
	"github.com/yhdfc-next/internal/http/response"
	"github.com/yhdfc-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCaptchaSettings 获取验证码配置
func (h *Handler) GetCaptchaSettings(c *gin.Context) {
	setting, err := h.SettingService.GetCaptchaSetting(h.Config.Captcha)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, service.CaptchaSettingToMap(setting))
}

// UpdateCaptchaSettings 更新验证码配置
func (h *Handler) UpdateCaptchaSettings(c *gin.Context) {
	var req service.CaptchaSettingPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	setting, err := h.SettingService.PatchCaptchaSetting(h.Config.Captcha, req)
	if err != nil {
		if errors.Is(err, service.ErrCaptchaConfigInvalid) {
			respondErrorWithMsg(c, response.CodeBadRequest, err.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	h.CaptchaService.InvalidateCache()
	_ = cache.Del(c.Request.Context(), handlershared.PublicSettingsCacheKey)
	response.Success(c, service.CaptchaSettingToMap(setting))
}
