package public

import (
	"errors"

	"github.com/yhdfc-next/internal/constants"
	"github.com/yhdfc-next/internal/http/response"
	"github.com/yhdfc-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetImageCaptcha 获取图片验证码挑战，?scene=inquiry|login，默认 inquiry
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	scene := c.DefaultQuery("scene", constants.CaptchaSceneInquiry)
	challenge, err := h.CaptchaService.GenerateImageChallenge(scene)
	if err != nil {
		if errors.Is(err, service.ErrCaptchaConfigInvalid) {
			respondError(c, response.CodeBadRequest, "error.captcha_config_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, challenge)
}
