package admin

import (
	"errors"

	"github.com/yhdfc-next/internal/http/response"
	"github.com/yhdfc-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadFile 上传图片，优先对象存储，失败时落本地
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.upload_file_missing", nil)
		return
	}

	result, err := h.UploadService.SaveFile(c.Request.Context(), file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileTooLarge):
			respondError(c, response.CodeBadRequest, "error.upload_file_too_large", nil)
		case errors.Is(err, service.ErrInvalidFileType):
			respondError(c, response.CodeBadRequest, "error.upload_type_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.upload_failed", err)
		}
		return
	}
	response.Success(c, result)
}
