package admin

import (
	"errors"
	"strings"

	"github.com/yhdfc-next/internal/http/response"
	"github.com/yhdfc-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetSMTPSettings 获取 SMTP 配置（密码脱敏）
func (h *Handler) GetSMTPSettings(c *gin.Context) {
	setting, err := h.SettingService.GetSMTPSetting(h.Config.Email)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, service.MaskSMTPSettingForAdmin(setting))
}

// UpdateSMTPSettings 更新 SMTP 配置并立即应用到邮件服务
func (h *Handler) UpdateSMTPSettings(c *gin.Context) {
	var req service.SMTPSettingPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	setting, err := h.SettingService.PatchSMTPSetting(h.Config.Email, req)
	if err != nil {
		if errors.Is(err, service.ErrSMTPConfigInvalid) {
			respondErrorWithMsg(c, response.CodeBadRequest, err.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}

	h.Config.Email = service.SMTPSettingToConfig(setting)
	if h.EmailService != nil {
		h.EmailService.SetConfig(&h.Config.Email)
	}
	response.Success(c, service.MaskSMTPSettingForAdmin(setting))
}

// SMTPTestSendRequest SMTP 测试发送请求
type SMTPTestSendRequest struct {
	ToEmail string `json:"to_email" binding:"required"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// TestSMTPSettings 使用当前 SMTP 配置发送测试邮件
func (h *Handler) TestSMTPSettings(c *gin.Context) {
	var req SMTPTestSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	toEmail := strings.TrimSpace(req.ToEmail)
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = "SMTP test"
	}
	body := req.Body
	if strings.TrimSpace(body) == "" {
		body = "SMTP settings are working."
	}

	setting, err := h.SettingService.GetSMTPSetting(h.Config.Email)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	configForSend := service.SMTPSettingToConfig(setting)
	configForSend.Enabled = true
	sender := service.NewEmailService(&configForSend)

	if err := sender.SendCustomEmail(c.Request.Context(), toEmail, subject, body); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "error.inquiry_email_invalid", nil)
		case errors.Is(err, service.ErrEmailRecipientRejected),
			errors.Is(err, service.ErrEmailServiceNotConfigured):
			respondError(c, response.CodeBadRequest, "error.smtp_invalid", err)
		default:
			respondError(c, response.CodeInternal, "error.email_send_failed", err)
		}
		return
	}
	response.Success(c, gin.H{"sent": true})
}
