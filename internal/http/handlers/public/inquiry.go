package public

import (
	"errors"

	"github.com/yhdfc-next/internal/constants"
	handlershared "github.com/yhdfc-next/internal/http/handlers/shared"
	"github.com/yhdfc-next/internal/http/response"
	"github.com/yhdfc-next/internal/i18n"
	"github.com/yhdfc-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateInquiryRequest 联系表单提交
type CreateInquiryRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	CountryCode  string `json:"country_code"`
	Phone        string `json:"phone"`
	Company      string `json:"company"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
	ServiceType  string `json:"service_type"`
	UrgencyLevel string `json:"urgency_level"`
	handlershared.CaptchaPayloadRequest
}

// CreateInquiry 提交咨询
func (h *Handler) CreateInquiry(c *gin.Context) {
	var req CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !handlershared.VerifyCaptcha(c, h.CaptchaService, constants.CaptchaSceneInquiry, req.CaptchaPayloadRequest) {
		return
	}

	inquiry, err := h.InquiryService.Create(c.Request.Context(), service.CreateInquiryInput{
		Name:         req.Name,
		Email:        req.Email,
		CountryCode:  req.CountryCode,
		Phone:        req.Phone,
		Company:      req.Company,
		Subject:      req.Subject,
		Message:      req.Message,
		ServiceType:  req.ServiceType,
		UrgencyLevel: req.UrgencyLevel,
		Locale:       i18n.ResolveLocale(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInquiryRequiredFields):
			respondError(c, response.CodeBadRequest, "error.inquiry_required_fields", nil)
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "error.inquiry_email_invalid", nil)
		case errors.Is(err, service.ErrInvalidUrgency):
			respondError(c, response.CodeBadRequest, "error.inquiry_urgency_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal_error", err)
		}
		return
	}
	h.Metrics.InquiryCreated()
	response.Success(c, inquiry)
}
