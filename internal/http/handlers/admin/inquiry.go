package admin

import (
	"errors"

	handlershared "github.com/yhdfc-next/internal/http/handlers/shared"
	"github.com/yhdfc-next/internal/http/response"
	"github.com/yhdfc-next/internal/repository"
	"github.com/yhdfc-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateInquiryRequest 更新咨询请求
type UpdateInquiryRequest struct {
	Status       *string `json:"status"`
	UrgencyLevel *string `json:"urgency_level"`
}

// GetAdminInquiries 咨询列表
func (h *Handler) GetAdminInquiries(c *gin.Context) {
	page, limit := handlershared.ParsePagination(c)
	filter := repository.InquiryListFilter{
		Page:     page,
		PageSize: limit,
		IsRead:   handlershared.ParseOptionalBool(c.Query("is_read")),
		Status:   c.Query("status"),
		Urgency:  c.Query("urgency"),
		Search:   c.Query("search"),
	}

	inquiries, total, err := h.InquiryService.List(filter)
	if err != nil {
		respondInquiryError(c, err)
		return
	}
	response.Success(c, response.ListPage("inquiries", inquiries, total, page, limit))
}

// GetInquiryStats 咨询统计
func (h *Handler) GetInquiryStats(c *gin.Context) {
	stats, err := h.InquiryService.Stats()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, stats)
}

// GetAdminInquiry 咨询详情，新咨询打开即标记已读
func (h *Handler) GetAdminInquiry(c *gin.Context) {
	id, ok := parseID(c, "error.inquiry_id_invalid")
	if !ok {
		return
	}
	inquiry, err := h.InquiryService.Get(id)
	if err != nil {
		respondInquiryError(c, err)
		return
	}
	response.Success(c, inquiry)
}

// UpdateInquiry 更新咨询状态/紧急程度
func (h *Handler) UpdateInquiry(c *gin.Context) {
	id, ok := parseID(c, "error.inquiry_id_invalid")
	if !ok {
		return
	}
	var req UpdateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	inquiry, err := h.InquiryService.Update(id, service.UpdateInquiryInput{
		Status:       req.Status,
		UrgencyLevel: req.UrgencyLevel,
	})
	if err != nil {
		respondInquiryError(c, err)
		return
	}
	response.Success(c, inquiry)
}

// DeleteInquiry 删除咨询
func (h *Handler) DeleteInquiry(c *gin.Context) {
	id, ok := parseID(c, "error.inquiry_id_invalid")
	if !ok {
		return
	}
	if err := h.InquiryService.Delete(id); err != nil {
		respondInquiryError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondInquiryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.inquiry_not_found", nil)
	case errors.Is(err, service.ErrInvalidStatus):
		respondError(c, response.CodeBadRequest, "error.inquiry_status_invalid", nil)
	case errors.Is(err, service.ErrInvalidUrgency):
		respondError(c, response.CodeBadRequest, "error.inquiry_urgency_invalid", nil)
	case errors.Is(err, service.ErrInvalidTransition):
		respondError(c, response.CodeBadRequest, "error.inquiry_transition_invalid", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal_error", err)
	}
}
