package admin

import (
	"errors"
	"strings"
	"time"

	"github.com/yhdfc-next/internal/constants"
	handlershared "github.com/yhdfc-next/internal/http/handlers/shared"
	"github.com/yhdfc-next/internal/http/response"
	"github.com/yhdfc-next/internal/service"

	"github.com/gin-gonic/gin"
)

// PostRequest 创建/更新文章请求，未提供的字段在更新时保持不变
type PostRequest struct {
	Title        *string `json:"title"`
	Slug         *string `json:"slug"`
	Excerpt      *string `json:"excerpt"`
	Content      *string `json:"content"`
	ThumbnailURL *string `json:"thumbnail_url"`
	CategoryID   *uint   `json:"category_id"`
	Tags         *string `json:"tags"`
	IsPublished  *bool   `json:"is_published"`
	Source       *string `json:"source"`
	ExternalURL  *string `json:"external_url"`
	TrainingDate *string `json:"training_date"`
	ClientName   *string `json:"client_name"`
}

func (r PostRequest) toInput() (service.PostInput, error) {
	input := service.PostInput{
		Title:        r.Title,
		Slug:         r.Slug,
		Excerpt:      r.Excerpt,
		Content:      r.Content,
		ThumbnailURL: r.ThumbnailURL,
		CategoryID:   r.CategoryID,
		Tags:         r.Tags,
		IsPublished:  r.IsPublished,
		Source:       r.Source,
		ExternalURL:  r.ExternalURL,
		ClientName:   r.ClientName,
	}
	if r.TrainingDate != nil && strings.TrimSpace(*r.TrainingDate) != "" {
		parsed, err := parseTrainingDate(*r.TrainingDate)
		if err != nil {
			return input, err
		}
		input.TrainingDate = &parsed
	}
	return input, nil
}

// parseTrainingDate 接受 2006-01-02 或 RFC3339
func parseTrainingDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(constants.DateLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// GetAdminPosts 获取文章列表（含草稿）
func (h *Handler) GetAdminPosts(c *gin.Context) {
	page, limit := handlershared.ParsePagination(c)
	query := service.PostQuery{
		Page:       page,
		PageSize:   limit,
		CategoryID: handlershared.ParseOptionalUint(c.Query("category_id")),
		Category:   c.Query("category"),
		Search:     c.Query("search"),
		Status:     c.Query("status"),
	}

	posts, total, err := h.PostService.ListAdmin(query)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, response.ListPage("posts", posts, total, page, limit))
}

// GetAdminPost 获取文章详情
func (h *Handler) GetAdminPost(c *gin.Context) {
	id, ok := parseID(c, "error.post_id_invalid")
	if !ok {
		return
	}
	post, err := h.PostService.GetByID(id)
	if err != nil {
		respondPostError(c, err)
		return
	}
	response.Success(c, post)
}

// CreatePost 创建文章
func (h *Handler) CreatePost(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	post, err := h.PostService.Create(c.Request.Context(), input)
	if err != nil {
		respondPostError(c, err)
		return
	}
	response.Success(c, post)
}

// UpdatePost 部分更新文章
func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := parseID(c, "error.post_id_invalid")
	if !ok {
		return
	}
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	post, err := h.PostService.Update(c.Request.Context(), id, input)
	if err != nil {
		respondPostError(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost 删除文章
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := parseID(c, "error.post_id_invalid")
	if !ok {
		return
	}
	if err := h.PostService.Delete(c.Request.Context(), id); err != nil {
		respondPostError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondPostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.post_not_found", nil)
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, response.CodeBadRequest, "error.slug_exists", nil)
	case errors.Is(err, service.ErrSlugInvalid):
		respondError(c, response.CodeBadRequest, "error.slug_invalid", nil)
	case errors.Is(err, service.ErrPostTitleRequired):
		respondError(c, response.CodeBadRequest, "error.post_title_required", nil)
	case errors.Is(err, service.ErrPostContentRequired):
		respondError(c, response.CodeBadRequest, "error.post_content_required", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeBadRequest, "error.category_not_found", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal_error", err)
	}
}
