package public

import (
	"errors"

	handlershared "github.com/yhdfc-next/internal/http/handlers/shared"
	"github.com/yhdfc-next/internal/http/response"
	"github.com/yhdfc-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetPosts 已发布文章列表，category 接受 slug 或名称
func (h *Handler) GetPosts(c *gin.Context) {
	page, limit := handlershared.ParsePagination(c)
	query := service.PostQuery{
		Page:       page,
		PageSize:   limit,
		CategoryID: handlershared.ParseOptionalUint(c.Query("category_id")),
		Category:   c.Query("category"),
		Search:     c.Query("search"),
	}

	posts, total, err := h.PostService.ListPublic(c.Request.Context(), query)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, response.ListPage("posts", posts, total, page, limit))
}

// GetPostBySlug 文章详情（累加浏览量）
func (h *Handler) GetPostBySlug(c *gin.Context) {
	post, err := h.PostService.GetPublicBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.post_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, post)
}

// GetCategories 分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List("")
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, categories)
}

// GetTaxonomy 栏目映射表，前端据此解析栏目 ID 与文章路径
func (h *Handler) GetTaxonomy(c *gin.Context) {
	table, err := h.CategoryService.Taxonomy()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, table.Entries())
}
