package service

import (
	"context"
	"strings"
	"time"

	"github.com/yhdfc-next/internal/cache"
	"github.com/yhdfc-next/internal/constants"
	"github.com/yhdfc-next/internal/logger"
	"github.com/yhdfc-next/internal/models"
	"github.com/yhdfc-next/internal/repository"
	"github.com/yhdfc-next/internal/slug"

	"github.com/microcosm-cc/bluemonday"
)

const fallbackPostSlug = "post"

var (
	postContentPolicy = bluemonday.UGCPolicy()
	postPlainPolicy   = bluemonday.StrictPolicy()
)

// PostService 文章业务服务
type PostService struct {
	repo         repository.PostRepository
	categoryRepo repository.CategoryRepository
	listTTL      time.Duration
}

// NewPostService 创建文章服务
func NewPostService(repo repository.PostRepository, categoryRepo repository.CategoryRepository, listTTL time.Duration) *PostService {
	return &PostService{repo: repo, categoryRepo: categoryRepo, listTTL: listTTL}
}

// PostInput 创建/更新文章输入，nil 字段在更新时保持原值
type PostInput struct {
	Title        *string
	Slug         *string
	Excerpt      *string
	Content      *string
	ThumbnailURL *string
	CategoryID   *uint
	Tags         *string
	IsPublished  *bool
	Source       *string
	ExternalURL  *string
	TrainingDate *time.Time
	ClientName   *string
}

// PostQuery 文章列表查询条件
type PostQuery struct {
	Page       int
	PageSize   int
	CategoryID uint
	Category   string // 分类 slug 或名称，"blog" 视为 digital-forensic
	Search     string
	Status     string // 仅后台使用：published/draft/all
}

type cachedPostList struct {
	Posts []models.Post `json:"posts"`
	Total int64         `json:"total"`
}

// ListPublic 获取公开文章列表（已发布，按创建时间倒序）
func (s *PostService) ListPublic(ctx context.Context, query PostQuery) ([]models.Post, int64, error) {
	var key string
	if s.listTTL > 0 && cache.Enabled() {
		if k, err := cache.PostListKey(ctx, query.Page, query.PageSize, query.CategoryID, query.Category, query.Search); err == nil {
			key = k
			var cached cachedPostList
			if hit, err := cache.GetJSON(ctx, key, &cached); err == nil && hit {
				return cached.Posts, cached.Total, nil
			}
		}
	}

	posts, total, err := s.list(query, true)
	if err != nil {
		return nil, 0, err
	}
	if key != "" {
		if err := cache.SetJSON(ctx, key, cachedPostList{Posts: posts, Total: total}, s.listTTL); err != nil {
			logger.Warnw("post_list_cache_write_failed", "key", key, "error", err)
		}
	}
	return posts, total, nil
}

// ListAdmin 获取后台文章列表（含草稿）
func (s *PostService) ListAdmin(query PostQuery) ([]models.Post, int64, error) {
	return s.list(query, false)
}

func (s *PostService) list(query PostQuery, onlyPublished bool) ([]models.Post, int64, error) {
	categoryIDs, matched, err := s.resolveCategoryFilter(query.CategoryID, query.Category)
	if err != nil {
		return nil, 0, err
	}
	if !matched {
		return []models.Post{}, 0, nil
	}
	filter := repository.PostListFilter{
		Page:          query.Page,
		PageSize:      query.PageSize,
		CategoryIDs:   categoryIDs,
		Search:        query.Search,
		OnlyPublished: onlyPublished,
		Status:        query.Status,
		WithCategory:  true,
	}
	return s.repo.List(filter)
}

// resolveCategoryFilter 将分类条件解析为 ID 列表，上级栏目包含其子分类
// matched=false 表示条件无法命中任何分类
func (s *PostService) resolveCategoryFilter(categoryID uint, category string) ([]uint, bool, error) {
	if categoryID > 0 {
		return []uint{categoryID}, true, nil
	}
	value := strings.ToLower(strings.TrimSpace(category))
	if value == "" || value == constants.FilterAll {
		return nil, true, nil
	}
	if value == constants.CategoryBlogAlias {
		value = constants.CategoryDigitalForensic
	}
	found, err := s.categoryRepo.FindBySlugOrName(value)
	if err != nil {
		return nil, false, err
	}
	if found == nil {
		return nil, false, nil
	}
	ids := []uint{found.ID}
	children, err := s.categoryRepo.ListChildren(found.Slug)
	if err != nil {
		return nil, false, err
	}
	for _, child := range children {
		ids = append(ids, child.ID)
	}
	return ids, true, nil
}

// GetPublicBySlug 获取已发布文章并累加浏览量
func (s *PostService) GetPublicBySlug(slugValue string) (*models.Post, error) {
	post, err := s.repo.GetBySlug(strings.TrimSpace(slugValue), true)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if err := s.repo.IncrementViewCount(post.ID); err != nil {
		logger.Warnw("post_view_count_increment_failed", "post_id", post.ID, "error", err)
	} else {
		post.ViewCount++
	}
	return post, nil
}

// GetByID 后台获取文章
func (s *PostService) GetByID(id uint) (*models.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// Create 创建文章，slug 为空时由标题生成并自动去重
func (s *PostService) Create(ctx context.Context, input PostInput) (*models.Post, error) {
	title := trimmedValue(input.Title)
	if title == "" {
		return nil, ErrPostTitleRequired
	}
	content := postContentPolicy.Sanitize(trimmedValue(input.Content))
	if strings.TrimSpace(content) == "" {
		return nil, ErrPostContentRequired
	}
	if input.CategoryID == nil || *input.CategoryID == 0 {
		return nil, ErrCategoryNotFound
	}
	if err := s.ensureCategory(*input.CategoryID); err != nil {
		return nil, err
	}
	postSlug, err := s.resolveSlug(trimmedValue(input.Slug), title, nil)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:      title,
		Slug:       postSlug,
		Content:    content,
		CategoryID: *input.CategoryID,
	}
	applyPostOptionalFields(post, input)
	if err := s.repo.Create(post); err != nil {
		return nil, err
	}
	s.invalidateLists(ctx)
	return s.GetByID(post.ID)
}

// Update 部分更新文章
func (s *PostService) Update(ctx context.Context, id uint, input PostInput) (*models.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrPostTitleRequired
		}
		post.Title = title
	}
	if input.Content != nil {
		content := postContentPolicy.Sanitize(strings.TrimSpace(*input.Content))
		if strings.TrimSpace(content) == "" {
			return nil, ErrPostContentRequired
		}
		post.Content = content
	}
	if input.CategoryID != nil && *input.CategoryID != post.CategoryID {
		if err := s.ensureCategory(*input.CategoryID); err != nil {
			return nil, err
		}
		post.CategoryID = *input.CategoryID
	}
	if input.Slug != nil {
		postSlug, err := s.resolveSlug(strings.TrimSpace(*input.Slug), post.Title, &post.ID)
		if err != nil {
			return nil, err
		}
		post.Slug = postSlug
	}
	applyPostOptionalFields(post, input)
	post.Category = nil

	if err := s.repo.Update(post); err != nil {
		return nil, err
	}
	s.invalidateLists(ctx)
	return s.GetByID(post.ID)
}

// Delete 删除文章（物理删除）
func (s *PostService) Delete(ctx context.Context, id uint) error {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidateLists(ctx)
	return nil
}

func (s *PostService) ensureCategory(id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return nil
}

// resolveSlug 显式 slug 必须规范且未被占用；空值由标题派生并追加数字后缀去重
func (s *PostService) resolveSlug(explicit, title string, excludeID *uint) (string, error) {
	exists := func(candidate string) (bool, error) {
		count, err := s.repo.CountBySlug(candidate, excludeID)
		return count > 0, err
	}
	if explicit != "" {
		if !slug.Valid(explicit) {
			return "", ErrSlugInvalid
		}
		taken, err := exists(explicit)
		if err != nil {
			return "", err
		}
		if taken {
			return "", ErrSlugExists
		}
		return explicit, nil
	}
	base := slug.Slugify(title)
	if base == "" {
		base = fallbackPostSlug
	}
	return slug.Unique(base, exists)
}

func (s *PostService) invalidateLists(ctx context.Context) {
	if !cache.Enabled() {
		return
	}
	if err := cache.InvalidatePostLists(ctx); err != nil {
		logger.Warnw("post_list_cache_invalidate_failed", "error", err)
	}
}

func applyPostOptionalFields(post *models.Post, input PostInput) {
	if input.Excerpt != nil {
		post.Excerpt = postPlainPolicy.Sanitize(strings.TrimSpace(*input.Excerpt))
	}
	if input.ThumbnailURL != nil {
		post.ThumbnailURL = strings.TrimSpace(*input.ThumbnailURL)
	}
	if input.Tags != nil {
		post.Tags = normalizeTags(*input.Tags)
	}
	if input.IsPublished != nil {
		post.IsPublished = *input.IsPublished
	}
	if input.Source != nil {
		post.Source = strings.TrimSpace(*input.Source)
	}
	if input.ExternalURL != nil {
		post.ExternalURL = strings.TrimSpace(*input.ExternalURL)
	}
	if input.TrainingDate != nil {
		date := *input.TrainingDate
		post.TrainingDate = &date
	}
	if input.ClientName != nil {
		post.ClientName = strings.TrimSpace(*input.ClientName)
	}
}

// normalizeTags 逗号分隔标签去空白、去重
func normalizeTags(raw string) string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		tags = append(tags, tag)
	}
	return strings.Join(tags, ",")
}

func trimmedValue(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}
