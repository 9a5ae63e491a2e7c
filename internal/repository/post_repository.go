package repository

import (
	"errors"
	"strings"

	"github.com/yhdfc-next/internal/constants"
	"github.com/yhdfc-next/internal/models"

	"gorm.io/gorm"
)

// PostRepository 文章数据访问接口
type PostRepository interface {
	List(filter PostListFilter) ([]models.Post, int64, error)
	GetBySlug(slug string, onlyPublished bool) (*models.Post, error)
	GetByID(id uint) (*models.Post, error)
	Create(post *models.Post) error
	Update(post *models.Post) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
	IncrementViewCount(id uint) error
	Latest(limit int) ([]models.Post, error)
	ListPublishedForSitemap() ([]models.Post, error)
}

// GormPostRepository GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建文章仓库
func NewPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// List 文章列表
func (r *GormPostRepository) List(filter PostListFilter) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{})

	switch {
	case filter.OnlyPublished:
		query = query.Where("is_published = ?", true)
	case strings.EqualFold(filter.Status, constants.PostStatusPublished):
		query = query.Where("is_published = ?", true)
	case strings.EqualFold(filter.Status, constants.PostStatusDraft):
		query = query.Where("is_published = ?", false)
	}
	if len(filter.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filter.CategoryIDs)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildLikeCondition(r.db, "title", "content", "excerpt", "tags")
		query = query.Where(condition, repeatLikeArgs(likePattern(r.db, search), argCount)...)
	}

	var preload []string
	if filter.WithCategory {
		preload = append(preload, "Category")
	}
	return listPage[models.Post](query, filter.Page, filter.PageSize, filter.OrderBy, preload...)
}

// GetBySlug 根据 slug 获取文章
func (r *GormPostRepository) GetBySlug(slug string, onlyPublished bool) (*models.Post, error) {
	query := r.db.Preload("Category").Where("slug = ?", slug)
	if onlyPublished {
		query = query.Where("is_published = ?", true)
	}

	var post models.Post
	if err := query.First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetByID 根据 ID 获取文章
func (r *GormPostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Category").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create 创建文章
func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Omit("Category").Create(post).Error
}

// Update 更新文章
func (r *GormPostRepository) Update(post *models.Post) error {
	return r.db.Omit("Category").Save(post).Error
}

// Delete 删除文章（物理删除）
func (r *GormPostRepository) Delete(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

// CountBySlug 统计 slug 数量
func (r *GormPostRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Post{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IncrementViewCount 浏览量原子自增
func (r *GormPostRepository) IncrementViewCount(id uint) error {
	return r.db.Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// Latest 最近创建的文章
func (r *GormPostRepository) Latest(limit int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.Order("created_at DESC, id DESC").Limit(limit).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPublishedForSitemap 已发布文章（仅加载生成 URL 需要的字段）
func (r *GormPostRepository) ListPublishedForSitemap() ([]models.Post, error) {
	var posts []models.Post
	err := r.db.
		Select("id", "slug", "category_id", "updated_at", "created_at").
		Preload("Category").
		Where("is_published = ?", true).
		Order("updated_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
