package service

import (
	"strings"

	"github.com/yhdfc-next/internal/filter"
	"github.com/yhdfc-next/internal/models"
	"github.com/yhdfc-next/internal/repository"
	"github.com/yhdfc-next/internal/slug"
	"github.com/yhdfc-next/internal/taxonomy"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	Name        string
	Slug        string
	Description string
	ParentSlug  string
	SortOrder   int
}

// List 获取分类列表，search 在名称/slug/描述上做子串匹配
func (s *CategoryService) List(search string) ([]models.Category, error) {
	categories, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	return filter.Categories(categories, filter.CategoryCriteria{Search: search}, func(c models.Category) filter.CategoryRecord {
		return filter.CategoryRecord{Name: c.Name, Slug: c.Slug, Description: c.Description}
	}), nil
}

// Taxonomy 由当前分类构建栏目映射表
func (s *CategoryService) Taxonomy() (*taxonomy.Table, error) {
	categories, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	sources := make([]taxonomy.Source, 0, len(categories))
	for _, c := range categories {
		sources = append(sources, taxonomy.Source{ID: c.ID, Slug: c.Slug, ParentSlug: c.ParentSlug})
	}
	return taxonomy.FromCategories(sources), nil
}

// Create 创建分类
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	normalized, err := s.normalizeInput(input, nil)
	if err != nil {
		return nil, err
	}
	category := models.Category{
		Name:        normalized.Name,
		Slug:        normalized.Slug,
		Description: normalized.Description,
		ParentSlug:  normalized.ParentSlug,
		SortOrder:   normalized.SortOrder,
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update 更新分类
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	normalized, err := s.normalizeInput(input, &id)
	if err != nil {
		return nil, err
	}

	category.Name = normalized.Name
	category.Slug = normalized.Slug
	category.Description = normalized.Description
	category.ParentSlug = normalized.ParentSlug
	category.SortOrder = normalized.SortOrder
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类，仍有文章引用时拒绝
func (s *CategoryService) Delete(id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	count, err := s.repo.CountPosts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.repo.Delete(id)
}

func (s *CategoryService) normalizeInput(input CategoryInput, excludeID *uint) (CategoryInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.ParentSlug = strings.ToLower(strings.TrimSpace(input.ParentSlug))
	if input.Name == "" {
		return input, ErrCategoryNameRequired
	}
	input.Slug = strings.TrimSpace(input.Slug)
	if input.Slug == "" {
		input.Slug = slug.Slugify(input.Name)
	}
	if !slug.Valid(input.Slug) {
		return input, ErrSlugInvalid
	}
	if input.ParentSlug == input.Slug {
		return input, ErrInvalidInput
	}

	count, err := s.repo.CountByName(input.Name, excludeID)
	if err != nil {
		return input, err
	}
	if count > 0 {
		return input, ErrCategoryExists
	}
	count, err = s.repo.CountBySlug(input.Slug, excludeID)
	if err != nil {
		return input, err
	}
	if count > 0 {
		return input, ErrSlugExists
	}
	return input, nil
}
