package models

import (
	"strings"

	"github.com/yhdfc-next/internal/constants"
	"github.com/yhdfc-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// DefaultAdminInput 默认管理员参数
type DefaultAdminInput struct {
	Username string
	Password string
	Email    string
	FullName string
}

// InitDefaultAdmin 初始化默认管理员账号
func InitDefaultAdmin(input DefaultAdminInput) error {
	var count int64
	if err := DB.Model(&Admin{}).Count(&count).Error; err != nil {
		return err
	}

	// 已有管理员时只保证默认 admin 为超级管理员
	if count > 0 {
		if err := DB.Model(&Admin{}).Where("username = ?", "admin").Update("is_super", true).Error; err != nil {
			logger.Warnw("ensure_default_admin_super_failed", "error", err)
		}
		return nil
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		username = "admin"
	}
	password := input.Password
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		fullName = "Administrator"
	}
	admin := Admin{
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		FullName:     fullName,
		PasswordHash: string(hash),
		IsSuper:      strings.EqualFold(username, "admin"),
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "username", username)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}
	return nil
}

// DefaultCategories 预置栏目（ID 与前台栏目映射一致）
func DefaultCategories() []Category {
	return []Category{
		{ID: 1, Name: "Digital Forensic", Slug: constants.CategoryDigitalForensic, Description: "Digital forensic services and insights", SortOrder: 1},
		{ID: 2, Name: "General Forensics", Slug: constants.SubcategoryGeneralForensics, ParentSlug: constants.CategoryDigitalForensic, Description: "General forensic investigations", SortOrder: 2},
		{ID: 3, Name: "Evidence Forensics", Slug: constants.SubcategoryEvidenceForensics, ParentSlug: constants.CategoryDigitalForensic, Description: "Evidence collection and analysis", SortOrder: 3},
		{ID: 4, Name: "Digital Crime", Slug: constants.SubcategoryDigitalCrime, ParentSlug: constants.CategoryDigitalForensic, Description: "Digital crime investigation", SortOrder: 4},
		{ID: 5, Name: "Press", Slug: constants.CategoryPress, Description: "Press coverage and media", SortOrder: 5},
		{ID: 6, Name: "Training", Slug: constants.CategoryTraining, Description: "Training programs and education", SortOrder: 6},
	}
}

// EnsureDefaultCategories 缺失时补齐预置栏目
func EnsureDefaultCategories() error {
	for _, item := range DefaultCategories() {
		var count int64
		if err := DB.Model(&Category{}).Where("slug = ?", item.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		category := item
		if err := DB.Create(&category).Error; err != nil {
			return err
		}
		logger.Infow("default_category_created", "slug", category.Slug, "id", category.ID)
	}
	// 显式写入主键后需要同步 postgres 序列
	if DB.Dialector != nil && DB.Dialector.Name() == "postgres" {
		return DB.Exec("SELECT setval(pg_get_serial_sequence('categories', 'id'), (SELECT COALESCE(MAX(id), 1) FROM categories))").Error
	}
	return nil
}
