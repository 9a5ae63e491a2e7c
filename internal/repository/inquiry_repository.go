package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/yhdfc-next/internal/constants"
	"github.com/yhdfc-next/internal/models"

	"gorm.io/gorm"
)

// InquiryRepository 咨询数据访问接口
type InquiryRepository interface {
	List(filter InquiryListFilter) ([]models.Inquiry, int64, error)
	GetByID(id uint) (*models.Inquiry, error)
	Create(inquiry *models.Inquiry) error
	UpdateFields(id uint, updates map[string]interface{}) error
	MarkReadIfNew(id uint, now time.Time) (bool, error)
	Delete(id uint) (bool, error)
	Stats(dayStart time.Time) (InquiryStatsRow, error)
	CountCreatedBetween(startAt, endAt time.Time) (int64, error)
	Latest(limit int) ([]models.Inquiry, error)
}

// GormInquiryRepository GORM 实现
type GormInquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository 创建咨询仓库
func NewInquiryRepository(db *gorm.DB) *GormInquiryRepository {
	return &GormInquiryRepository{db: db}
}

// List 咨询列表，按创建时间倒序
func (r *GormInquiryRepository) List(filter InquiryListFilter) ([]models.Inquiry, int64, error) {
	query := r.db.Model(&models.Inquiry{})
	if filter.IsRead != nil {
		query = query.Where("is_read = ?", *filter.IsRead)
	}
	if status := strings.TrimSpace(filter.Status); status != "" && !strings.EqualFold(status, constants.FilterAll) {
		query = query.Where("status = ?", strings.ToLower(status))
	}
	if urgency := strings.TrimSpace(filter.Urgency); urgency != "" && !strings.EqualFold(urgency, constants.FilterAll) {
		query = query.Where("urgency_level = ?", strings.ToLower(urgency))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildLikeCondition(r.db, "name", "email", "subject", "message")
		query = query.Where(condition, repeatLikeArgs(likePattern(r.db, search), argCount)...)
	}
	return listPage[models.Inquiry](query, filter.Page, filter.PageSize, "")
}

// GetByID 根据 ID 获取咨询
func (r *GormInquiryRepository) GetByID(id uint) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	if err := r.db.First(&inquiry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inquiry, nil
}

// Create 创建咨询
func (r *GormInquiryRepository) Create(inquiry *models.Inquiry) error {
	return r.db.Create(inquiry).Error
}

// UpdateFields 局部更新
func (r *GormInquiryRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Inquiry{}).Where("id = ?", id).Updates(updates).Error
}

// MarkReadIfNew 仅当状态为 new 时标记为已读，返回是否发生变更
func (r *GormInquiryRepository) MarkReadIfNew(id uint, now time.Time) (bool, error) {
	result := r.db.Model(&models.Inquiry{}).
		Where("id = ? AND status = ?", id, constants.InquiryStatusNew).
		Updates(map[string]interface{}{
			"status":     constants.InquiryStatusRead,
			"is_read":    true,
			"updated_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete 删除咨询，返回是否存在
func (r *GormInquiryRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.Inquiry{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Stats 咨询总数、未读数、今日新增
func (r *GormInquiryRepository) Stats(dayStart time.Time) (InquiryStatsRow, error) {
	var row InquiryStatsRow
	if err := r.db.Model(&models.Inquiry{}).Count(&row.Total).Error; err != nil {
		return row, err
	}
	if err := r.db.Model(&models.Inquiry{}).Where("is_read = ?", false).Count(&row.Unread).Error; err != nil {
		return row, err
	}
	if err := r.db.Model(&models.Inquiry{}).Where("created_at >= ?", dayStart).Count(&row.Today).Error; err != nil {
		return row, err
	}
	return row, nil
}

// CountCreatedBetween 统计时间区间 [startAt, endAt) 内的咨询数量
func (r *GormInquiryRepository) CountCreatedBetween(startAt, endAt time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Inquiry{}).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Count(&count).Error
	return count, err
}

// Latest 最近的咨询
func (r *GormInquiryRepository) Latest(limit int) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	if err := r.db.Order("created_at DESC, id DESC").Limit(limit).Find(&inquiries).Error; err != nil {
		return nil, err
	}
	return inquiries, nil
}
