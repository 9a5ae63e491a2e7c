package repository

import (
	"time"

	"github.com/yhdfc-next/internal/models"

	"gorm.io/gorm"
)

// VisitRepository 访问记录数据访问接口
type VisitRepository interface {
	Create(visit *models.Visit) error
	UpdateGeo(id uint, country, countryCode, city string) error
	Stats(window VisitWindow) (VisitStatsRow, error)
	TopCountries(limit int) ([]VisitCountryRow, error)
	Recent(limit int) ([]models.Visit, error)
	CountCreatedBetween(startAt, endAt time.Time) (int64, error)
	Daily(startAt time.Time) ([]VisitDailyRow, error)
}

// GormVisitRepository GORM 实现
type GormVisitRepository struct {
	db *gorm.DB
}

// NewVisitRepository 创建访问记录仓库
func NewVisitRepository(db *gorm.DB) *GormVisitRepository {
	return &GormVisitRepository{db: db}
}

// Create 写入访问记录
func (r *GormVisitRepository) Create(visit *models.Visit) error {
	return r.db.Create(visit).Error
}

// UpdateGeo 回填地理位置
func (r *GormVisitRepository) UpdateGeo(id uint, country, countryCode, city string) error {
	return r.db.Model(&models.Visit{}).Where("id = ?", id).Updates(map[string]interface{}{
		"country":      country,
		"country_code": countryCode,
		"city":         city,
	}).Error
}

// Stats 访问总量、独立访客、今日/本周/本月访问量
func (r *GormVisitRepository) Stats(window VisitWindow) (VisitStatsRow, error) {
	var row VisitStatsRow
	base := func() *gorm.DB { return r.db.Model(&models.Visit{}) }
	if err := base().Count(&row.TotalVisits).Error; err != nil {
		return row, err
	}
	if err := base().Distinct("ip_masked").Count(&row.UniqueVisitors).Error; err != nil {
		return row, err
	}
	if err := base().Where("created_at >= ?", window.DayStart).Count(&row.VisitsToday).Error; err != nil {
		return row, err
	}
	if err := base().Where("created_at >= ?", window.WeekStart).Count(&row.VisitsThisWeek).Error; err != nil {
		return row, err
	}
	if err := base().Where("created_at >= ?", window.MonthStart).Count(&row.VisitsThisMonth).Error; err != nil {
		return row, err
	}
	return row, nil
}

// TopCountries 按访问量排序的国家
func (r *GormVisitRepository) TopCountries(limit int) ([]VisitCountryRow, error) {
	var rows []VisitCountryRow
	err := r.db.Model(&models.Visit{}).
		Select("country, MAX(country_code) AS country_code, COUNT(*) AS visits").
		Where("country IS NOT NULL AND country <> ''").
		Group("country").
		Order("visits DESC, country ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Recent 最近的访问记录
func (r *GormVisitRepository) Recent(limit int) ([]models.Visit, error) {
	var visits []models.Visit
	if err := r.db.Order("created_at DESC, id DESC").Limit(limit).Find(&visits).Error; err != nil {
		return nil, err
	}
	return visits, nil
}

// CountCreatedBetween 统计时间区间 [startAt, endAt) 内的访问量
func (r *GormVisitRepository) CountCreatedBetween(startAt, endAt time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Visit{}).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Count(&count).Error
	return count, err
}

// Daily 按天聚合访问量
func (r *GormVisitRepository) Daily(startAt time.Time) ([]VisitDailyRow, error) {
	var rows []VisitDailyRow
	expr := dayExpr(r.db, "created_at")
	err := r.db.Model(&models.Visit{}).
		Select(expr+" AS day, COUNT(*) AS visits").
		Where("created_at >= ?", startAt).
		Group(expr).
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
