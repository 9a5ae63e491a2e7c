package repository

import (
	"time"

	"github.com/yhdfc-next/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview(window DashboardWindow) (DashboardOverviewRow, error)
}

// DashboardWindow 仪表盘统计时间边界
type DashboardWindow struct {
	MonthStart     time.Time // 本月起点
	LastMonthStart time.Time // 上月起点
	WeekStart      time.Time // 近 7 天起点
	LastWeekStart  time.Time // 再往前 7 天起点
}

// DashboardOverviewRow 仪表盘总览原始统计结果
type DashboardOverviewRow struct {
	TotalPosts         int64
	PublishedPosts     int64
	PostsThisMonth     int64
	PostsLastMonth     int64
	TotalInquiries     int64
	InquiriesThisMonth int64
	InquiriesLastMonth int64
	TotalViews         int64
	VisitsThisMonth    int64
	VisitsLastMonth    int64
	PostsThisWeek      int64
	PostsLastWeek      int64
}

// GormDashboardRepository GORM 实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 聚合文章、咨询、访问统计
func (r *GormDashboardRepository) GetOverview(window DashboardWindow) (DashboardOverviewRow, error) {
	var row DashboardOverviewRow

	counts := []struct {
		model interface{}
		query func(*gorm.DB) *gorm.DB
		dest  *int64
	}{
		{&models.Post{}, nil, &row.TotalPosts},
		{&models.Post{}, func(q *gorm.DB) *gorm.DB { return q.Where("is_published = ?", true) }, &row.PublishedPosts},
		{&models.Post{}, since(window.MonthStart), &row.PostsThisMonth},
		{&models.Post{}, between(window.LastMonthStart, window.MonthStart), &row.PostsLastMonth},
		{&models.Post{}, since(window.WeekStart), &row.PostsThisWeek},
		{&models.Post{}, between(window.LastWeekStart, window.WeekStart), &row.PostsLastWeek},
		{&models.Inquiry{}, nil, &row.TotalInquiries},
		{&models.Inquiry{}, since(window.MonthStart), &row.InquiriesThisMonth},
		{&models.Inquiry{}, between(window.LastMonthStart, window.MonthStart), &row.InquiriesLastMonth},
		{&models.Visit{}, since(window.MonthStart), &row.VisitsThisMonth},
		{&models.Visit{}, between(window.LastMonthStart, window.MonthStart), &row.VisitsLastMonth},
	}
	for _, item := range counts {
		query := r.db.Model(item.model)
		if item.query != nil {
			query = item.query(query)
		}
		if err := query.Count(item.dest).Error; err != nil {
			return row, err
		}
	}

	var views struct{ Total int64 }
	if err := r.db.Model(&models.Post{}).Select("COALESCE(SUM(view_count), 0) AS total").Scan(&views).Error; err != nil {
		return row, err
	}
	row.TotalViews = views.Total
	return row, nil
}

func since(startAt time.Time) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB { return q.Where("created_at >= ?", startAt) }
}

func between(startAt, endAt time.Time) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB { return q.Where("created_at >= ? AND created_at < ?", startAt, endAt) }
}
