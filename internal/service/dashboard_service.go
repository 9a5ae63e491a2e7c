package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/yhdfc-next/internal/cache"
	"github.com/yhdfc-next/internal/logger"
	"github.com/yhdfc-next/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	dashboardCacheTTL       = 45 * time.Second
	dashboardActivitySource = 5
	dashboardActivityLimit  = 10
	activityTitleMaxRunes   = 50
)

// 变化趋势类型
const (
	ChangePositive = "positive"
	ChangeNegative = "negative"
	ChangeNeutral  = "neutral"
)

// DashboardService 仪表盘服务
// 说明：聚合后台首页的内容与咨询数据。
type DashboardService struct {
	repo        repository.DashboardRepository
	postRepo    repository.PostRepository
	inquiryRepo repository.InquiryRepository
	now         func() time.Time
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(repo repository.DashboardRepository, postRepo repository.PostRepository, inquiryRepo repository.InquiryRepository) *DashboardService {
	return &DashboardService{repo: repo, postRepo: postRepo, inquiryRepo: inquiryRepo, now: time.Now}
}

// DashboardStats 仪表盘计数
type DashboardStats struct {
	TotalPosts     int64 `json:"totalPosts"`
	PublishedPosts int64 `json:"publishedPosts"`
	TotalInquiries int64 `json:"totalInquiries"`
	TotalViews     int64 `json:"totalViews"`
	RecentActivity int64 `json:"recentActivity"`
}

// DashboardChange 环比变化
type DashboardChange struct {
	Percentage string `json:"percentage"`
	Type       string `json:"type"`
}

// DashboardChanges 各项环比
type DashboardChanges struct {
	Posts     DashboardChange `json:"posts"`
	Inquiries DashboardChange `json:"inquiries"`
	Views     DashboardChange `json:"views"`
	Activity  DashboardChange `json:"activity"`
}

// DashboardStatsResponse 仪表盘统计响应
type DashboardStatsResponse struct {
	Stats   DashboardStats   `json:"stats"`
	Changes DashboardChanges `json:"changes"`
}

// DashboardActivity 动态条目
type DashboardActivity struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Time      string    `json:"time"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// GetStats 获取仪表盘统计
func (s *DashboardService) GetStats(ctx context.Context, forceRefresh bool) (*DashboardStatsResponse, error) {
	window := dashboardWindow(s.now())
	cacheKey := fmt.Sprintf("dashboard:stats:%d", window.MonthStart.Unix())
	if !forceRefresh {
		var cached DashboardStatsResponse
		if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	row, err := s.repo.GetOverview(window)
	if err != nil {
		return nil, err
	}
	response := &DashboardStatsResponse{
		Stats: DashboardStats{
			TotalPosts:     row.TotalPosts,
			PublishedPosts: row.PublishedPosts,
			TotalInquiries: row.TotalInquiries,
			TotalViews:     row.TotalViews,
			RecentActivity: row.PostsThisWeek,
		},
		Changes: DashboardChanges{
			Posts:     CalculateChange(row.PostsThisMonth, row.PostsLastMonth),
			Inquiries: CalculateChange(row.InquiriesThisMonth, row.InquiriesLastMonth),
			Views:     CalculateChange(row.VisitsThisMonth, row.VisitsLastMonth),
			Activity:  CalculateChange(row.PostsThisWeek, row.PostsLastWeek),
		},
	}
	if err := cache.SetJSON(ctx, cacheKey, response, dashboardCacheTTL); err != nil {
		logger.Warnw("dashboard_cache_write_failed", "key", cacheKey, "error", err)
	}
	return response, nil
}

// GetActivity 最近咨询与文章合并后的动态，按时间倒序
func (s *DashboardService) GetActivity() ([]DashboardActivity, error) {
	inquiries, err := s.inquiryRepo.Latest(dashboardActivitySource)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.Latest(dashboardActivitySource)
	if err != nil {
		return nil, err
	}

	now := s.now()
	activities := make([]DashboardActivity, 0, len(inquiries)+len(posts))
	for _, inquiry := range inquiries {
		activities = append(activities, DashboardActivity{
			Type:      "inquiry",
			Message:   "New inquiry from " + inquiry.Name,
			Time:      relativeTime(now, inquiry.CreatedAt),
			Color:     "green",
			CreatedAt: inquiry.CreatedAt,
		})
	}
	for _, post := range posts {
		action := "Created draft"
		if post.IsPublished {
			action = "Published"
		}
		activities = append(activities, DashboardActivity{
			Type:      "post",
			Message:   action + " blog post: " + truncateWithEllipsis(post.Title, activityTitleMaxRunes),
			Time:      relativeTime(now, post.CreatedAt),
			Color:     "blue",
			CreatedAt: post.CreatedAt,
		})
	}
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].CreatedAt.After(activities[j].CreatedAt)
	})
	if len(activities) > dashboardActivityLimit {
		activities = activities[:dashboardActivityLimit]
	}
	return activities, nil
}

// CalculateChange 计算环比：上期为 0 且本期大于 0 时记为 +100%
func CalculateChange(current, previous int64) DashboardChange {
	if previous == 0 {
		if current > 0 {
			return DashboardChange{Percentage: "+100%", Type: ChangePositive}
		}
		return DashboardChange{Percentage: "0%", Type: ChangeNeutral}
	}
	change := decimal.NewFromInt(current - previous).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(previous)).
		RoundBank(0)
	switch change.Sign() {
	case 1:
		return DashboardChange{Percentage: "+" + change.String() + "%", Type: ChangePositive}
	case -1:
		return DashboardChange{Percentage: change.String() + "%", Type: ChangeNegative}
	default:
		return DashboardChange{Percentage: "0%", Type: ChangeNeutral}
	}
}

func dashboardWindow(now time.Time) repository.DashboardWindow {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	weekStart := now.AddDate(0, 0, -7)
	return repository.DashboardWindow{
		MonthStart:     monthStart,
		LastMonthStart: monthStart.AddDate(0, -1, 0),
		WeekStart:      weekStart,
		LastWeekStart:  weekStart.AddDate(0, 0, -7),
	}
}

func relativeTime(now, at time.Time) string {
	diff := now.Sub(at)
	if diff < 0 {
		diff = 0
	}
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(diff/time.Hour))
	default:
		return fmt.Sprintf("%d days ago", int(diff/(24*time.Hour)))
	}
}

func truncateWithEllipsis(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max]) + "..."
}
