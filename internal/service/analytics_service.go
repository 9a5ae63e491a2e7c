package service

import (
	"time"

	"github.com/yhdfc-next/internal/repository"
)

const (
	defaultCountryLimit = 20
	defaultRecentLimit  = 50
	maxAnalyticsLimit   = 500
	defaultDailyDays    = 30
)

// AnalyticsService 访问统计查询
type AnalyticsService struct {
	repo repository.VisitRepository
	now  func() time.Time
}

// NewAnalyticsService 创建访问统计查询服务
func NewAnalyticsService(repo repository.VisitRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo, now: time.Now}
}

// AnalyticsStats 访问概览
type AnalyticsStats struct {
	TotalVisits     int64 `json:"total_visits"`
	UniqueVisitors  int64 `json:"unique_visitors"`
	VisitsToday     int64 `json:"visits_today"`
	VisitsThisWeek  int64 `json:"visits_this_week"`
	VisitsThisMonth int64 `json:"visits_this_month"`
}

// CountryStat 国家维度访问量
type CountryStat struct {
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	VisitCount  int64  `json:"visit_count"`
}

// RecentVisit 最近访问
type RecentVisit struct {
	IPMasked    string    `json:"ip_masked"`
	PagePath    string    `json:"page_path"`
	CountryCode string    `json:"country_code"`
	CountryName string    `json:"country_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// DailyVisit 每日访问量
type DailyVisit struct {
	Day    string `json:"day"`
	Visits int64  `json:"visits"`
}

// Stats 访问概览，周从周一开始
func (s *AnalyticsService) Stats() (AnalyticsStats, error) {
	row, err := s.repo.Stats(visitWindow(s.now()))
	if err != nil {
		return AnalyticsStats{}, err
	}
	return AnalyticsStats{
		TotalVisits:     row.TotalVisits,
		UniqueVisitors:  row.UniqueVisitors,
		VisitsToday:     row.VisitsToday,
		VisitsThisWeek:  row.VisitsThisWeek,
		VisitsThisMonth: row.VisitsThisMonth,
	}, nil
}

// Countries 访问量最高的国家
func (s *AnalyticsService) Countries(limit int) ([]CountryStat, error) {
	rows, err := s.repo.TopCountries(clampLimit(limit, defaultCountryLimit))
	if err != nil {
		return nil, err
	}
	out := make([]CountryStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, CountryStat{CountryCode: row.CountryCode, CountryName: row.Country, VisitCount: row.Visits})
	}
	return out, nil
}

// Recent 最近访问记录
func (s *AnalyticsService) Recent(limit int) ([]RecentVisit, error) {
	visits, err := s.repo.Recent(clampLimit(limit, defaultRecentLimit))
	if err != nil {
		return nil, err
	}
	out := make([]RecentVisit, 0, len(visits))
	for _, v := range visits {
		out = append(out, RecentVisit{
			IPMasked:    v.IPMasked,
			PagePath:    v.PagePath,
			CountryCode: v.CountryCode,
			CountryName: v.Country,
			CreatedAt:   v.CreatedAt,
		})
	}
	return out, nil
}

// Daily 最近 days 天每日访问量
func (s *AnalyticsService) Daily(days int) ([]DailyVisit, error) {
	days = clampLimit(days, defaultDailyDays)
	now := s.now()
	start := startOfDay(now).AddDate(0, 0, -(days - 1))
	rows, err := s.repo.Daily(start)
	if err != nil {
		return nil, err
	}
	out := make([]DailyVisit, 0, len(rows))
	for _, row := range rows {
		out = append(out, DailyVisit{Day: row.Day, Visits: row.Visits})
	}
	return out, nil
}

func visitWindow(now time.Time) repository.VisitWindow {
	dayStart := startOfDay(now)
	offset := (int(dayStart.Weekday()) + 6) % 7
	return repository.VisitWindow{
		DayStart:   dayStart,
		WeekStart:  dayStart.AddDate(0, 0, -offset),
		MonthStart: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > maxAnalyticsLimit {
		return maxAnalyticsLimit
	}
	return limit
}
