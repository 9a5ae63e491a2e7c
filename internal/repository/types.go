package repository

import "time"

// PostListFilter 查询文章列表的过滤条件
type PostListFilter struct {
	Page          int
	PageSize      int
	CategoryIDs   []uint
	Search        string
	OnlyPublished bool
	Status        string // published/draft/all，OnlyPublished 优先
	OrderBy       string
	WithCategory  bool
}

// InquiryListFilter 查询咨询列表的过滤条件
type InquiryListFilter struct {
	Page     int
	PageSize int
	IsRead   *bool
	Status   string
	Urgency  string
	Search   string
}

// InquiryStatsRow 咨询统计
type InquiryStatsRow struct {
	Total  int64
	Unread int64
	Today  int64
}

// VisitStatsRow 访问统计
type VisitStatsRow struct {
	TotalVisits     int64
	UniqueVisitors  int64
	VisitsToday     int64
	VisitsThisWeek  int64
	VisitsThisMonth int64
}

// VisitCountryRow 按国家聚合的访问量
type VisitCountryRow struct {
	Country     string
	CountryCode string
	Visits      int64
}

// VisitDailyRow 按天聚合的访问量
type VisitDailyRow struct {
	Day    string
	Visits int64
}

// VisitWindow 访问统计的时间边界
type VisitWindow struct {
	DayStart   time.Time
	WeekStart  time.Time
	MonthStart time.Time
}
