package client

import "time"

// AdminUser 登录管理员
type AdminUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	IsSuper  bool   `json:"is_super,omitempty"`
}

// Category 分类
type Category struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ParentSlug  string `json:"parent_slug,omitempty"`
	SortOrder   int    `json:"sort_order"`
}

// Post 文章
type Post struct {
	ID           uint       `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Excerpt      string     `json:"excerpt"`
	Content      string     `json:"content"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	CategoryID   uint       `json:"category_id"`
	Tags         string     `json:"tags"`
	IsPublished  bool       `json:"is_published"`
	ViewCount    int64      `json:"view_count"`
	Source       string     `json:"source,omitempty"`
	ExternalURL  string     `json:"external_url,omitempty"`
	TrainingDate *time.Time `json:"training_date,omitempty"`
	ClientName   string     `json:"client_name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Category     *Category  `json:"category,omitempty"`
}

// Inquiry 咨询
type Inquiry struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	CountryCode  string    `json:"country_code,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Company      string    `json:"company,omitempty"`
	Subject      string    `json:"subject"`
	Message      string    `json:"message"`
	ServiceType  string    `json:"service_type,omitempty"`
	UrgencyLevel string    `json:"urgency_level"`
	Status       string    `json:"status"`
	IsRead       bool      `json:"is_read"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PageMeta 分页信息
type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"total_pages"`
}

// PostPage 文章分页结果
type PostPage struct {
	Posts []Post `json:"posts"`
	PageMeta
}

// InquiryPage 咨询分页结果
type InquiryPage struct {
	Inquiries []Inquiry `json:"inquiries"`
	PageMeta
}

// InquiryStats 咨询统计
type InquiryStats struct {
	Total  int64 `json:"total"`
	Unread int64 `json:"unread"`
	Today  int64 `json:"today"`
}

// AnalyticsStats 访问概览
type AnalyticsStats struct {
	TotalVisits     int64 `json:"total_visits"`
	UniqueVisitors  int64 `json:"unique_visitors"`
	VisitsToday     int64 `json:"visits_today"`
	VisitsThisWeek  int64 `json:"visits_this_week"`
	VisitsThisMonth int64 `json:"visits_this_month"`
}

// CountryStat 国家访问量
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

// UploadResult 上传结果
type UploadResult struct {
	URL              string `json:"url"`
	Filename         string `json:"filename"`
	OriginalFilename string `json:"original_filename"`
	Storage          string `json:"storage"`
}
