package models

import (
	"time"
)

// Post 文章表（数字取证博客 / 媒体报道 / 培训）
type Post struct {
	ID           uint       `gorm:"primarykey" json:"id"`                               // 主键
	Title        string     `gorm:"type:varchar(255);not null" json:"title"`            // 标题
	Slug         string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"` // 唯一标识
	Excerpt      string     `gorm:"type:text" json:"excerpt"`                           // 摘要
	Content      string     `gorm:"type:text;not null" json:"content"`                  // 正文（HTML）
	ThumbnailURL string     `gorm:"type:varchar(500)" json:"thumbnail_url,omitempty"`   // 缩略图
	CategoryID   uint       `gorm:"not null;index" json:"category_id"`                  // 分类 ID
	Tags         string     `gorm:"type:varchar(500)" json:"tags"`                      // 标签（逗号分隔）
	IsPublished  bool       `gorm:"not null;default:false;index" json:"is_published"`   // 是否发布
	ViewCount    int64      `gorm:"not null;default:0" json:"view_count"`               // 浏览量
	Source       string     `gorm:"type:varchar(255)" json:"source,omitempty"`          // 媒体来源（press）
	ExternalURL  string     `gorm:"type:varchar(500)" json:"external_url,omitempty"`    // 外部链接（press）
	TrainingDate *time.Time `json:"training_date,omitempty"`                            // 培训日期（training）
	ClientName   string     `gorm:"type:varchar(255)" json:"client_name,omitempty"`     // 培训客户（training）
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt    time.Time  `json:"updated_at"`                                         // 更新时间
	Category     *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`    // 所属分类
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}
