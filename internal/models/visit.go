package models

import "time"

// Visit 页面访问记录（仅保存脱敏 IP）
type Visit struct {
	ID          uint      `gorm:"primarykey" json:"id"`                              // 主键
	PagePath    string    `gorm:"type:varchar(500);not null;index" json:"page_path"` // 访问路径
	IPMasked    string    `gorm:"type:varchar(64);index" json:"ip_address"`          // 脱敏 IP
	Country     string    `gorm:"type:varchar(100);index" json:"country,omitempty"`  // 国家
	CountryCode string    `gorm:"type:varchar(8)" json:"country_code,omitempty"`     // 国家代码
	City        string    `gorm:"type:varchar(100)" json:"city,omitempty"`           // 城市
	UserAgent   string    `gorm:"type:varchar(500)" json:"user_agent,omitempty"`     // UA
	Referrer    string    `gorm:"type:varchar(500)" json:"referrer,omitempty"`       // 来源
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                           // 访问时间
}

// TableName 指定表名
func (Visit) TableName() string {
	return "visits"
}
