package models

import (
	"strings"
	"time"

	"github.com/yhdfc-next/internal/constants"

	"gorm.io/gorm"
)

// Inquiry 咨询表（前台联系表单）
type Inquiry struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                                // 主键
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`                              // 姓名
	Email        string    `gorm:"type:varchar(255);not null;index" json:"email"`                       // 邮箱
	CountryCode  string    `gorm:"type:varchar(10)" json:"country_code,omitempty"`                      // 电话国家码
	Phone        string    `gorm:"type:varchar(50)" json:"phone,omitempty"`                             // 电话
	Company      string    `gorm:"type:varchar(255)" json:"company,omitempty"`                          // 公司
	Subject      string    `gorm:"type:varchar(255);not null" json:"subject"`                           // 主题
	Message      string    `gorm:"type:text;not null" json:"message"`                                   // 内容
	ServiceType  string    `gorm:"type:varchar(100)" json:"service_type,omitempty"`                     // 服务类型
	UrgencyLevel string    `gorm:"type:varchar(20);not null;default:normal;index" json:"urgency_level"` // 紧急程度
	Status       string    `gorm:"type:varchar(20);not null;default:new;index" json:"status"`           // 处理状态
	IsRead       bool      `gorm:"not null;default:false;index" json:"is_read"`                         // 是否已读
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                                             // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                                          // 更新时间
}

// TableName 指定表名
func (Inquiry) TableName() string {
	return "inquiries"
}

// BeforeCreate 补齐默认状态
func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(i.Status) == "" {
		i.Status = constants.InquiryStatusNew
	}
	if strings.TrimSpace(i.UrgencyLevel) == "" {
		i.UrgencyLevel = constants.UrgencyNormal
	}
	return nil
}
