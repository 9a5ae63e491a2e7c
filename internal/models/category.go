package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// JSON 类型定义，用于存储设置等结构化内容
type JSON map[string]interface{}

// Value 实现 driver.Valuer 接口
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan 实现 sql.Scanner 接口
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return nil
	}
}

// Category 分类表
type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                 // 主键
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`   // 名称
	Slug        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`   // 唯一标识
	Description string    `gorm:"type:text" json:"description"`                         // 描述
	ParentSlug  string    `gorm:"type:varchar(100);index" json:"parent_slug,omitempty"` // 上级栏目 slug
	SortOrder   int       `gorm:"default:0;index" json:"sort_order"`                    // 排序权重
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                              // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                           // 更新时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
