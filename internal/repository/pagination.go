package repository

import "gorm.io/gorm"

// listPage 统计总数后按 created_at 倒序取第 page 页；pageSize<=0 时返回全部
// 页码越界返回空列表与真实 total，调用方据此计算 total_pages
func listPage[T any](query *gorm.DB, page, pageSize int, orderBy string, preload ...string) ([]T, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	rows := make([]T, 0)
	if total == 0 {
		return rows, 0, nil
	}

	if pageSize > 0 {
		query = query.Limit(pageSize).Offset((max(page, 1) - 1) * pageSize)
	}
	if orderBy == "" {
		orderBy = "created_at DESC, id DESC"
	}
	for _, assoc := range preload {
		query = query.Preload(assoc)
	}
	if err := query.Order(orderBy).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
