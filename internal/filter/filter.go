// Package filter 对已加载的列表做内存筛选
//
// 文本检索在各字段上做大小写不敏感的子串匹配（字段之间为 OR），
// 再与状态、分类等等值条件做 AND；结果保持原有顺序。
package filter

import (
	"strings"

	"github.com/yhdfc-next/internal/constants"
)

// Apply 保序筛选
func Apply[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// ContainsFold 任一字段包含关键字即命中，空关键字恒命中；关键字不做首尾裁剪
func ContainsFold(search string, fields ...string) bool {
	needle := strings.ToLower(search)
	if needle == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// EqualOrAll 等值条件，空值与 "all" 视为不限
func EqualOrAll(want, got string) bool {
	want = strings.TrimSpace(want)
	if want == "" || strings.EqualFold(want, constants.FilterAll) {
		return true
	}
	return strings.EqualFold(want, strings.TrimSpace(got))
}

// InquiryRecord 咨询筛选视图
type InquiryRecord struct {
	Name    string
	Email   string
	Subject string
	Message string
	Status  string
	Urgency string
}

// InquiryCriteria 咨询筛选条件
type InquiryCriteria struct {
	Search  string
	Status  string
	Urgency string
}

// Match 判断是否命中
func (c InquiryCriteria) Match(r InquiryRecord) bool {
	return EqualOrAll(c.Status, r.Status) &&
		EqualOrAll(c.Urgency, r.Urgency) &&
		ContainsFold(c.Search, r.Name, r.Email, r.Subject, r.Message)
}

// Inquiries 筛选咨询列表
func Inquiries[T any](items []T, c InquiryCriteria, view func(T) InquiryRecord) []T {
	return Apply(items, func(item T) bool { return c.Match(view(item)) })
}

// PostRecord 文章筛选视图
type PostRecord struct {
	Title        string
	Excerpt      string
	Tags         string
	CategoryName string
	CategorySlug string
	IsPublished  bool
}

// PostCriteria 文章筛选条件
type PostCriteria struct {
	Search   string
	Category string // 分类名称或 slug，"all" 不限
	Status   string // published/draft/all
}

// Match 判断是否命中
func (c PostCriteria) Match(r PostRecord) bool {
	if !matchPostStatus(c.Status, r.IsPublished) {
		return false
	}
	if !EqualOrAll(c.Category, r.CategoryName) && !EqualOrAll(c.Category, r.CategorySlug) {
		return false
	}
	return ContainsFold(c.Search, r.Title, r.Excerpt, r.Tags)
}

func matchPostStatus(status string, published bool) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case constants.PostStatusPublished:
		return published
	case constants.PostStatusDraft:
		return !published
	default:
		return true
	}
}

// Posts 筛选文章列表
func Posts[T any](items []T, c PostCriteria, view func(T) PostRecord) []T {
	return Apply(items, func(item T) bool { return c.Match(view(item)) })
}

// CategoryRecord 分类筛选视图
type CategoryRecord struct {
	Name        string
	Slug        string
	Description string
}

// CategoryCriteria 分类筛选条件
type CategoryCriteria struct {
	Search string
}

// Match 判断是否命中
func (c CategoryCriteria) Match(r CategoryRecord) bool {
	return ContainsFold(c.Search, r.Name, r.Slug, r.Description)
}

// Categories 筛选分类列表
func Categories[T any](items []T, c CategoryCriteria, view func(T) CategoryRecord) []T {
	return Apply(items, func(item T) bool { return c.Match(view(item)) })
}
