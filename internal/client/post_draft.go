package client

import (
	"context"
	"errors"
	"strings"

	"github.com/yhdfc-next/internal/slug"
	"github.com/yhdfc-next/internal/taxonomy"
)

// ErrPostTitleRequired 标题为空
var ErrPostTitleRequired = errors.New("post title required")

// PostDraft 文章编辑草稿：标题驱动 slug，栏目选择解析为分类 ID
type PostDraft struct {
	editor slug.Editor
	table  *taxonomy.Table

	Category    string
	Subcategory string
	Excerpt     string
	Content     string
	Tags        []string
	Thumbnail   string
	Published   bool
	Source      string
	ExternalURL string
	ClientName  string
	TrainingDay string // 2006-01-02
}

// NewPostDraft 创建草稿，table 为空时使用默认映射
func NewPostDraft(table *taxonomy.Table) *PostDraft {
	if table == nil {
		table = taxonomy.Default()
	}
	return &PostDraft{table: table}
}

// SetTitle 修改标题，未手动设置 slug 时同步生成
func (d *PostDraft) SetTitle(title string) { d.editor.SetTitle(title) }

// SetSlug 手动设置 slug，空值恢复自动生成
func (d *PostDraft) SetSlug(value string) { d.editor.SetSlug(value) }

// Title 当前标题
func (d *PostDraft) Title() string { return d.editor.Title() }

// Slug 当前 slug
func (d *PostDraft) Slug() string { return d.editor.Slug() }

// CategoryID 解析当前栏目选择
func (d *PostDraft) CategoryID() (uint, error) {
	return d.table.Resolve(d.Category, d.Subcategory)
}

// PreviewURL 前台预览地址
func (d *PostDraft) PreviewURL() string {
	return d.table.PostURL(d.Category, d.Subcategory, d.Slug())
}

// Payload 生成创建/更新请求体
func (d *PostDraft) Payload() (map[string]interface{}, error) {
	title := strings.TrimSpace(d.Title())
	if title == "" {
		return nil, ErrPostTitleRequired
	}
	categoryID, err := d.CategoryID()
	if err != nil {
		return nil, err
	}
	tags := make([]string, 0, len(d.Tags))
	for _, tag := range d.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	payload := map[string]interface{}{
		"title":         title,
		"slug":          d.Slug(),
		"excerpt":       d.Excerpt,
		"content":       d.Content,
		"category_id":   categoryID,
		"tags":          strings.Join(tags, ","),
		"is_published":  d.Published,
		"thumbnail_url": d.Thumbnail,
	}
	if d.Source != "" {
		payload["source"] = d.Source
	}
	if d.ExternalURL != "" {
		payload["external_url"] = d.ExternalURL
	}
	if d.ClientName != "" {
		payload["client_name"] = d.ClientName
	}
	if d.TrainingDay != "" {
		payload["training_date"] = d.TrainingDay
	}
	return payload, nil
}

// Save 提交草稿，id 为 0 时创建
func (d *PostDraft) Save(ctx context.Context, c *Client, id uint) (*Post, error) {
	payload, err := d.Payload()
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return c.CreatePost(ctx, payload)
	}
	return c.UpdatePost(ctx, id, payload)
}
