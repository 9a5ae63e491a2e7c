package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/yhdfc-next/internal/taxonomy"
)

// ListOptions 列表查询参数
type ListOptions struct {
	Page     int
	Limit    int
	Search   string
	Status   string
	Category string
	Urgency  string
}

func (o ListOptions) values() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("search", o.Search)
	set("status", o.Status)
	set("category", o.Category)
	set("urgency", o.Urgency)
	return q
}

// AdminPosts 后台文章列表
func (c *Client) AdminPosts(ctx context.Context, opts ListOptions) (*PostPage, error) {
	var page PostPage
	if err := c.get(ctx, "/api/admin/posts", opts.values(), true, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AdminPost 后台文章详情
func (c *Client) AdminPost(ctx context.Context, id uint) (*Post, error) {
	var post Post
	if err := c.get(ctx, fmt.Sprintf("/api/admin/posts/%d", id), nil, true, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost 创建文章
func (c *Client) CreatePost(ctx context.Context, payload map[string]interface{}) (*Post, error) {
	var post Post
	if err := c.send(ctx, http.MethodPost, "/api/admin/posts", payload, true, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost 部分更新文章
func (c *Client) UpdatePost(ctx context.Context, id uint, payload map[string]interface{}) (*Post, error) {
	var post Post
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/api/admin/posts/%d", id), payload, true, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost 删除文章
func (c *Client) DeletePost(ctx context.Context, id uint) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/posts/%d", id), nil, true, nil)
}

// Categories 公开分类列表
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.get(ctx, "/api/categories", nil, false, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Taxonomy 从后端加载栏目映射表
func (c *Client) Taxonomy(ctx context.Context) (*taxonomy.Table, error) {
	var entries []taxonomy.Entry
	if err := c.get(ctx, "/api/categories/taxonomy", nil, false, &entries); err != nil {
		return nil, err
	}
	return taxonomy.New(entries), nil
}

// Inquiries 后台咨询列表
func (c *Client) Inquiries(ctx context.Context, opts ListOptions) (*InquiryPage, error) {
	var page InquiryPage
	if err := c.get(ctx, "/api/admin/inquiries", opts.values(), true, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// InquiryStats 咨询统计
func (c *Client) InquiryStats(ctx context.Context) (*InquiryStats, error) {
	var stats InquiryStats
	if err := c.get(ctx, "/api/admin/inquiries/stats", nil, true, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// UpdateInquiryStatus 更新咨询状态
func (c *Client) UpdateInquiryStatus(ctx context.Context, id uint, status string) (*Inquiry, error) {
	var inquiry Inquiry
	body := map[string]string{"status": status}
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/api/admin/inquiries/%d", id), body, true, &inquiry); err != nil {
		return nil, err
	}
	return &inquiry, nil
}

// DeleteInquiry 删除咨询
func (c *Client) DeleteInquiry(ctx context.Context, id uint) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/inquiries/%d", id), nil, true, nil)
}

// SubmitInquiry 公开联系表单提交
func (c *Client) SubmitInquiry(ctx context.Context, payload map[string]string) (*Inquiry, error) {
	var inquiry Inquiry
	if err := c.send(ctx, http.MethodPost, "/api/inquiries", payload, false, &inquiry); err != nil {
		return nil, err
	}
	return &inquiry, nil
}

// Upload 上传图片
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	var result UploadResult
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/admin/upload",
		rawBody:     &buf,
		contentType: writer.FormDataContentType(),
		auth:        true,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// PublicSettings 公开站点设置，成功后写入本地缓存，失败时回退缓存
func (c *Client) PublicSettings(ctx context.Context) (map[string]interface{}, error) {
	var settings map[string]interface{}
	err := c.get(ctx, "/api/settings/public", nil, false, &settings)
	if err != nil {
		if cached, ok := c.session.CachedSettings(); ok {
			c.log.Warnw("client_settings_fetch_failed_use_cache", "error", err)
			return cached, nil
		}
		return nil, err
	}
	if err := c.session.CacheSettings(settings); err != nil {
		c.log.Warnw("client_settings_cache_failed", "error", err)
	}
	return settings, nil
}
