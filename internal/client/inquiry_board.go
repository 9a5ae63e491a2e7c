package client

import (
	"context"
	"sync"

	"github.com/yhdfc-next/internal/constants"
	"github.com/yhdfc-next/internal/filter"
)

// InquiryBoard 后台咨询列表，本地列表只在服务端确认后更新
type InquiryBoard struct {
	client *Client

	mu    sync.RWMutex
	items []Inquiry
}

// NewInquiryBoard 创建咨询面板
func NewInquiryBoard(c *Client) *InquiryBoard {
	return &InquiryBoard{client: c}
}

// Load 拉取咨询列表替换本地数据
func (b *InquiryBoard) Load(ctx context.Context, opts ListOptions) (*InquiryPage, error) {
	page, err := b.client.Inquiries(ctx, opts)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	b.items = append([]Inquiry(nil), page.Inquiries...)
	b.mu.Unlock()
	return page, nil
}

// LoadAll 从第一页起逐页拉取直到 total_pages，全部成功后才替换本地数据
func (b *InquiryBoard) LoadAll(ctx context.Context, opts ListOptions) error {
	var items []Inquiry
	for page := 1; ; page++ {
		opts.Page = page
		result, err := b.client.Inquiries(ctx, opts)
		if err != nil {
			return err
		}
		items = append(items, result.Inquiries...)
		if len(result.Inquiries) == 0 || int64(page) >= result.TotalPages {
			break
		}
	}
	b.mu.Lock()
	b.items = items
	b.mu.Unlock()
	return nil
}

// Items 本地列表副本
func (b *InquiryBoard) Items() []Inquiry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Inquiry(nil), b.items...)
}

// Filter 对本地列表做筛选
func (b *InquiryBoard) Filter(criteria filter.InquiryCriteria) []Inquiry {
	return filter.Inquiries(b.Items(), criteria, inquiryRecord)
}

func inquiryRecord(i Inquiry) filter.InquiryRecord {
	return filter.InquiryRecord{
		Name:    i.Name,
		Email:   i.Email,
		Subject: i.Subject,
		Message: i.Message,
		Status:  i.Status,
		Urgency: i.UrgencyLevel,
	}
}

// Open 打开咨询详情，状态为 new 时自动标记已读
func (b *InquiryBoard) Open(ctx context.Context, id uint) (Inquiry, error) {
	item, ok := b.find(id)
	if !ok {
		return Inquiry{}, ErrInquiryNotLoaded
	}
	if item.Status != constants.InquiryStatusNew {
		return item, nil
	}
	if err := b.MarkAsRead(ctx, id); err != nil {
		return item, err
	}
	item, _ = b.find(id)
	return item, nil
}

// MarkAsRead 仅 new 状态生效，其它状态不发请求
func (b *InquiryBoard) MarkAsRead(ctx context.Context, id uint) error {
	item, ok := b.find(id)
	if !ok {
		return ErrInquiryNotLoaded
	}
	if item.Status != constants.InquiryStatusNew {
		return nil
	}
	return b.SetStatus(ctx, id, constants.InquiryStatusRead)
}

// SetStatus 更新状态，失败时本地列表不变
func (b *InquiryBoard) SetStatus(ctx context.Context, id uint, status string) error {
	if _, ok := b.find(id); !ok {
		return ErrInquiryNotLoaded
	}
	updated, err := b.client.UpdateInquiryStatus(ctx, id, status)
	if err != nil {
		b.client.log.Warnw("client_inquiry_status_update_failed", "inquiry_id", id, "status", status, "error", err)
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].ID != id {
			continue
		}
		b.items[i].Status = status
		b.items[i].IsRead = status != constants.InquiryStatusNew
		if updated != nil && updated.ID == id {
			b.items[i] = *updated
		}
		break
	}
	return nil
}

// Delete 删除咨询，失败时本地列表不变
func (b *InquiryBoard) Delete(ctx context.Context, id uint) error {
	if _, ok := b.find(id); !ok {
		return ErrInquiryNotLoaded
	}
	if err := b.client.DeleteInquiry(ctx, id); err != nil {
		b.client.log.Warnw("client_inquiry_delete_failed", "inquiry_id", id, "error", err)
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	kept := b.items[:0]
	for _, item := range b.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	b.items = kept
	return nil
}

func (b *InquiryBoard) find(id uint) (Inquiry, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, item := range b.items {
		if item.ID == id {
			return item, true
		}
	}
	return Inquiry{}, false
}
