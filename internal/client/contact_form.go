package client

import (
	"context"

	"github.com/yhdfc-next/internal/constants"
)

// ContactForm 公开联系表单
type ContactForm struct {
	Name         string
	Email        string
	CountryCode  string
	Phone        string
	Company      string
	Subject      string
	Message      string
	ServiceType  string
	UrgencyLevel string
}

// NewContactForm 带默认值的空表单
func NewContactForm() *ContactForm {
	f := &ContactForm{}
	f.Reset()
	return f
}

// Reset 恢复默认值
func (f *ContactForm) Reset() {
	*f = ContactForm{
		CountryCode:  constants.InquiryDefaultCountryCode,
		UrgencyLevel: constants.UrgencyNormal,
	}
}

func (f *ContactForm) payload() map[string]string {
	return map[string]string{
		"name":          f.Name,
		"email":         f.Email,
		"country_code":  f.CountryCode,
		"phone":         f.Phone,
		"company":       f.Company,
		"subject":       f.Subject,
		"message":       f.Message,
		"service_type":  f.ServiceType,
		"urgency_level": f.UrgencyLevel,
	}
}

// Submit 提交表单，成功后重置；失败时保留已填内容
func (f *ContactForm) Submit(ctx context.Context, c *Client) (*Inquiry, error) {
	inquiry, err := c.SubmitInquiry(ctx, f.payload())
	if err != nil {
		return nil, err
	}
	f.Reset()
	return inquiry, nil
}
