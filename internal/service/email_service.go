package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"
	"sync"
	"time"

	"github.com/yhdfc-next/internal/config"
	"github.com/yhdfc-next/internal/constants"
	"github.com/yhdfc-next/internal/i18n"
	"github.com/yhdfc-next/internal/models"
)

const (
	emailContentTypeText = "text/plain"
	emailContentTypeHTML = "text/html"
)

var kstZone = time.FixedZone("KST", 9*60*60)

// EmailService 邮件发送服务
type EmailService struct {
	mu  sync.RWMutex
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SetConfig 更新运行时邮件配置
func (s *EmailService) SetConfig(cfg *config.EmailConfig) {
	if cfg == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

func (s *EmailService) currentConfig() *config.EmailConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// InquiryEmailInput 咨询通知邮件输入
type InquiryEmailInput struct {
	Inquiry  *models.Inquiry
	SiteName string
	AdminURL string
}

// SendInquiryNotification 向管理员发送新咨询通知
func (s *EmailService) SendInquiryNotification(ctx context.Context, recipients []string, input InquiryEmailInput, locale string) error {
	if input.Inquiry == nil {
		return ErrInvalidInput
	}
	subject, body, err := buildInquiryNotificationContent(input, locale)
	if err != nil {
		return err
	}
	return s.send(ctx, recipients, subject, body, emailContentTypeHTML)
}

// SendCustomEmail 发送测试邮件或自定义邮件
func (s *EmailService) SendCustomEmail(ctx context.Context, toEmail, subject, body string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "SMTP test"
	}
	body = strings.TrimSpace(body)
	if body == "" {
		body = "This is an SMTP test message from YH Digital Forensic Center."
	}
	return s.send(ctx, []string{toEmail}, subject, body, emailContentTypeText)
}

func (s *EmailService) send(ctx context.Context, recipients []string, subject, body, contentType string) error {
	cfg := s.currentConfig()
	if cfg == nil || !cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if cfg.Host == "" || cfg.Port == 0 || cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	to := make([]string, 0, len(recipients))
	for _, recipient := range recipients {
		recipient = strings.TrimSpace(recipient)
		if recipient == "" {
			continue
		}
		if _, err := mail.ParseAddress(recipient); err != nil {
			return ErrInvalidEmail
		}
		to = append(to, recipient)
	}
	if len(to) == 0 {
		return ErrInvalidEmail
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	from := buildFromAddress(cfg.From, cfg.FromName)
	msg := buildEmailMessage(from, to, subject, body, contentType)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	var auth smtp.Auth
	if cfg.Username != "" || cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	if cfg.UseSSL {
		return normalizeEmailSendError(sendMailWithSSL(addr, auth, cfg.Host, cfg.From, to, []byte(msg)))
	}
	if cfg.UseTLS {
		return normalizeEmailSendError(sendMailWithStartTLS(addr, auth, cfg.Host, cfg.From, to, []byte(msg)))
	}
	return normalizeEmailSendError(sendMailPlain(addr, auth, cfg.Host, cfg.From, to, []byte(msg)))
}

var inquiryEmailTemplate = template.Must(template.New("inquiry").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>{{.Heading}}</title></head>
<body style="font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Arial,sans-serif;color:#374151;background:#f9fafb;padding:20px;">
<div style="max-width:650px;margin:0 auto;background:#ffffff;border-radius:12px;overflow:hidden;">
<div style="background:#1e293b;color:#ffffff;padding:32px 24px;text-align:center;">
<h1 style="margin:0 0 8px 0;font-size:24px;">{{.Heading}}</h1>
<p style="margin:0;">{{.Inquiry.Name}} &lt;{{.Inquiry.Email}}&gt;</p>
<span style="display:inline-block;margin-top:12px;padding:6px 12px;border-radius:20px;font-size:12px;font-weight:600;text-transform:uppercase;background:{{.Badge.Background}};color:{{.Badge.Color}};">{{.UrgencyLabel}}</span>
</div>
<div style="padding:32px 24px;">
<table style="width:100%;border-collapse:collapse;">
<tr><td style="padding:6px 0;width:160px;color:#6b7280;">Subject</td><td>{{.Inquiry.Subject}}</td></tr>
{{if .Inquiry.Company}}<tr><td style="padding:6px 0;color:#6b7280;">Company</td><td>{{.Inquiry.Company}}</td></tr>{{end}}
{{if .Inquiry.Phone}}<tr><td style="padding:6px 0;color:#6b7280;">Phone</td><td>{{.Inquiry.CountryCode}} {{.Inquiry.Phone}}</td></tr>{{end}}
{{if .Inquiry.ServiceType}}<tr><td style="padding:6px 0;color:#6b7280;">Service</td><td>{{.Inquiry.ServiceType}}</td></tr>{{end}}
<tr><td style="padding:6px 0;color:#6b7280;">Received (KST)</td><td>{{.ReceivedAt}}</td></tr>
</table>
<div style="margin-top:24px;padding:16px;background:#f8fafc;border-radius:8px;white-space:pre-wrap;">{{.Inquiry.Message}}</div>
{{if .AdminURL}}<p style="margin-top:24px;"><a href="{{.AdminURL}}" style="color:#2563eb;">{{.ViewLabel}}</a></p>{{end}}
</div>
</div>
</body>
</html>`))

type urgencyBadge struct {
	Background string
	Color      string
}

var urgencyBadges = map[string]urgencyBadge{
	constants.UrgencyUrgent: {Background: "#fef2f2", Color: "#dc2626"},
	constants.UrgencyHigh:   {Background: "#fef3c7", Color: "#d97706"},
	constants.UrgencyNormal: {Background: "#ecfdf5", Color: "#059669"},
	constants.UrgencyLow:    {Background: "#eff6ff", Color: "#2563eb"},
}

func buildInquiryNotificationContent(input InquiryEmailInput, locale string) (string, string, error) {
	locale = i18n.NormalizeLocale(locale)
	inquiry := input.Inquiry
	siteName := strings.TrimSpace(input.SiteName)
	if siteName == "" {
		siteName = "YHDFC"
	}
	urgency := strings.TrimSpace(inquiry.UrgencyLevel)
	badge, ok := urgencyBadges[urgency]
	if !ok {
		urgency = constants.UrgencyNormal
		badge = urgencyBadges[urgency]
	}
	createdAt := inquiry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var buf bytes.Buffer
	err := inquiryEmailTemplate.Execute(&buf, map[string]interface{}{
		"Heading":      i18n.T(locale, "email.inquiry.heading"),
		"Inquiry":      inquiry,
		"Badge":        badge,
		"UrgencyLabel": i18n.T(locale, "email.urgency."+urgency),
		"ReceivedAt":   createdAt.In(kstZone).Format("2006-01-02 15:04:05"),
		"AdminURL":     strings.TrimSpace(input.AdminURL),
		"ViewLabel":    i18n.T(locale, "email.inquiry.view"),
	})
	if err != nil {
		return "", "", err
	}
	subject := i18n.Sprintf(locale, "email.inquiry.subject", siteName, inquiry.Subject)
	return subject, buf.String(), nil
}

func buildEmailMessage(from string, to []string, subject, body, contentType string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(to, ", ")))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString(fmt.Sprintf("Content-Type: %s; charset=UTF-8\r\n", contentType))
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	_, err = w.Write(msg)
	if err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	if isEmailRecipientRejected(err) {
		return ErrEmailRecipientRejected
	}
	return err
}

func isEmailRecipientRejected(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	if message == "" {
		return false
	}
	directKeywords := []string{
		"no such recipient",
		"no such user",
		"recipient not found",
		"recipient address rejected",
		"invalid recipient",
		"user unknown",
		"unknown user",
		"unknown mailbox",
		"mailbox unavailable",
	}
	for _, keyword := range directKeywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	if strings.Contains(message, "550") {
		hints := []string{"recipient", "user", "mailbox", "address", "rcpt"}
		for _, hint := range hints {
			if strings.Contains(message, hint) {
				return true
			}
		}
	}
	return false
}
