package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/yhdfc-next/internal/config"
	"github.com/yhdfc-next/internal/constants"
	"github.com/yhdfc-next/internal/logger"
	"github.com/yhdfc-next/internal/models"
	"github.com/yhdfc-next/internal/queue"
	"github.com/yhdfc-next/internal/repository"
)

const inquiryNotifyTimeout = 30 * time.Second

// InquiryService 咨询业务服务
type InquiryService struct {
	cfg            *config.Config
	repo           repository.InquiryRepository
	adminRepo      repository.AdminRepository
	settingService *SettingService
	emailService   *EmailService
	queueClient    *queue.Client
	policy         TransitionPolicy
	now            func() time.Time
}

// NewInquiryService 创建咨询服务
func NewInquiryService(
	cfg *config.Config,
	repo repository.InquiryRepository,
	adminRepo repository.AdminRepository,
	settingService *SettingService,
	emailService *EmailService,
	queueClient *queue.Client,
) *InquiryService {
	policy := TransitionPermissive
	if cfg != nil && cfg.Inquiry.StrictTransitions {
		policy = TransitionStrict
	}
	return &InquiryService{
		cfg:            cfg,
		repo:           repo,
		adminRepo:      adminRepo,
		settingService: settingService,
		emailService:   emailService,
		queueClient:    queueClient,
		policy:         policy,
		now:            time.Now,
	}
}

// CreateInquiryInput 前台提交咨询输入
type CreateInquiryInput struct {
	Name         string
	Email        string
	CountryCode  string
	Phone        string
	Company      string
	Subject      string
	Message      string
	ServiceType  string
	UrgencyLevel string
	Locale       string
}

// UpdateInquiryInput 后台更新咨询输入（字段均可选）
type UpdateInquiryInput struct {
	Status       *string
	UrgencyLevel *string
}

// InquiryStats 咨询统计
type InquiryStats struct {
	Total  int64 `json:"total"`
	Unread int64 `json:"unread"`
	Today  int64 `json:"today"`
}

// Create 创建咨询并异步通知管理员
func (s *InquiryService) Create(ctx context.Context, input CreateInquiryInput) (*models.Inquiry, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)
	if name == "" || email == "" || subject == "" || message == "" {
		return nil, ErrInquiryRequiredFields
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	urgency := strings.ToLower(strings.TrimSpace(input.UrgencyLevel))
	if urgency == "" {
		urgency = constants.UrgencyNormal
	}
	if !IsValidUrgencyLevel(urgency) {
		return nil, ErrInvalidUrgency
	}
	countryCode := strings.TrimSpace(input.CountryCode)
	if countryCode == "" {
		countryCode = constants.InquiryDefaultCountryCode
	}

	inquiry := &models.Inquiry{
		Name:         name,
		Email:        email,
		CountryCode:  countryCode,
		Phone:        strings.TrimSpace(input.Phone),
		Company:      strings.TrimSpace(input.Company),
		Subject:      subject,
		Message:      message,
		ServiceType:  strings.TrimSpace(input.ServiceType),
		UrgencyLevel: urgency,
		Status:       constants.InquiryStatusNew,
	}
	if err := s.repo.Create(inquiry); err != nil {
		return nil, err
	}

	s.dispatchNotify(ctx, inquiry.ID, input.Locale)
	return inquiry, nil
}

// dispatchNotify 队列可用时投递任务，否则后台直接发送
func (s *InquiryService) dispatchNotify(ctx context.Context, inquiryID uint, locale string) {
	payload := queue.InquiryNotifyPayload{InquiryID: inquiryID, Locale: locale}
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueInquiryNotify(ctx, payload); err != nil {
			logger.Warnw("inquiry_notify_enqueue_failed", "inquiry_id", inquiryID, "error", err)
		}
		return
	}
	if s.emailService == nil {
		return
	}
	go func() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), inquiryNotifyTimeout)
		defer cancel()
		if err := s.SendNotification(notifyCtx, inquiryID, locale); err != nil {
			logger.Warnw("inquiry_notify_send_failed", "inquiry_id", inquiryID, "error", err)
		}
	}()
}

// SendNotification 发送新咨询通知邮件（worker 与无队列模式共用）
func (s *InquiryService) SendNotification(ctx context.Context, inquiryID uint, locale string) error {
	if s.emailService == nil {
		return ErrEmailServiceDisabled
	}
	inquiry, err := s.repo.GetByID(inquiryID)
	if err != nil {
		return err
	}
	if inquiry == nil {
		return ErrNotFound
	}
	recipients, err := s.notifyRecipients()
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		logger.Debugw("inquiry_notify_skip_no_recipient", "inquiry_id", inquiryID)
		return nil
	}
	if s.settingService != nil && s.cfg != nil {
		if smtpSetting, err := s.settingService.GetSMTPSetting(s.cfg.Email); err == nil {
			runtime := SMTPSettingToConfig(smtpSetting)
			s.emailService.SetConfig(&runtime)
		}
	}

	input := InquiryEmailInput{Inquiry: inquiry}
	if s.cfg != nil {
		input.SiteName = s.cfg.Site.Name
		if base := strings.TrimRight(strings.TrimSpace(s.cfg.Site.BaseURL), "/"); base != "" {
			input.AdminURL = base + "/admin/inquiries"
		}
	}
	return s.emailService.SendInquiryNotification(ctx, recipients, input, locale)
}

func (s *InquiryService) notifyRecipients() ([]string, error) {
	if s.cfg != nil && len(s.cfg.Inquiry.NotifyEmails) > 0 {
		return s.cfg.Inquiry.NotifyEmails, nil
	}
	if s.adminRepo == nil {
		return nil, nil
	}
	return s.adminRepo.ListNotifyEmails()
}

// List 后台咨询列表
func (s *InquiryService) List(filter repository.InquiryListFilter) ([]models.Inquiry, int64, error) {
	if status := strings.TrimSpace(filter.Status); status != "" && !strings.EqualFold(status, constants.FilterAll) && !IsValidInquiryStatus(status) {
		return nil, 0, ErrInvalidStatus
	}
	if urgency := strings.TrimSpace(filter.Urgency); urgency != "" && !strings.EqualFold(urgency, constants.FilterAll) && !IsValidUrgencyLevel(urgency) {
		return nil, 0, ErrInvalidUrgency
	}
	return s.repo.List(filter)
}

// Get 获取咨询详情，新咨询自动标记为已读
func (s *InquiryService) Get(id uint) (*models.Inquiry, error) {
	inquiry, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inquiry == nil {
		return nil, ErrNotFound
	}
	if inquiry.Status == constants.InquiryStatusNew {
		return s.MarkAsRead(id)
	}
	if !inquiry.IsRead {
		if err := s.repo.UpdateFields(id, map[string]interface{}{"is_read": true, "updated_at": s.now()}); err != nil {
			return nil, err
		}
		inquiry.IsRead = true
	}
	return inquiry, nil
}

// MarkAsRead 仅当状态为 new 时改为 read，其余状态保持不变
func (s *InquiryService) MarkAsRead(id uint) (*models.Inquiry, error) {
	if _, err := s.repo.MarkReadIfNew(id, s.now()); err != nil {
		return nil, err
	}
	inquiry, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inquiry == nil {
		return nil, ErrNotFound
	}
	return inquiry, nil
}

// Update 更新状态或紧急程度
func (s *InquiryService) Update(id uint, input UpdateInquiryInput) (*models.Inquiry, error) {
	inquiry, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inquiry == nil {
		return nil, ErrNotFound
	}

	updates := map[string]interface{}{}
	if input.Status != nil {
		status := normalizeInquiryStatus(*input.Status)
		if !IsValidInquiryStatus(status) {
			return nil, ErrInvalidStatus
		}
		allowed, offTable := s.policy.Allows(inquiry.Status, status)
		if offTable {
			logger.Warnw("inquiry_status_transition_off_table",
				"inquiry_id", id,
				"from", inquiry.Status,
				"to", status,
				"policy", s.policy.String(),
			)
		}
		if !allowed {
			return nil, ErrInvalidTransition
		}
		updates["status"] = status
		if status != constants.InquiryStatusNew {
			updates["is_read"] = true
		}
	}
	if input.UrgencyLevel != nil {
		urgency := strings.ToLower(strings.TrimSpace(*input.UrgencyLevel))
		if !IsValidUrgencyLevel(urgency) {
			return nil, ErrInvalidUrgency
		}
		updates["urgency_level"] = urgency
	}
	if len(updates) == 0 {
		return inquiry, nil
	}
	updates["updated_at"] = s.now()
	if err := s.repo.UpdateFields(id, updates); err != nil {
		return nil, err
	}
	return s.repo.GetByID(id)
}

// Delete 删除咨询（不可恢复）
func (s *InquiryService) Delete(id uint) error {
	existed, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !existed {
		return ErrNotFound
	}
	return nil
}

// Stats 咨询总数、未读数、今日新增
func (s *InquiryService) Stats() (InquiryStats, error) {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	row, err := s.repo.Stats(dayStart)
	if err != nil {
		return InquiryStats{}, err
	}
	return InquiryStats{Total: row.Total, Unread: row.Unread, Today: row.Today}, nil
}
