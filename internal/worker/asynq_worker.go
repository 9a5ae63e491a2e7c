package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yhdfc-next/internal/logger"
	"github.com/yhdfc-next/internal/provider"
	"github.com/yhdfc-next/internal/queue"
	"github.com/yhdfc-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskInquiryNotify, c.observe(queue.TaskInquiryNotify, c.handleInquiryNotify))
	mux.HandleFunc(queue.TaskVisitGeolocate, c.observe(queue.TaskVisitGeolocate, c.handleVisitGeolocate))
}

// observe 统计任务结果
func (c *Consumer) observe(task string, next asynq.HandlerFunc) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		err := next(ctx, t)
		if c != nil && c.Container != nil {
			c.Metrics.TaskHandled(task, err)
		}
		return err
	}
}

func (c *Consumer) handleInquiryNotify(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_inquiry_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.InquiryNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_inquiry_notify_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if payload.InquiryID == 0 {
		logger.Debugw("worker_inquiry_notify_skip_invalid_payload", "inquiry_id", payload.InquiryID)
		return nil
	}
	if c.InquiryService == nil {
		logger.Warnw("worker_inquiry_notify_skip_service_nil", "inquiry_id", payload.InquiryID)
		return nil
	}
	err := c.InquiryService.SendNotification(ctx, payload.InquiryID, payload.Locale)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			logger.Debugw("worker_inquiry_notify_skip_not_found", "inquiry_id", payload.InquiryID)
			return nil
		case errors.Is(err, service.ErrEmailServiceDisabled), errors.Is(err, service.ErrEmailServiceNotConfigured):
			logger.Debugw("worker_inquiry_notify_skip_email_disabled", "inquiry_id", payload.InquiryID)
			return nil
		case errors.Is(err, service.ErrEmailRecipientRejected):
			logger.Warnw("worker_inquiry_notify_recipient_rejected", "inquiry_id", payload.InquiryID, "error", err)
			return nil
		default:
			logger.Warnw("worker_inquiry_notify_send_failed", "inquiry_id", payload.InquiryID, "error", err)
			return err
		}
	}
	return nil
}

func (c *Consumer) handleVisitGeolocate(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_visit_geolocate_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.VisitGeolocatePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_visit_geolocate_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if payload.VisitID == 0 || payload.IP == "" {
		logger.Debugw("worker_visit_geolocate_skip_invalid_payload", "visit_id", payload.VisitID)
		return nil
	}
	if c.TrackingService == nil {
		logger.Warnw("worker_visit_geolocate_skip_service_nil", "visit_id", payload.VisitID)
		return nil
	}
	if err := c.TrackingService.Geolocate(ctx, payload.VisitID, payload.IP); err != nil {
		// 地理位置只是补充信息，记录后交给队列重试
		logger.Warnw("worker_visit_geolocate_failed", "visit_id", payload.VisitID, "error", err)
		return err
	}
	return nil
}
