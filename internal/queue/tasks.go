package queue

import (
	"encoding/json"

	"github.com/yhdfc-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskInquiryNotify 新咨询邮件通知任务
	TaskInquiryNotify = constants.TaskInquiryNotify
	// TaskVisitGeolocate 访问记录地理位置解析任务
	TaskVisitGeolocate = constants.TaskVisitGeolocate
)

// InquiryNotifyPayload 新咨询通知任务载荷
type InquiryNotifyPayload struct {
	InquiryID uint   `json:"inquiry_id"`
	Locale    string `json:"locale,omitempty"`
}

// VisitGeolocatePayload 地理位置解析任务载荷
// IP 仅在队列中短暂存在，不落库
type VisitGeolocatePayload struct {
	VisitID uint   `json:"visit_id"`
	IP      string `json:"ip"`
}

// NewInquiryNotifyTask 创建新咨询通知任务
func NewInquiryNotifyTask(payload InquiryNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInquiryNotify, body), nil
}

// NewVisitGeolocateTask 创建地理位置解析任务
func NewVisitGeolocateTask(payload VisitGeolocatePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskVisitGeolocate, body), nil
}
