package service

import (
	"strings"

	"github.com/yhdfc-next/internal/constants"
)

// TransitionPolicy 咨询状态变更策略
type TransitionPolicy int

const (
	// TransitionPermissive 允许任意变更，表外变更仅记录告警
	TransitionPermissive TransitionPolicy = iota
	// TransitionStrict 拒绝转换表之外的变更
	TransitionStrict
)

var inquiryStatusTransitions = map[string][]string{
	constants.InquiryStatusNew:       {constants.InquiryStatusRead, constants.InquiryStatusResponded, constants.InquiryStatusClosed},
	constants.InquiryStatusRead:      {constants.InquiryStatusResponded, constants.InquiryStatusClosed},
	constants.InquiryStatusResponded: {constants.InquiryStatusClosed, constants.InquiryStatusRead},
	constants.InquiryStatusClosed:    {constants.InquiryStatusRead},
}

// IsValidInquiryStatus 判断咨询状态是否合法
func IsValidInquiryStatus(status string) bool {
	status = normalizeInquiryStatus(status)
	for _, item := range constants.InquiryStatuses {
		if item == status {
			return true
		}
	}
	return false
}

// IsValidUrgencyLevel 判断紧急程度是否合法
func IsValidUrgencyLevel(level string) bool {
	level = strings.ToLower(strings.TrimSpace(level))
	for _, item := range constants.UrgencyLevels {
		if item == level {
			return true
		}
	}
	return false
}

// CanTransitionInquiryStatus 判断状态是否在转换表中，相同状态视为允许
func CanTransitionInquiryStatus(from, to string) bool {
	from = normalizeInquiryStatus(from)
	to = normalizeInquiryStatus(to)
	if from == to {
		return true
	}
	for _, next := range inquiryStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Allows 按策略判断是否放行，第二个返回值表示是否为表外变更
func (p TransitionPolicy) Allows(from, to string) (bool, bool) {
	inTable := CanTransitionInquiryStatus(from, to)
	if inTable {
		return true, false
	}
	return p != TransitionStrict, true
}

// String 策略名称
func (p TransitionPolicy) String() string {
	if p == TransitionStrict {
		return "strict"
	}
	return "permissive"
}

func normalizeInquiryStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}
