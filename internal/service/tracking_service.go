package service

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/yhdfc-next/internal/geoip"
	"github.com/yhdfc-next/internal/logger"
	"github.com/yhdfc-next/internal/models"
	"github.com/yhdfc-next/internal/queue"
	"github.com/yhdfc-next/internal/repository"
)

const (
	maskedIPUnknown      = "xxx.xxx.xxx.xxx"
	maxTrackFieldLength  = 500
	inlineGeolocateLimit = 10 * time.Second
)

// TrackingService 页面访问统计
type TrackingService struct {
	repo        repository.VisitRepository
	geo         *geoip.Client
	queueClient *queue.Client
	enabled     bool
}

// NewTrackingService 创建访问统计服务
func NewTrackingService(repo repository.VisitRepository, geo *geoip.Client, queueClient *queue.Client, enabled bool) *TrackingService {
	return &TrackingService{repo: repo, geo: geo, queueClient: queueClient, enabled: enabled}
}

// TrackInput 访问记录输入
type TrackInput struct {
	PagePath  string
	ClientIP  string
	UserAgent string
	Referrer  string
}

// Track 记录访问，仅保存脱敏 IP；地理位置由队列或后台协程补齐
func (s *TrackingService) Track(ctx context.Context, input TrackInput) (*models.Visit, error) {
	if !s.enabled {
		return nil, nil
	}
	pagePath := truncate(strings.TrimSpace(input.PagePath), maxTrackFieldLength)
	if pagePath == "" {
		return nil, ErrInvalidInput
	}
	visit := &models.Visit{
		PagePath:  pagePath,
		IPMasked:  MaskIP(input.ClientIP),
		UserAgent: truncate(input.UserAgent, maxTrackFieldLength),
		Referrer:  truncate(strings.TrimSpace(input.Referrer), maxTrackFieldLength),
	}
	if err := s.repo.Create(visit); err != nil {
		return nil, err
	}

	ip := strings.TrimSpace(input.ClientIP)
	if s.geo == nil || geoip.Skippable(ip) {
		return visit, nil
	}
	if s.queueClient.Enabled() {
		payload := queue.VisitGeolocatePayload{VisitID: visit.ID, IP: ip}
		if err := s.queueClient.EnqueueVisitGeolocate(ctx, payload); err != nil {
			logger.Warnw("visit_geolocate_enqueue_failed", "visit_id", visit.ID, "error", err)
		}
		return visit, nil
	}
	go func(visitID uint) {
		geoCtx, cancel := context.WithTimeout(context.Background(), inlineGeolocateLimit)
		defer cancel()
		if err := s.Geolocate(geoCtx, visitID, ip); err != nil {
			logger.Debugw("visit_geolocate_failed", "visit_id", visitID, "error", err)
		}
	}(visit.ID)
	return visit, nil
}

// Geolocate 解析 IP 所在地并回写访问记录
func (s *TrackingService) Geolocate(ctx context.Context, visitID uint, ip string) error {
	if s.geo == nil {
		return nil
	}
	location, err := s.geo.Lookup(ctx, ip)
	if err != nil {
		return err
	}
	if location == nil {
		return nil
	}
	return s.repo.UpdateGeo(visitID, location.Country, location.CountryCode, location.City)
}

// ResolveClientIP 依次取 X-Forwarded-For 首个地址、X-Real-IP、连接地址
func ResolveClientIP(forwardedFor, realIP, remoteAddr string) string {
	if forwardedFor = strings.TrimSpace(forwardedFor); forwardedFor != "" {
		first := strings.TrimSpace(strings.Split(forwardedFor, ",")[0])
		if first != "" {
			return first
		}
	}
	if realIP = strings.TrimSpace(realIP); realIP != "" {
		return realIP
	}
	remoteAddr = strings.TrimSpace(remoteAddr)
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	if remoteAddr == "" {
		return "127.0.0.1"
	}
	return remoteAddr
}

// MaskIP IPv4 保留前两段，其它格式整体脱敏
func MaskIP(ip string) string {
	parts := strings.Split(strings.TrimSpace(ip), ".")
	if len(parts) != 4 {
		return maskedIPUnknown
	}
	for _, part := range parts {
		if part == "" {
			return maskedIPUnknown
		}
	}
	return parts[0] + "." + parts[1] + ".xxx.xxx"
}

func truncate(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max])
}
