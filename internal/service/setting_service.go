package service

import (
	"context"
	"strings"
	"time"

	"github.com/yhdfc-next/internal/cache"
	"github.com/yhdfc-next/internal/constants"
	"github.com/yhdfc-next/internal/logger"
	"github.com/yhdfc-next/internal/models"
	"github.com/yhdfc-next/internal/repository"
)

const settingCacheTTL = 5 * time.Minute

// SettingService 设置业务服务
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService 创建设置服务
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// GetByKey 获取设置
func (s *SettingService) GetByKey(key string) (models.JSON, error) {
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, nil
	}
	return setting.ValueJSON, nil
}

// Update 设置值
func (s *SettingService) Update(key string, value map[string]interface{}) (models.JSON, error) {
	normalized := normalizeSettingValueByKey(key, value)

	setting, err := s.repo.Upsert(key, normalized)
	if err != nil {
		return nil, err
	}
	if err := cache.Del(context.Background(), settingCacheKey(key)); err != nil {
		logger.Warnw("setting_cache_invalidate_failed", "key", key, "error", err)
	}
	return setting.ValueJSON, nil
}

// getCached 读取设置，命中 Redis 时不访问数据库
func (s *SettingService) getCached(ctx context.Context, key string) (models.JSON, error) {
	var cached models.JSON
	if hit, err := cache.GetJSON(ctx, settingCacheKey(key), &cached); err == nil && hit {
		return cached, nil
	}
	value, err := s.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if value != nil {
		if err := cache.SetJSON(ctx, settingCacheKey(key), value, settingCacheTTL); err != nil {
			logger.Warnw("setting_cache_write_failed", "key", key, "error", err)
		}
	}
	return value, nil
}

func settingCacheKey(key string) string {
	return "settings:" + strings.TrimSpace(key)
}

// normalizeSettingValueByKey 按设置键执行归一化，避免非法值入库。
func normalizeSettingValueByKey(key string, value map[string]interface{}) models.JSON {
	switch key {
	case constants.SettingKeySiteConfig:
		setting := siteSettingFromJSON(models.JSON(value), SiteDefaultSetting())
		return SiteSettingToMap(setting)
	default:
		return models.JSON(value)
	}
}
