package client

import (
	"encoding/json"
	"strings"

	"github.com/yhdfc-next/internal/constants"
)

// Session 管理端登录会话
type Session struct {
	storage Storage
}

// NewSession 基于存储创建会话，storage 为空时使用内存存储
func NewSession(storage Storage) *Session {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	return &Session{storage: storage}
}

// Token 当前访问令牌
func (s *Session) Token() string {
	token, _ := s.storage.Get(constants.StorageKeyAdminToken)
	return strings.TrimSpace(token)
}

// IsAuthenticated 是否持有令牌
func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

// User 当前管理员信息
func (s *Session) User() (*AdminUser, bool) {
	raw, ok := s.storage.Get(constants.StorageKeyAdminUser)
	if !ok || raw == "" {
		return nil, false
	}
	var user AdminUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, false
	}
	return &user, true
}

// Save 保存登录结果
func (s *Session) Save(token string, user AdminUser) error {
	body, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.storage.Set(constants.StorageKeyAdminToken, token); err != nil {
		return err
	}
	return s.storage.Set(constants.StorageKeyAdminUser, string(body))
}

// Clear 清除令牌与管理员信息
func (s *Session) Clear() error {
	return s.storage.Delete(constants.StorageKeyAdminToken, constants.StorageKeyAdminUser)
}

// CachedSettings 本地缓存的公开站点设置
func (s *Session) CachedSettings() (map[string]interface{}, bool) {
	raw, ok := s.storage.Get(constants.StorageKeySettings)
	if !ok || raw == "" {
		return nil, false
	}
	var settings map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return nil, false
	}
	return settings, true
}

// CacheSettings 写入公开站点设置缓存
func (s *Session) CacheSettings(settings map[string]interface{}) error {
	body, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.storage.Set(constants.StorageKeySettings, string(body))
}
