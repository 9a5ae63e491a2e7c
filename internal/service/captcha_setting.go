package service

import (
	"fmt"
	"strings"

	"github.com/yhdfc-next/internal/config"
	"github.com/yhdfc-next/internal/constants"
	"github.com/yhdfc-next/internal/models"
)

// CaptchaSceneSetting 验证码场景配置
// inquiry 对应前台联系表单，login 对应后台管理员登录
type CaptchaSceneSetting struct {
	Inquiry bool `json:"inquiry"`
	Login   bool `json:"login"`
}

// CaptchaImageSetting 图片验证码配置
type CaptchaImageSetting struct {
	Length        int `json:"length"`
	Width         int `json:"width"`
	Height        int `json:"height"`
	ExpireSeconds int `json:"expire_seconds"`
}

// CaptchaSetting 验证码配置实体
type CaptchaSetting struct {
	Provider string              `json:"provider"`
	Scenes   CaptchaSceneSetting `json:"scenes"`
	Image    CaptchaImageSetting `json:"image"`
}

// CaptchaScenePatch 场景配置补丁
type CaptchaScenePatch struct {
	Inquiry *bool `json:"inquiry"`
	Login   *bool `json:"login"`
}

// CaptchaImagePatch 图片配置补丁
type CaptchaImagePatch struct {
	Length        *int `json:"length"`
	Width         *int `json:"width"`
	Height        *int `json:"height"`
	ExpireSeconds *int `json:"expire_seconds"`
}

// CaptchaSettingPatch 验证码配置补丁
type CaptchaSettingPatch struct {
	Provider *string            `json:"provider"`
	Scenes   *CaptchaScenePatch `json:"scenes"`
	Image    *CaptchaImagePatch `json:"image"`
}

// CaptchaDefaultSetting 根据静态配置生成默认验证码设置
func CaptchaDefaultSetting(cfg config.CaptchaConfig) CaptchaSetting {
	setting := CaptchaSetting{
		Provider: strings.ToLower(strings.TrimSpace(cfg.Provider)),
		Scenes: CaptchaSceneSetting{
			Inquiry: cfg.Scenes.Inquiry,
			Login:   cfg.Scenes.Login,
		},
		Image: CaptchaImageSetting{
			Length:        cfg.Image.Length,
			Width:         cfg.Image.Width,
			Height:        cfg.Image.Height,
			ExpireSeconds: cfg.Image.ExpireSeconds,
		},
	}
	return NormalizeCaptchaSetting(setting)
}

// NormalizeCaptchaSetting 归一化验证码配置
func NormalizeCaptchaSetting(setting CaptchaSetting) CaptchaSetting {
	provider := strings.ToLower(strings.TrimSpace(setting.Provider))
	switch provider {
	case constants.CaptchaProviderImage, constants.CaptchaProviderNone:
		setting.Provider = provider
	default:
		setting.Provider = constants.CaptchaProviderNone
	}

	if setting.Image.Length < 4 || setting.Image.Length > 8 {
		setting.Image.Length = 5
	}
	if setting.Image.Width < 100 {
		setting.Image.Width = 240
	}
	if setting.Image.Height < 40 {
		setting.Image.Height = 80
	}
	if setting.Image.ExpireSeconds < 30 || setting.Image.ExpireSeconds > 3600 {
		setting.Image.ExpireSeconds = 300
	}
	return setting
}

// ValidateCaptchaSetting 校验验证码配置
func ValidateCaptchaSetting(setting CaptchaSetting) error {
	provider := strings.ToLower(strings.TrimSpace(setting.Provider))
	switch provider {
	case constants.CaptchaProviderNone, constants.CaptchaProviderImage:
	default:
		return fmt.Errorf("%w: 验证码提供方无效", ErrCaptchaConfigInvalid)
	}
	if provider == constants.CaptchaProviderNone && setting.Scenes.anyEnabled() {
		return fmt.Errorf("%w: 已启用验证码场景时必须选择验证码提供方", ErrCaptchaConfigInvalid)
	}
	if setting.Image.Length < 4 || setting.Image.Length > 8 {
		return fmt.Errorf("%w: 图片验证码长度需在 4-8 之间", ErrCaptchaConfigInvalid)
	}
	if setting.Image.Width < 100 || setting.Image.Height < 40 {
		return fmt.Errorf("%w: 图片验证码宽高不合法", ErrCaptchaConfigInvalid)
	}
	if setting.Image.ExpireSeconds < 30 || setting.Image.ExpireSeconds > 3600 {
		return fmt.Errorf("%w: 图片验证码过期时间需在 30-3600 秒", ErrCaptchaConfigInvalid)
	}
	return nil
}

// CaptchaSettingToMap 将验证码设置转换为 settings 表格式
func CaptchaSettingToMap(setting CaptchaSetting) map[string]interface{} {
	normalized := NormalizeCaptchaSetting(setting)
	return map[string]interface{}{
		"provider": normalized.Provider,
		"scenes": map[string]interface{}{
			"inquiry": normalized.Scenes.Inquiry,
			"login":   normalized.Scenes.Login,
		},
		"image": map[string]interface{}{
			"length":         normalized.Image.Length,
			"width":          normalized.Image.Width,
			"height":         normalized.Image.Height,
			"expire_seconds": normalized.Image.ExpireSeconds,
		},
	}
}

// PublicCaptchaSetting 返回可公开下发前端的验证码配置
func PublicCaptchaSetting(setting CaptchaSetting) models.JSON {
	normalized := NormalizeCaptchaSetting(setting)
	return models.JSON{
		"provider": normalized.Provider,
		"scenes": map[string]interface{}{
			"inquiry": normalized.Scenes.Inquiry,
			"login":   normalized.Scenes.Login,
		},
	}
}

func (s CaptchaSceneSetting) anyEnabled() bool {
	return s.Inquiry || s.Login
}

// IsSceneEnabled 判断指定场景是否开启
func (s CaptchaSetting) IsSceneEnabled(scene string) bool {
	switch normalizeScene(scene) {
	case constants.CaptchaSceneInquiry:
		return s.Scenes.Inquiry
	case constants.CaptchaSceneLogin:
		return s.Scenes.Login
	default:
		return false
	}
}

// requiresImage 场景开启且提供方为图片验证码
func (s CaptchaSetting) requiresImage(scene string) bool {
	return s.Provider == constants.CaptchaProviderImage && s.IsSceneEnabled(scene)
}

func normalizeScene(scene string) string {
	return strings.ToLower(strings.TrimSpace(scene))
}

// GetCaptchaSetting 获取验证码设置（优先 settings，空时回退 config.yml）
func (s *SettingService) GetCaptchaSetting(defaultCfg config.CaptchaConfig) (CaptchaSetting, error) {
	fallback := CaptchaDefaultSetting(defaultCfg)
	value, err := s.GetByKey(constants.SettingKeyCaptchaConfig)
	if err != nil {
		return fallback, err
	}
	if value == nil {
		return fallback, nil
	}
	return NormalizeCaptchaSetting(captchaSettingFromJSON(value, fallback)), nil
}

// PatchCaptchaSetting 基于补丁更新验证码设置
func (s *SettingService) PatchCaptchaSetting(defaultCfg config.CaptchaConfig, patch CaptchaSettingPatch) (CaptchaSetting, error) {
	current, err := s.GetCaptchaSetting(defaultCfg)
	if err != nil {
		return CaptchaSetting{}, err
	}

	next := current
	if patch.Provider != nil {
		next.Provider = strings.ToLower(strings.TrimSpace(*patch.Provider))
	}
	if patch.Scenes != nil {
		if patch.Scenes.Inquiry != nil {
			next.Scenes.Inquiry = *patch.Scenes.Inquiry
		}
		if patch.Scenes.Login != nil {
			next.Scenes.Login = *patch.Scenes.Login
		}
	}
	if patch.Image != nil {
		assignInt := func(dst *int, src *int) {
			if src != nil {
				*dst = *src
			}
		}
		assignInt(&next.Image.Length, patch.Image.Length)
		assignInt(&next.Image.Width, patch.Image.Width)
		assignInt(&next.Image.Height, patch.Image.Height)
		assignInt(&next.Image.ExpireSeconds, patch.Image.ExpireSeconds)
	}

	if err := ValidateCaptchaSetting(next); err != nil {
		return CaptchaSetting{}, err
	}
	normalized := NormalizeCaptchaSetting(next)
	if _, err := s.Update(constants.SettingKeyCaptchaConfig, CaptchaSettingToMap(normalized)); err != nil {
		return CaptchaSetting{}, err
	}
	return normalized, nil
}

func captchaSettingFromJSON(raw models.JSON, fallback CaptchaSetting) CaptchaSetting {
	next := fallback
	if raw == nil {
		return next
	}

	next.Provider = readString(raw, "provider", next.Provider)
	if scenesMap := toStringAnyMap(raw["scenes"]); scenesMap != nil {
		next.Scenes.Inquiry = readBool(scenesMap, "inquiry", next.Scenes.Inquiry)
		next.Scenes.Login = readBool(scenesMap, "login", next.Scenes.Login)
	}
	if imageMap := toStringAnyMap(raw["image"]); imageMap != nil {
		next.Image.Length = readInt(imageMap, "length", next.Image.Length)
		next.Image.Width = readInt(imageMap, "width", next.Image.Width)
		next.Image.Height = readInt(imageMap, "height", next.Image.Height)
		next.Image.ExpireSeconds = readInt(imageMap, "expire_seconds", next.Image.ExpireSeconds)
	}
	return next
}
