package service

import (
	"strings"
	"sync"
	"time"

	"github.com/yhdfc-next/internal/config"
	"github.com/yhdfc-next/internal/models"

	"github.com/mojocn/base64Captcha"
)

// 图片噪点与干扰线固定，后台只开放长度、尺寸与有效期
const (
	captchaCharset    = "23456789abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ"
	captchaNoiseCount = 2
	captchaShowLine   = base64Captcha.OptionShowHollowLine
	captchaMaxStore   = 10240
	captchaSettingTTL = 30 * time.Second
)

// CaptchaVerifyPayload 验证码校验请求载荷
type CaptchaVerifyPayload struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// CaptchaImageChallenge 图片验证码挑战
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	Scene       string `json:"scene"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService 联系表单与后台登录的图片验证码
// 挑战按场景隔离：为 inquiry 生成的验证码不能用于 login
type CaptchaService struct {
	settingService *SettingService
	defaultConfig  config.CaptchaConfig

	mu        sync.Mutex
	setting   CaptchaSetting
	loadedAt  time.Time
	answers   base64Captcha.Store
	answerTTL int
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(settingService *SettingService, defaultConfig config.CaptchaConfig) *CaptchaService {
	return &CaptchaService{settingService: settingService, defaultConfig: defaultConfig}
}

// InvalidateCache 后台保存设置后调用
func (s *CaptchaService) InvalidateCache() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.loadedAt = time.Time{}
	s.mu.Unlock()
}

// GetPublicSetting 获取公开可下发配置
func (s *CaptchaService) GetPublicSetting() (models.JSON, error) {
	setting, err := s.currentSetting()
	if err != nil {
		return nil, err
	}
	return PublicCaptchaSetting(setting), nil
}

// GenerateImageChallenge 为指定场景生成图片验证码，场景未开启时返回 ErrCaptchaConfigInvalid
func (s *CaptchaService) GenerateImageChallenge(scene string) (*CaptchaImageChallenge, error) {
	setting, err := s.currentSetting()
	if err != nil {
		return nil, err
	}
	if !setting.requiresImage(scene) {
		return nil, ErrCaptchaConfigInvalid
	}
	scene = normalizeScene(scene)

	driver := base64Captcha.NewDriverString(
		setting.Image.Height,
		setting.Image.Width,
		captchaNoiseCount,
		captchaShowLine,
		setting.Image.Length,
		captchaCharset,
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	id, b64s, _, err := base64Captcha.NewCaptcha(driver, s.sceneStore(scene, setting)).Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaImageChallenge{CaptchaID: id, Scene: scene, ImageBase64: b64s}, nil
}

// Verify 按场景校验验证码，场景未开启时直接放行；答案不区分大小写且只能使用一次
func (s *CaptchaService) Verify(scene string, payload CaptchaVerifyPayload) error {
	setting, err := s.currentSetting()
	if err != nil {
		return err
	}
	if !setting.IsSceneEnabled(scene) {
		return nil
	}
	if !setting.requiresImage(scene) {
		return ErrCaptchaConfigInvalid
	}
	id := strings.TrimSpace(payload.CaptchaID)
	code := strings.TrimSpace(payload.CaptchaCode)
	if id == "" || code == "" {
		return ErrCaptchaRequired
	}
	if !s.sceneStore(normalizeScene(scene), setting).Verify(id, code, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

// sceneStore 共享答案存储，有效期变更时重建（已发出的挑战随之作废）
func (s *CaptchaService) sceneStore(scene string, setting CaptchaSetting) base64Captcha.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.answers == nil || s.answerTTL != setting.Image.ExpireSeconds {
		s.answers = base64Captcha.NewMemoryStore(captchaMaxStore, time.Duration(setting.Image.ExpireSeconds)*time.Second)
		s.answerTTL = setting.Image.ExpireSeconds
	}
	return scopedStore{scene: scene, inner: s.answers}
}

func (s *CaptchaService) currentSetting() (CaptchaSetting, error) {
	if s == nil {
		return CaptchaDefaultSetting(config.CaptchaConfig{}), nil
	}
	s.mu.Lock()
	if !s.loadedAt.IsZero() && time.Since(s.loadedAt) <= captchaSettingTTL {
		setting := s.setting
		s.mu.Unlock()
		return setting, nil
	}
	s.mu.Unlock()

	setting := CaptchaDefaultSetting(s.defaultConfig)
	if s.settingService != nil {
		loaded, err := s.settingService.GetCaptchaSetting(s.defaultConfig)
		if err != nil {
			return CaptchaSetting{}, err
		}
		setting = loaded
	}

	s.mu.Lock()
	s.setting = setting
	s.loadedAt = time.Now()
	s.mu.Unlock()
	return setting, nil
}

// scopedStore 以 "scene:id" 为键读写答案
type scopedStore struct {
	scene string
	inner base64Captcha.Store
}

func (s scopedStore) key(id string) string { return s.scene + ":" + id }

func (s scopedStore) Set(id, value string) error { return s.inner.Set(s.key(id), value) }

func (s scopedStore) Get(id string, clear bool) string { return s.inner.Get(s.key(id), clear) }

func (s scopedStore) Verify(id, answer string, clear bool) bool {
	return s.inner.Verify(s.key(id), answer, clear)
}
