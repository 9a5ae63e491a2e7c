// Package i18n 提供接口错误信息与通知邮件的多语言文案
package i18n

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/yhdfc-next/internal/constants"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

const (
	LocaleEN = constants.LocaleEnUS
	LocaleKO = constants.LocaleKoKR
	// DefaultLocale 缺省语言
	DefaultLocale = LocaleEN
)

//go:embed locales/*.yml
var localeFS embed.FS

var (
	loadOnce sync.Once
	catalogs map[string]map[string]string
	loadErr  error
)

func load() {
	catalogs = make(map[string]map[string]string, len(constants.SupportedLocales))
	for _, locale := range constants.SupportedLocales {
		raw, err := localeFS.ReadFile("locales/" + locale + ".yml")
		if err != nil {
			loadErr = fmt.Errorf("read locale %s: %w", locale, err)
			return
		}
		messages := map[string]string{}
		if err := yaml.Unmarshal(raw, &messages); err != nil {
			loadErr = fmt.Errorf("parse locale %s: %w", locale, err)
			return
		}
		catalogs[locale] = messages
	}
}

// Validate 校验内置语言包可以被解析
func Validate() error {
	loadOnce.Do(load)
	return loadErr
}

// T 查找文案，缺失时回退到默认语言，再回退为 key 本身
func T(locale, key string) string {
	loadOnce.Do(load)
	if msg, ok := catalogs[NormalizeLocale(locale)][key]; ok {
		return msg
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 查找文案并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// NormalizeLocale 归一化语言标识，ko / ko_KR / ko-kr 均视为 ko-KR
func NormalizeLocale(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.ReplaceAll(v, "_", "-")
	switch {
	case strings.HasPrefix(v, "ko"):
		return LocaleKO
	case strings.HasPrefix(v, "en"):
		return LocaleEN
	default:
		return DefaultLocale
	}
}

// ResolveLocale 依次读取 lang 查询参数与 Accept-Language 请求头
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return NormalizeLocale(lang)
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" || tag == "*" {
			continue
		}
		return NormalizeLocale(tag)
	}
	return DefaultLocale
}
