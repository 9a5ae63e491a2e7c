package service

import (
	"context"
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"github.com/yhdfc-next/internal/constants"
	"github.com/yhdfc-next/internal/models"
)

// SiteSetting 站点设置（公司信息、SEO、社交链接、系统开关）
type SiteSetting struct {
	CompanyName              string `json:"company_name"`
	CompanyEmail             string `json:"company_email"`
	CompanyPhone             string `json:"company_phone"`
	CompanyAddress           string `json:"company_address"`
	DefaultMetaTitle         string `json:"default_meta_title"`
	DefaultMetaDescription   string `json:"default_meta_description"`
	DefaultKeywords          string `json:"default_keywords"`
	FacebookURL              string `json:"facebook_url"`
	TwitterURL               string `json:"twitter_url"`
	LinkedInURL              string `json:"linkedin_url"`
	YoutubeURL               string `json:"youtube_url"`
	MaintenanceMode          bool   `json:"maintenance_mode"`
	AllowRegistration        bool   `json:"allow_registration"`
	RequireEmailVerification bool   `json:"require_email_verification"`
}

// SiteSettingPatch 站点设置补丁（仅更新提供的字段）
type SiteSettingPatch struct {
	CompanyName              *string `json:"company_name"`
	CompanyEmail             *string `json:"company_email"`
	CompanyPhone             *string `json:"company_phone"`
	CompanyAddress           *string `json:"company_address"`
	DefaultMetaTitle         *string `json:"default_meta_title"`
	DefaultMetaDescription   *string `json:"default_meta_description"`
	DefaultKeywords          *string `json:"default_keywords"`
	FacebookURL              *string `json:"facebook_url"`
	TwitterURL               *string `json:"twitter_url"`
	LinkedInURL              *string `json:"linkedin_url"`
	YoutubeURL               *string `json:"youtube_url"`
	MaintenanceMode          *bool   `json:"maintenance_mode"`
	AllowRegistration        *bool   `json:"allow_registration"`
	RequireEmailVerification *bool   `json:"require_email_verification"`
}

// SiteDefaultSetting 站点默认设置
func SiteDefaultSetting() SiteSetting {
	return SiteSetting{
		CompanyName:              "YH Digital Forensic Center",
		CompanyEmail:             "info@yhdfc.com",
		CompanyPhone:             "+82-10-0000-0000",
		CompanyAddress:           "Seoul, South Korea",
		DefaultMetaTitle:         "YHDFC - Digital Forensics & Cyber Investigation",
		DefaultMetaDescription:   "Professional digital forensics services including mobile forensics, computer forensics, and cyber investigation training.",
		DefaultKeywords:          "digital forensics, mobile forensics, computer forensics, cyber investigation, data recovery",
		RequireEmailVerification: true,
	}
}

// ValidateSiteSetting 校验站点设置
func ValidateSiteSetting(setting SiteSetting) error {
	if strings.TrimSpace(setting.CompanyName) == "" {
		return fmt.Errorf("%w: company_name 不能为空", ErrSiteSettingInvalid)
	}
	if email := strings.TrimSpace(setting.CompanyEmail); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return fmt.Errorf("%w: company_email 格式错误", ErrSiteSettingInvalid)
		}
	}
	links := map[string]string{
		"facebook_url": setting.FacebookURL,
		"twitter_url":  setting.TwitterURL,
		"linkedin_url": setting.LinkedInURL,
		"youtube_url":  setting.YoutubeURL,
	}
	for field, raw := range links {
		if raw == "" {
			continue
		}
		parsed, err := url.Parse(raw)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return fmt.Errorf("%w: %s 必须是 http(s) 链接", ErrSiteSettingInvalid, field)
		}
	}
	return nil
}

// SiteSettingToMap 转换为 settings 表格式
func SiteSettingToMap(setting SiteSetting) map[string]interface{} {
	return map[string]interface{}{
		"company_name":               strings.TrimSpace(setting.CompanyName),
		"company_email":              strings.TrimSpace(setting.CompanyEmail),
		"company_phone":              strings.TrimSpace(setting.CompanyPhone),
		"company_address":            strings.TrimSpace(setting.CompanyAddress),
		"default_meta_title":         strings.TrimSpace(setting.DefaultMetaTitle),
		"default_meta_description":   strings.TrimSpace(setting.DefaultMetaDescription),
		"default_keywords":           strings.TrimSpace(setting.DefaultKeywords),
		"facebook_url":               strings.TrimSpace(setting.FacebookURL),
		"twitter_url":                strings.TrimSpace(setting.TwitterURL),
		"linkedin_url":               strings.TrimSpace(setting.LinkedInURL),
		"youtube_url":                strings.TrimSpace(setting.YoutubeURL),
		"maintenance_mode":           setting.MaintenanceMode,
		"allow_registration":         setting.AllowRegistration,
		"require_email_verification": setting.RequireEmailVerification,
	}
}

// PublicSiteSetting 可公开下发的站点设置
func PublicSiteSetting(setting SiteSetting) models.JSON {
	public := models.JSON(SiteSettingToMap(setting))
	delete(public, "allow_registration")
	delete(public, "require_email_verification")
	return public
}

func siteSettingFromJSON(raw models.JSON, fallback SiteSetting) SiteSetting {
	next := fallback
	if raw == nil {
		return next
	}
	next.CompanyName = readString(raw, "company_name", next.CompanyName)
	next.CompanyEmail = readString(raw, "company_email", next.CompanyEmail)
	next.CompanyPhone = readString(raw, "company_phone", next.CompanyPhone)
	next.CompanyAddress = readString(raw, "company_address", next.CompanyAddress)
	next.DefaultMetaTitle = readString(raw, "default_meta_title", next.DefaultMetaTitle)
	next.DefaultMetaDescription = readString(raw, "default_meta_description", next.DefaultMetaDescription)
	next.DefaultKeywords = readString(raw, "default_keywords", next.DefaultKeywords)
	next.FacebookURL = readString(raw, "facebook_url", next.FacebookURL)
	next.TwitterURL = readString(raw, "twitter_url", next.TwitterURL)
	next.LinkedInURL = readString(raw, "linkedin_url", next.LinkedInURL)
	next.YoutubeURL = readString(raw, "youtube_url", next.YoutubeURL)
	next.MaintenanceMode = readBool(raw, "maintenance_mode", next.MaintenanceMode)
	next.AllowRegistration = readBool(raw, "allow_registration", next.AllowRegistration)
	next.RequireEmailVerification = readBool(raw, "require_email_verification", next.RequireEmailVerification)
	return next
}

// GetSiteSetting 获取站点设置，未保存时返回默认值
func (s *SettingService) GetSiteSetting(ctx context.Context) (SiteSetting, error) {
	fallback := SiteDefaultSetting()
	value, err := s.getCached(ctx, constants.SettingKeySiteConfig)
	if err != nil {
		return fallback, err
	}
	return siteSettingFromJSON(value, fallback), nil
}

// PatchSiteSetting 基于补丁更新站点设置
func (s *SettingService) PatchSiteSetting(ctx context.Context, patch SiteSettingPatch) (SiteSetting, error) {
	current, err := s.GetSiteSetting(ctx)
	if err != nil {
		return SiteSetting{}, err
	}

	next := current
	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	applyString(&next.CompanyName, patch.CompanyName)
	applyString(&next.CompanyEmail, patch.CompanyEmail)
	applyString(&next.CompanyPhone, patch.CompanyPhone)
	applyString(&next.CompanyAddress, patch.CompanyAddress)
	applyString(&next.DefaultMetaTitle, patch.DefaultMetaTitle)
	applyString(&next.DefaultMetaDescription, patch.DefaultMetaDescription)
	applyString(&next.DefaultKeywords, patch.DefaultKeywords)
	applyString(&next.FacebookURL, patch.FacebookURL)
	applyString(&next.TwitterURL, patch.TwitterURL)
	applyString(&next.LinkedInURL, patch.LinkedInURL)
	applyString(&next.YoutubeURL, patch.YoutubeURL)
	if patch.MaintenanceMode != nil {
		next.MaintenanceMode = *patch.MaintenanceMode
	}
	if patch.AllowRegistration != nil {
		next.AllowRegistration = *patch.AllowRegistration
	}
	if patch.RequireEmailVerification != nil {
		next.RequireEmailVerification = *patch.RequireEmailVerification
	}

	if err := ValidateSiteSetting(next); err != nil {
		return SiteSetting{}, err
	}
	if _, err := s.Update(constants.SettingKeySiteConfig, SiteSettingToMap(next)); err != nil {
		return SiteSetting{}, err
	}
	return next, nil
}
