package service

import "errors"

// 通用
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
)

// 管理员认证
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("weak password")
	ErrAdminDisabled      = errors.New("admin disabled")
	ErrTokenRevoked       = errors.New("token revoked")
)

// 文章与分类
var (
	ErrSlugExists           = errors.New("slug already exists")
	ErrSlugInvalid          = errors.New("slug invalid")
	ErrPostTitleRequired    = errors.New("post title required")
	ErrPostContentRequired  = errors.New("post content required")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryExists       = errors.New("category already exists")
	ErrCategoryInUse        = errors.New("category in use")
	ErrCategoryNameRequired = errors.New("category name required")
)

// 咨询
var (
	ErrInquiryRequiredFields = errors.New("inquiry required fields missing")
	ErrInvalidEmail          = errors.New("invalid email")
	ErrInvalidStatus         = errors.New("invalid inquiry status")
	ErrInvalidUrgency        = errors.New("invalid urgency level")
	ErrInvalidTransition     = errors.New("invalid inquiry status transition")
)

// 验证码
var (
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
)

// 邮件
var (
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
	ErrSMTPConfigInvalid         = errors.New("smtp config invalid")
)

// 上传与设置
var (
	ErrFileTooLarge       = errors.New("file too large")
	ErrInvalidFileType    = errors.New("invalid file type")
	ErrSiteSettingInvalid = errors.New("site setting invalid")
)
