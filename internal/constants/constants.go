package constants

// 咨询状态常量
const (
	InquiryStatusNew       = "new"
	InquiryStatusRead      = "read"
	InquiryStatusResponded = "responded"
	InquiryStatusClosed    = "closed"
)

// InquiryStatuses 咨询状态全集（按生命周期顺序）
var InquiryStatuses = []string{
	InquiryStatusNew,
	InquiryStatusRead,
	InquiryStatusResponded,
	InquiryStatusClosed,
}

// 咨询紧急程度常量
const (
	UrgencyLow    = "low"
	UrgencyNormal = "normal"
	UrgencyHigh   = "high"
	UrgencyUrgent = "urgent"
)

// UrgencyLevels 紧急程度全集
var UrgencyLevels = []string{UrgencyLow, UrgencyNormal, UrgencyHigh, UrgencyUrgent}

// 咨询表单默认值
const (
	InquiryDefaultCountryCode = "+82"
)

// 筛选通配值
const (
	FilterAll = "all"
)

// 文章发布状态筛选
const (
	PostStatusPublished = "published"
	PostStatusDraft     = "draft"
)

// 顶级栏目常量
const (
	CategoryDigitalForensic = "digital-forensic"
	CategoryPress           = "press"
	CategoryTraining        = "training"
	CategoryBlogAlias       = "blog"
)

// 数字取证子栏目常量
const (
	SubcategoryGeneralForensics  = "general-forensics"
	SubcategoryEvidenceForensics = "evidence-forensics"
	SubcategoryDigitalCrime      = "digital-crime"
)

// 上传存储类型
const (
	StorageLocal  = "local"
	StorageObject = "s3"
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码校验场景常量
const (
	CaptchaSceneInquiry = "inquiry"
	CaptchaSceneLogin   = "login"
)

// 队列常量
const (
	QueueDefault       = "default"
	QueueCritical      = "critical"
	TaskInquiryNotify  = "inquiry:notify_email"
	TaskVisitGeolocate = "visit:geolocate"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "yh"
)

// 设置键常量
const (
	SettingKeySiteConfig    = "site_config"
	SettingKeyCaptchaConfig = "captcha_config"
	SettingKeySMTPConfig    = "smtp_config"
)

// 站点语言常量
const (
	LocaleEnUS = "en-US"
	LocaleKoKR = "ko-KR"
)

// SupportedLocales 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleEnUS, LocaleKoKR}

// 管理端登录跳转
const (
	AdminLoginPath = "/admin/login"
)

// 客户端会话存储键
const (
	StorageKeyAdminToken = "adminToken"
	StorageKeyAdminUser  = "adminUser"
	StorageKeySettings   = "yhdfc_settings"
)

// 日期格式（培训日期）
const (
	DateLayout = "2006-01-02"
)

// 占位符
const (
	SlugPlaceholder = "your-slug-here"
)
