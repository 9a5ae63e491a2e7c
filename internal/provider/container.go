package provider

import (
	"time"

	"github.com/yhdfc-next/internal/authz"
	"github.com/yhdfc-next/internal/cache"
	"github.com/yhdfc-next/internal/config"
	"github.com/yhdfc-next/internal/geoip"
	"github.com/yhdfc-next/internal/logger"
	"github.com/yhdfc-next/internal/metrics"
	"github.com/yhdfc-next/internal/models"
	"github.com/yhdfc-next/internal/queue"
	"github.com/yhdfc-next/internal/repository"
	"github.com/yhdfc-next/internal/service"
	"github.com/yhdfc-next/internal/storage"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Metrics     *metrics.Metrics

	// Repositories
	AdminRepo     repository.AdminRepository
	CategoryRepo  repository.CategoryRepository
	PostRepo      repository.PostRepository
	InquiryRepo   repository.InquiryRepository
	VisitRepo     repository.VisitRepository
	SettingRepo   repository.SettingRepository
	DashboardRepo repository.DashboardRepository

	// Services
	AuthzService     *authz.Service
	AuthService      *service.AuthService
	SettingService   *service.SettingService
	EmailService     *service.EmailService
	CaptchaService   *service.CaptchaService
	UploadService    *service.UploadService
	PostService      *service.PostService
	CategoryService  *service.CategoryService
	InquiryService   *service.InquiryService
	TrackingService  *service.TrackingService
	AnalyticsService *service.AnalyticsService
	DashboardService *service.DashboardService
	SitemapService   *service.SitemapService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient = nil
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Metrics:     metrics.Default,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.PostRepo = repository.NewPostRepository(db)
	c.InquiryRepo = repository.NewInquiryRepository(db)
	c.VisitRepo = repository.NewVisitRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.SettingService = service.NewSettingService(c.SettingRepo)
	smtpSetting, err := c.SettingService.GetSMTPSetting(c.Config.Email)
	if err != nil {
		logger.Warnw("provider_load_smtp_setting_failed", "error", err)
	} else {
		c.Config.Email = service.SMTPSettingToConfig(smtpSetting)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.SettingService, c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UploadService = service.NewUploadService(c.Config.Upload, c.newObjectStore(), storage.NewLocalStore(c.Config.Upload.Dir, c.Config.Upload.PublicPrefix))
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.PostService = service.NewPostService(c.PostRepo, c.CategoryRepo, cache.TTLFromSeconds(c.Config.Redis.PostListTTLSeconds))
	c.InquiryService = service.NewInquiryService(c.Config, c.InquiryRepo, c.AdminRepo, c.SettingService, c.EmailService, c.QueueClient)

	geo := geoip.New(c.Config.Tracking.GeoIPEndpoint, time.Duration(c.Config.Tracking.GeoIPTimeoutSecs)*time.Second)
	c.TrackingService = service.NewTrackingService(c.VisitRepo, geo, c.QueueClient, c.Config.Tracking.Enabled)
	c.AnalyticsService = service.NewAnalyticsService(c.VisitRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.PostRepo, c.InquiryRepo)
	c.SitemapService = service.NewSitemapService(c.PostRepo, c.CategoryService, c.Config.Site.BaseURL)
}

// newObjectStore 对象存储不可用时返回 nil，上传退回本地存储
func (c *Container) newObjectStore() storage.Store {
	store, err := storage.NewObjectStore(c.Config.Storage)
	if err != nil {
		logger.Warnw("provider_init_object_storage_failed", "error", err)
		return nil
	}
	if store == nil {
		return nil
	}
	return store
}
