package router

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/yhdfc-next/internal/authz"
	"github.com/yhdfc-next/internal/cache"
	"github.com/yhdfc-next/internal/config"
	"github.com/yhdfc-next/internal/constants"
	adminhandlers "github.com/yhdfc-next/internal/http/handlers/admin"
	publichandlers "github.com/yhdfc-next/internal/http/handlers/public"
	"github.com/yhdfc-next/internal/http/response"
	"github.com/yhdfc-next/internal/i18n"
	"github.com/yhdfc-next/internal/logger"
	"github.com/yhdfc-next/internal/provider"

	"github.com/gin-gonic/gin"
)

const (
	defaultUploadDir    = "static/uploads"
	defaultUploadPrefix = "/static/uploads"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := newRateLimitRule(redisPrefix, "admin_login", cfg.Security.LoginRateLimit, "error.rate_limited", c.Metrics.RateLimited)
	inquiryRule := newRateLimitRule(redisPrefix, "inquiry", cfg.Security.InquiryRateLimit, "error.rate_limited", c.Metrics.RateLimited)
	trackRule := newRateLimitRule(redisPrefix, "track", cfg.Security.TrackRateLimit, "error.rate_limited", c.Metrics.RateLimited)

	metricsPath := strings.TrimSpace(cfg.Metrics.Path)
	if metricsPath == "" {
		metricsPath = "/metrics"
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log, "/health", metricsPath))
	r.Use(CORSMiddleware(cfg.CORS))
	if cfg.Metrics.Enabled && c.Metrics != nil {
		r.Use(c.Metrics.Middleware())
		r.GET(metricsPath, gin.WrapH(c.Metrics.Handler()))
	}

	// 本地上传文件
	uploadDir, uploadPrefix := cfg.Upload.Dir, cfg.Upload.PublicPrefix
	if strings.TrimSpace(uploadDir) == "" {
		uploadDir = defaultUploadDir
	}
	if strings.TrimSpace(uploadPrefix) == "" {
		uploadPrefix = defaultUploadPrefix
	}
	r.Static(uploadPrefix, uploadDir)

	api := r.Group("/api")
	{
		// 公开接口
		api.GET("/posts", publicHandler.GetPosts)
		api.GET("/posts/:slug", publicHandler.GetPostBySlug)
		api.GET("/categories", publicHandler.GetCategories)
		api.GET("/categories/taxonomy", publicHandler.GetTaxonomy)
		api.GET("/settings/public", publicHandler.GetPublicSettings)
		api.GET("/captcha/image", publicHandler.GetImageCaptcha)
		api.POST("/inquiries", RateLimitMiddleware(redisClient, inquiryRule, KeyByIP), publicHandler.CreateInquiry)
		api.POST("/track", RateLimitMiddleware(redisClient, trackRule, KeyByIP), publicHandler.TrackVisit)

		// 管理员接口
		admin := api.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndField("username")), adminHandler.AdminLogin)

			// 个人接口：仅需登录
			self := admin.Group("", JWTAuthMiddleware(cfg.JWT.SecretKey, c.AuthService))
			{
				self.GET("/me", adminHandler.GetAdminMe)
				self.POST("/logout", adminHandler.AdminLogout)
				self.PUT("/password", adminHandler.UpdateAdminPassword)
			}

			// 需要鉴权的接口
			authorized := admin.Group("", JWTAuthMiddleware(cfg.JWT.SecretKey, c.AuthService), AdminRBACMiddleware(c.AuthzService))
			{
				// 仪表盘与访问统计
				authorized.GET("/dashboard/stats", adminHandler.GetDashboardStats)
				authorized.GET("/dashboard/activity", adminHandler.GetDashboardActivity)
				authorized.GET("/analytics/stats", adminHandler.GetAnalyticsStats)
				authorized.GET("/analytics/countries", adminHandler.GetAnalyticsCountries)
				authorized.GET("/analytics/recent", adminHandler.GetAnalyticsRecent)
				authorized.GET("/analytics/daily", adminHandler.GetAnalyticsDaily)

				// 文章管理
				authorized.GET("/posts", adminHandler.GetAdminPosts)
				authorized.GET("/posts/:id", adminHandler.GetAdminPost)
				authorized.POST("/posts", adminHandler.CreatePost)
				authorized.PUT("/posts/:id", adminHandler.UpdatePost)
				authorized.DELETE("/posts/:id", adminHandler.DeletePost)

				// 分类管理
				authorized.GET("/categories", adminHandler.GetAdminCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)

				// 咨询管理
				authorized.GET("/inquiries", adminHandler.GetAdminInquiries)
				authorized.GET("/inquiries/stats", adminHandler.GetInquiryStats)
				authorized.GET("/inquiries/:id", adminHandler.GetAdminInquiry)
				authorized.PUT("/inquiries/:id", adminHandler.UpdateInquiry)
				authorized.DELETE("/inquiries/:id", adminHandler.DeleteInquiry)

				// 文件上传
				authorized.POST("/upload", adminHandler.UploadFile)

				// 设置管理
				authorized.GET("/settings", adminHandler.GetSettings)
				authorized.PUT("/settings", adminHandler.UpdateSettings)
				authorized.GET("/settings/smtp", adminHandler.GetSMTPSettings)
				authorized.PUT("/settings/smtp", adminHandler.UpdateSMTPSettings)
				authorized.POST("/settings/smtp/test", adminHandler.TestSMTPSettings)
				authorized.GET("/settings/captcha", adminHandler.GetCaptchaSettings)
				authorized.PUT("/settings/captcha", adminHandler.UpdateCaptchaSettings)

				// 权限管理
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAuthzAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
			}
		}
	}

	r.GET("/sitemap.xml", publicHandler.GetSitemap)
	r.GET("/robots.txt", publicHandler.GetRobots)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.NoRoute(func(c *gin.Context) {
		response.RouteNotFound(c, i18n.T(i18n.ResolveLocale(c), "error.not_found"))
	})

	return r
}

func newRateLimitRule(prefix, name string, cfg config.RateLimitConfig, messageKey string, onLimited func(string)) RateLimitRule {
	return RateLimitRule{
		Name:          name,
		Prefix:        fmt.Sprintf("%s:rate:%s", prefix, name),
		WindowSeconds: cfg.WindowSeconds,
		MaxRequests:   cfg.MaxAttempts,
		BlockSeconds:  cfg.BlockSeconds,
		MessageKey:    messageKey,
		OnLimited:     onLimited,
	}
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/admin/") {
			continue
		}
		if item.Path == "/api/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
