package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/yhdfc-next/internal/app"
	"github.com/yhdfc-next/internal/config"
	"github.com/yhdfc-next/internal/logger"
	"github.com/yhdfc-next/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiCyan  = "\033[36m"
	ansiBlue  = "\033[34m"
)

func main() {
	// 解析命令行参数
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	printStartupBanner(mode)

	// 加载配置
	cfg := config.Load()
	log := logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions()).Sugar()
	defer func() { _ = log.Sync() }()

	if isWeakSecret(cfg.JWT.SecretKey) {
		if cfg.Server.Mode == "release" {
			log.Fatalw("jwt_secret_weak", "hint", "configure a random secret of at least 32 characters")
		}
		log.Warnw("jwt_secret_weak", "hint", "replace jwt.secret before deploying")
	}

	// 初始化数据库
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
		LogLevel:               cfg.Database.LogLevel,
	}); err != nil {
		log.Fatalw("database_init_failed", "error", err)
	}

	// 自动迁移数据库表
	if err := models.AutoMigrate(); err != nil {
		log.Fatalw("database_migrate_failed", "error", err)
	}
	if err := models.EnsureDefaultCategories(); err != nil {
		log.Warnw("default_categories_init_failed", "error", err)
	}

	// 初始化默认管理员账号
	if cfg.Server.Mode == "release" && cfg.Admin.Password == "" {
		log.Warnw("default_admin_skipped", "reason", "admin.password not set")
	} else if err := models.InitDefaultAdmin(models.DefaultAdminInput{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
		Email:    cfg.Admin.Email,
		FullName: cfg.Admin.FullName,
	}); err != nil {
		log.Warnw("default_admin_init_failed", "error", err)
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  log,
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		log.Fatalw("app_run_failed", "error", err)
	}
}

func printStartupBanner(mode string) {
	fmt.Println(ansiCyan + "██╗   ██╗██╗  ██╗██████╗ ███████╗ ██████╗" + ansiReset)
	fmt.Println(ansiCyan + "╚██╗ ██╔╝██║  ██║██╔══██╗██╔════╝██╔════╝" + ansiReset)
	fmt.Println(ansiCyan + " ╚████╔╝ ███████║██║  ██║█████╗  ██║     " + ansiReset)
	fmt.Println(ansiCyan + "  ╚██╔╝  ██╔══██║██║  ██║██╔══╝  ██║     " + ansiReset)
	fmt.Println(ansiCyan + "   ██║   ██║  ██║██████╔╝██║     ╚██████╗" + ansiReset)
	fmt.Println(ansiCyan + "   ╚═╝   ╚═╝  ╚═╝╚═════╝ ╚═╝      ╚═════╝" + ansiReset)
	fmt.Println(ansiBold + "YH Digital Forensic Center API" + ansiReset)
	fmt.Println(ansiBlue + "• mode: " + mode + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	return strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key")
}
