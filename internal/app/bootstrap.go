package app

import (
	"errors"

	"github.com/yhdfc-next/internal/config"
	"github.com/yhdfc-next/internal/logger"
	"github.com/yhdfc-next/internal/provider"
	"github.com/yhdfc-next/internal/router"
	"github.com/yhdfc-next/internal/worker"
)

// ErrQueueDisabled worker 模式要求启用队列
var ErrQueueDisabled = errors.New("worker mode requires queue.enabled")

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if !IsValidMode(mode) {
		return nil, errors.New("unknown mode: " + mode)
	}
	if mode == ModeWorker && !cfg.Queue.Enabled {
		return nil, ErrQueueDisabled
	}

	container := provider.NewContainer(cfg)

	var services []Service

	// 初始化 HTTP 服务
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(serverAddr(cfg), engine))
	}

	// 初始化 Worker 服务；all 模式下未启用队列时由 API 进程内联执行后台任务
	if mode == ModeAll || mode == ModeWorker {
		if cfg.Queue.Enabled {
			workerService, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
			if err != nil {
				return nil, err
			}
			services = append(services, workerService)
		} else {
			logger.Infow("app_worker_skipped", "reason", "queue_disabled")
		}
	}

	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	// 日志级别热更新
	config.Watch(func(next *config.Config) {
		if next.Log.Level == "" {
			return
		}
		if err := logger.SetLevel(next.Log.Level); err != nil {
			opts.Logger.Warnw("app_log_level_reload_failed", "level", next.Log.Level, "error", err)
			return
		}
		opts.Logger.Infow("app_log_level_reloaded", "level", logger.Level())
	})

	opts.Logger.Infow("app_start", "addr", serverAddr(opts.Config), "mode", opts.Mode, "queue_enabled", opts.Config.Queue.Enabled)
	return RunWithOptions(runner, opts)
}

func serverAddr(cfg *config.Config) string {
	return cfg.Server.Host + ":" + cfg.Server.Port
}
