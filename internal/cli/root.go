// Package cli yhctl 管理命令行
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yhdfc-next/internal/client"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	envServer      = "YHCTL_SERVER"
	defaultServer  = "http://localhost:8000"
	defaultTimeout = 15 * time.Second
)

type globalOptions struct {
	server      string
	sessionPath string
	timeout     time.Duration
	style       string
}

// app 命令共享状态
type app struct {
	opts   globalOptions
	client *client.Client
}

// NewRootCommand 构建 yhctl 根命令
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "yhctl",
		Short:         "YHDFC site admin client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	server := os.Getenv(envServer)
	if server == "" {
		server = defaultServer
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.server, "server", server, "API 地址（环境变量 "+envServer+"）")
	flags.StringVar(&a.opts.sessionPath, "session", "", "会话文件路径，默认 ~/.config/yhctl/session.yml")
	flags.DurationVar(&a.opts.timeout, "timeout", defaultTimeout, "请求超时")
	flags.StringVar(&a.opts.style, "style", "auto", "正文渲染样式：auto/dark/light/notty")

	root.AddCommand(
		newLoginCommand(a),
		newLogoutCommand(a),
		newWhoamiCommand(a),
		newPostsCommand(a),
		newInquiriesCommand(a),
		newAnalyticsCommand(a),
		newContactCommand(a),
		newSlugCommand(a),
	)
	return root
}

func (a *app) init() error {
	path := strings.TrimSpace(a.opts.sessionPath)
	if path == "" {
		defaultPath, err := client.DefaultSessionPath()
		if err != nil {
			return fmt.Errorf("resolve session path: %w", err)
		}
		path = defaultPath
	}
	a.client = client.New(a.opts.server, client.NewSession(client.NewFileStorage(path)),
		client.WithTimeout(a.opts.timeout),
		client.WithLogger(zap.NewNop()),
	)
	return nil
}

// Execute 运行命令并把会话过期转换为登录提示
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(describeError(err)))
		return 1
	}
	return 0
}

func describeError(err error) string {
	var expired *client.SessionExpiredError
	var apiErr *client.APIError
	switch {
	case errors.As(err, &expired):
		return "session expired; run `yhctl login` (web: " + expired.Redirect + ")"
	case errors.Is(err, client.ErrNotAuthenticated):
		return "not logged in; run `yhctl login`"
	case errors.As(err, &apiErr):
		return fmt.Sprintf("server rejected request (%d): %s", apiErr.BusinessCode, apiErr.Message)
	default:
		return err.Error()
	}
}
