// Package client 管理端 API 客户端
//
// 所有请求都绑定 context；携带会话令牌的请求收到 401 时清除本地会话，
// 返回 *SessionExpiredError，不做刷新与重试。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yhdfc-next/internal/constants"
	"github.com/yhdfc-next/internal/logger"

	"go.uber.org/zap"
)

const (
	defaultTimeout  = 15 * time.Second
	maxResponseBody = 8 << 20
)

// Client 管理端 API 客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
	log        *zap.SugaredLogger
}

// Option 客户端选项
type Option func(*Client)

// WithHTTPClient 自定义 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout 请求超时
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithLogger 自定义日志
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log.Sugar()
		}
	}
}

// New 创建客户端，baseURL 形如 https://yhdfc.com
func New(baseURL string, session *Session, opts ...Option) *Client {
	if session == nil {
		session = NewSession(nil)
	}
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		session:    session,
		log:        logger.S(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session 当前会话
func (c *Client) Session() *Session {
	return c.session
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        interface{}
	rawBody     io.Reader
	contentType string
	auth        bool
}

// do 发送请求并解析统一响应，out 为 nil 时忽略 data
func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	if req.auth && !c.session.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	body := req.rawBody
	contentType := req.contentType
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.auth {
		httpReq.Header.Set("Authorization", "Bearer "+c.session.Token())
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return err
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)
	if decodeErr != nil && resp.StatusCode != http.StatusUnauthorized {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{StatusCode: resp.StatusCode, BusinessCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		}
		return fmt.Errorf("decode response: %w", decodeErr)
	}

	if resp.StatusCode == http.StatusUnauthorized || env.StatusCode == http.StatusUnauthorized {
		if req.auth {
			return c.expire()
		}
		return &APIError{StatusCode: resp.StatusCode, BusinessCode: http.StatusUnauthorized, Message: env.Msg}
	}
	if resp.StatusCode >= http.StatusBadRequest || env.StatusCode != 0 {
		return &APIError{StatusCode: resp.StatusCode, BusinessCode: env.StatusCode, Message: env.Msg}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

func (c *Client) expire() error {
	if err := c.session.Clear(); err != nil {
		c.log.Warnw("client_session_clear_failed", "error", err)
	}
	return &SessionExpiredError{Redirect: constants.AdminLoginPath}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, auth bool, out interface{}) error {
	return c.do(ctx, request{method: http.MethodGet, path: path, query: query, auth: auth}, out)
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}, auth bool, out interface{}) error {
	return c.do(ctx, request{method: method, path: path, body: body, auth: auth}, out)
}
