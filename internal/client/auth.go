package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// LoginResult 登录结果
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   string    `json:"expires_at"`
	Admin       AdminUser `json:"admin"`
}

// Login 表单登录并保存会话
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var result LoginResult
	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/admin/login",
		rawBody:     strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}, &result)
	if err != nil {
		return nil, err
	}
	if err := c.session.Save(result.AccessToken, result.Admin); err != nil {
		return nil, err
	}
	c.log.Infow("client_login_success", "username", result.Admin.Username)
	return &result, nil
}

// Logout 注销服务端令牌，本地会话总是清除
func (c *Client) Logout(ctx context.Context) error {
	if !c.session.IsAuthenticated() {
		return nil
	}
	err := c.send(ctx, http.MethodPost, "/api/admin/logout", nil, true, nil)
	if clearErr := c.session.Clear(); clearErr != nil {
		c.log.Warnw("client_session_clear_failed", "error", clearErr)
	}
	if IsSessionExpired(err) {
		return nil
	}
	return err
}

// MeResult 当前管理员与角色
type MeResult struct {
	Admin AdminUser `json:"admin"`
	Roles []string  `json:"roles"`
}

// Me 当前管理员
func (c *Client) Me(ctx context.Context) (*MeResult, error) {
	var result MeResult
	if err := c.get(ctx, "/api/admin/me", nil, true, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
