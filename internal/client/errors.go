package client

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated 未登录时调用管理接口
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrInquiryNotLoaded 操作的咨询不在当前列表中
var ErrInquiryNotLoaded = errors.New("inquiry not loaded")

// APIError 服务端返回的业务错误
type APIError struct {
	StatusCode   int    // HTTP 状态码
	BusinessCode int    // 响应体 status_code
	Message      string // 响应体 msg
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: http=%d code=%d msg=%s", e.StatusCode, e.BusinessCode, e.Message)
}

// SessionExpiredError 令牌失效，会话已清除
type SessionExpiredError struct {
	Redirect string
}

func (e *SessionExpiredError) Error() string {
	return "session expired, login again at " + e.Redirect
}

// IsSessionExpired 判断是否为会话过期
func IsSessionExpired(err error) bool {
	var target *SessionExpiredError
	return errors.As(err, &target)
}
