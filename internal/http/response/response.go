package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构；业务错误也以 HTTP 200 返回，由 status_code 区分
type Response struct {
	StatusCode int         `json:"status_code"` // 业务状态码，0 为成功
	Msg        string      `json:"msg"`         // 提示消息
	Data       interface{} `json:"data"`        // 数据内容
}

// ListPage 列表分页数据：{<items>, total, page, limit, total_pages}
func ListPage(itemsKey string, items interface{}, total int64, page, limit int) gin.H {
	totalPages := int64(0)
	if limit > 0 {
		totalPages = (total + int64(limit) - 1) / int64(limit)
	}
	return gin.H{
		itemsKey:      items,
		"total":       total,
		"page":        page,
		"limit":       limit,
		"total_pages": totalPages,
	}
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{StatusCode: CodeOK, Msg: "success", Data: data})
}

// Error 业务错误响应，data 只携带 request_id 便于排查
func Error(c *gin.Context, code int, msg string) {
	c.JSON(http.StatusOK, Response{StatusCode: code, Msg: msg, Data: requestIDData(c)})
}

// Unauthorized 未登录或令牌失效，客户端据此清除会话
func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

// Forbidden 无权限
func Forbidden(c *gin.Context, msg string) {
	Error(c, CodeForbidden, msg)
}

// RouteNotFound 未匹配路由，唯一使用 HTTP 404 的响应
func RouteNotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, Response{StatusCode: CodeNotFound, Msg: msg, Data: requestIDData(c)})
}

func requestIDData(c *gin.Context) interface{} {
	if c == nil {
		return nil
	}
	if id := c.GetString("request_id"); id != "" {
		return gin.H{"request_id": id}
	}
	return nil
}
