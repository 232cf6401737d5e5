package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody 错误响应结构 {code, message, data:{status}}
type ErrorBody struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Data    ErrorData `json:"data"`
}

// ErrorData 错误附加信息
type ErrorData struct {
	Status    int    `json:"status"`
	RequestID string `json:"request_id,omitempty"`
}

// MessageBody 仅含提示消息的响应
type MessageBody struct {
	Message string `json:"message"`
}

// Success 成功响应，直接输出数据本体
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Message 成功响应（仅消息）
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, MessageBody{Message: msg})
}

// Error 错误响应，HTTP 状态码与 data.status 一致
func Error(c *gin.Context, status int, code, msg string) {
	c.JSON(status, ErrorBody{
		Code:    code,
		Message: msg,
		Data: ErrorData{
			Status:    status,
			RequestID: requestID(c),
		},
	})
}

// AbortWithError 输出错误并终止后续处理
func AbortWithError(c *gin.Context, status int, code, msg string) {
	Error(c, status, code, msg)
	c.Abort()
}

// NotFound 404响应
func NotFound(c *gin.Context, msg string) {
	Error(c, http.StatusNotFound, CodeNotFound, msg)
}

// BadRequest 400响应
func BadRequest(c *gin.Context, code, msg string) {
	Error(c, http.StatusBadRequest, code, msg)
}

func requestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
