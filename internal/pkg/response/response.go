package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 对外错误码，body 固定为 {"error": code}，配合各自的 HTTP 状态码
const (
	CodeInvalidURL        = "invalid_url"
	CodeRateLimitExceeded = "rate_limit_exceeded"
	CodeJobNotFound       = "job_not_found"
	CodeAnalysisNotReady  = "analysis_not_ready"
	CodeInternalError     = "internal_error"
)

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error 错误响应
func Error(c *gin.Context, status int, code string) {
	c.JSON(status, gin.H{"error": code})
}

// BadRequest 参数错误
func BadRequest(c *gin.Context, code string) {
	Error(c, http.StatusBadRequest, code)
}

// TooManyRequests 触发限流
func TooManyRequests(c *gin.Context) {
	Error(c, http.StatusTooManyRequests, CodeRateLimitExceeded)
}

// NotFound 资源不存在
func NotFound(c *gin.Context, code string) {
	Error(c, http.StatusNotFound, code)
}

// Conflict 状态冲突，比如分析还没出结果
func Conflict(c *gin.Context, code string) {
	Error(c, http.StatusConflict, code)
}

// ServerError 服务器错误
func ServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternalError)
}
