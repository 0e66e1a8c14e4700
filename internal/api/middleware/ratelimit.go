package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/satyanetra/trust_go_server/internal/pkg/response"
	"github.com/satyanetra/trust_go_server/internal/ratelimit"
)

// RateLimit 提交限流中间件，按客户端 IP 计数
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			response.TooManyRequests(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
