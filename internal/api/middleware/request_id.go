package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestIDKey gin 上下文中保存请求 ID 的键，Logger 与 Recovery 以同名字段写入日志
const requestIDKey = "request_id"

// 客户端传入的 X-Request-ID 超过该长度时丢弃并重新生成
const requestIDMaxLen = 64

// RequestID 为每个请求分配追踪 ID
//
// 优先沿用客户端的 X-Request-ID，缺失或过长时生成 UUID。
// 同一 ID 回写到响应头，便于前端报错时与服务端日志对照。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" || len(id) > requestIDMaxLen {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
