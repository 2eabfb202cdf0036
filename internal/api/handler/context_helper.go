package handler

import (
	"github.com/gin-gonic/gin"

	"study-buddy/backend/pkg/jwt"
)

// 由 middleware.SessionAuth / OptionalSession 写入
const (
	ctxKeyClaims = "session_claims"
	ctxKeyToken  = "session_token"
)

// SessionClaims 从 Gin 上下文中读取当前会话，未登录时返回 false
func SessionClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(ctxKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok && claims != nil
}

// sessionToken 读取原始会话 Token（可能已失效）
func sessionToken(c *gin.Context) string {
	return c.GetString(ctxKeyToken)
}
