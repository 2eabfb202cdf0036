package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	pkgerrors "study-buddy/backend/pkg/errors"
	"study-buddy/backend/pkg/jwt"
	"study-buddy/backend/pkg/response"
)

// 与 handler.SessionClaims 读取的键一致
const (
	claimsKey = "session_claims"
	tokenKey  = "session_token"
)

// Authenticator 会话校验能力（service.AuthService 满足该接口）
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*jwt.Claims, error)
}

// SessionAuth 会话认证中间件
// 会话 Token 取自 Cookie，其次 Authorization: Bearer <token>
// 校验失败时返回 401 并中止，Handler 不会执行
func SessionAuth(auth Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cookieName)

		claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			_ = c.Error(err)
			status, message := pkgerrors.StatusOf(err)
			response.AbortWithError(c, status, message)
			return
		}

		c.Set(tokenKey, token)
		c.Set(claimsKey, claims)

		c.Next()
	}
}

// OptionalSession 可选会话中间件
// 有效会话写入上下文，无会话或会话无效时照常放行
func OptionalSession(auth Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		if token != "" {
			c.Set(tokenKey, token)
			if claims, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(claimsKey, claims)
			}
		}

		c.Next()
	}
}

func extractToken(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
