package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"study-buddy/backend/config"
	"study-buddy/backend/internal/dto"
	"study-buddy/backend/internal/service"
)

// OAuth state Cookie，仅在登录跳转期间有效
const (
	stateCookieName   = "oauth_state"
	stateCookieMaxAge = 10 * 60
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
	cfg     *config.AuthConfig
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, cfg *config.AuthConfig) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, cfg: cfg}
}

// Login 跳转到 GitHub 授权页
// GET /login
func (h *AuthHandler) Login(c *gin.Context) {
	redirectURL, state, err := h.authSvc.BeginLogin()
	if err != nil {
		handleError(c, err)
		return
	}

	h.setCookie(c, stateCookieName, state, stateCookieMaxAge)
	c.Redirect(http.StatusFound, redirectURL)
}

// Callback GitHub 授权回调，成功后写入会话 Cookie 并回到首页
// GET /github/callback
func (h *AuthHandler) Callback(c *gin.Context) {
	var req dto.OAuthCallbackRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handleError(c, err)
		return
	}

	expected, _ := c.Cookie(stateCookieName)
	h.setCookie(c, stateCookieName, "", -1)

	result, err := h.authSvc.CompleteLogin(c.Request.Context(), &req, expected)
	if err != nil {
		handleError(c, err)
		return
	}

	h.setCookie(c, h.cfg.Cookie.Name, result.Token, int(h.cfg.SessionTTL.Seconds()))
	c.Redirect(http.StatusFound, "/")
}

// Logout 吊销会话并清除 Cookie
// GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authSvc.Logout(c.Request.Context(), sessionToken(c)); err != nil {
		// 吊销失败不影响登出，Cookie 照常清除
		_ = c.Error(err)
	}

	h.setCookie(c, h.cfg.Cookie.Name, "", -1)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(parseSameSite(h.cfg.Cookie.SameSite))
	c.SetCookie(name, value, maxAge, "/", h.cfg.Cookie.Domain, h.cfg.Cookie.Secure, true)
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
