package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"study-buddy/backend/internal/dto"
	"study-buddy/backend/pkg/response"
)

// Pinger 存储连通性检查
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler 服务状态接口
type SystemHandler struct {
	pinger Pinger
	now    func() time.Time
}

// NewSystemHandler 创建 SystemHandler
func NewSystemHandler(pinger Pinger) *SystemHandler {
	return &SystemHandler{pinger: pinger, now: time.Now}
}

// Root 服务状态与当前会话
// GET /
func (h *SystemHandler) Root(c *gin.Context) {
	session := "Logged out"
	if claims, ok := SessionClaims(c); ok {
		session = "Logged in as " + claims.Name()
	}

	response.OK(c, dto.RootResponse{
		Message:   "Study Buddy API",
		Status:    "Running",
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Session:   session,
	})
}

// Health 健康检查
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	if err := h.pinger.Ping(c.Request.Context()); err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	response.OK(c, dto.HealthResponse{Status: "ok"})
}
