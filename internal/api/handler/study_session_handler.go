package handler

import (
	"github.com/gin-gonic/gin"

	"study-buddy/backend/internal/service"
	"study-buddy/backend/pkg/response"
)

// StudySessionHandler 学习记录模块 HTTP 处理器
type StudySessionHandler struct {
	sessionSvc service.StudySessionService
}

// NewStudySessionHandler 创建 StudySessionHandler
func NewStudySessionHandler(sessionSvc service.StudySessionService) *StudySessionHandler {
	return &StudySessionHandler{sessionSvc: sessionSvc}
}

// ListStudySessions 学习记录列表
// GET /study-session
func (h *StudySessionHandler) ListStudySessions(c *gin.Context) {
	sessions, err := h.sessionSvc.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, sessions)
}

// GetStudySession 学习记录详情
// GET /study-session/:id
func (h *StudySessionHandler) GetStudySession(c *gin.Context) {
	session, err := h.sessionSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, session)
}

// CreateStudySession 创建学习记录
// POST /study-session
func (h *StudySessionHandler) CreateStudySession(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.Create(c.Request.Context(), fields)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, session)
}

// UpdateStudySession 更新学习记录
// PUT /study-session/:id
func (h *StudySessionHandler) UpdateStudySession(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, session)
}

// DeleteStudySession 删除学习记录
// DELETE /study-session/:id
func (h *StudySessionHandler) DeleteStudySession(c *gin.Context) {
	if err := h.sessionSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	response.NoContent(c)
}
