package handler

import (
	"github.com/gin-gonic/gin"

	"study-buddy/backend/internal/service"
	"study-buddy/backend/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// ListCourses 课程列表
// GET /course
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseSvc.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, courses)
}

// GetCourse 课程详情
// GET /course/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.courseSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, course)
}

// CreateCourse 创建课程
// POST /course
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), fields)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, course)
}

// UpdateCourse 更新课程
// PUT /course/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	course, err := h.courseSvc.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, course)
}

// DeleteCourse 删除课程（不级联删除学习记录与任务）
// DELETE /course/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	if err := h.courseSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	response.NoContent(c)
}
