package handler

import (
	"github.com/gin-gonic/gin"

	"study-buddy/backend/internal/dto"
	"study-buddy/backend/internal/service"
	"study-buddy/backend/pkg/response"
)

// TaskHandler 任务模块 HTTP 处理器
type TaskHandler struct {
	taskSvc service.TaskService
}

// NewTaskHandler 创建 TaskHandler
func NewTaskHandler(taskSvc service.TaskService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc}
}

// ListTasks 任务列表，可按 userId 过滤
// GET /task
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var filter dto.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		handleError(c, err)
		return
	}

	tasks, err := h.taskSvc.List(c.Request.Context(), &filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, tasks)
}

// ListTasksByCourse 某课程下的任务，课程不存在时返回空数组
// GET /task/course/:courseId
func (h *TaskHandler) ListTasksByCourse(c *gin.Context) {
	tasks, err := h.taskSvc.ListByCourse(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, tasks)
}

// GetTask 任务详情
// GET /task/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, task)
}

// CreateTask 创建任务
// POST /task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	task, err := h.taskSvc.Create(c.Request.Context(), fields)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, task)
}

// UpdateTask 更新任务
// PUT /task/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	task, err := h.taskSvc.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, task)
}

// DeleteTask 删除任务
// DELETE /task/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	response.NoContent(c)
}
