package handler

import (
	"github.com/gin-gonic/gin"

	"study-buddy/backend/internal/dto"
	"study-buddy/backend/internal/service"
	"study-buddy/backend/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListUsers 用户列表，可按 userId 过滤
// GET /user
func (h *UserHandler) ListUsers(c *gin.Context) {
	var filter dto.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		handleError(c, err)
		return
	}

	users, err := h.userSvc.List(c.Request.Context(), &filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, users)
}

// GetUser 用户详情
// GET /user/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, user)
}

// CreateUser 创建用户
// POST /user
func (h *UserHandler) CreateUser(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), fields)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, user)
}

// UpdateUser 更新用户
// PUT /user/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, user)
}

// DeleteUser 删除用户
// DELETE /user/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	response.NoContent(c)
}
