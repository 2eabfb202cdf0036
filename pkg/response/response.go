package response

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// ErrorBody 统一错误响应体，只包含可读的 message
type ErrorBody struct {
	Message string `json:"message"`
}

// ── 成功响应 ──
// 成功时直接输出文档本身：列表为 JSON 数组，单个文档为 JSON 对象

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 204 无响应体（删除成功）
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Attachment 以附件形式输出文件
func Attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(http.StatusOK, contentType, data)
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorBody{Message: message})
}

// AbortWithError 写入错误响应并中止后续处理（中间件使用）
func AbortWithError(c *gin.Context, httpStatus int, message string) {
	c.AbortWithStatusJSON(httpStatus, ErrorBody{Message: message})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}
