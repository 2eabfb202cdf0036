package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"study-buddy/backend/internal/dto"
	pkgerrors "study-buddy/backend/pkg/errors"
	"study-buddy/backend/pkg/response"
)

// handleError 所有 Handler 的统一错误出口
// 错误挂到 gin.Context 上供日志中间件记录，响应体只包含 message
func handleError(c *gin.Context, err error) {
	_ = c.Error(err)
	status, message := pkgerrors.StatusOf(err)
	response.Error(c, status, message)
}

// bindFields 读取 JSON 请求体
// 空请求体视为空字段集合，由 Service 层给出具体的校验错误
func bindFields(c *gin.Context) (dto.Fields, bool) {
	fields := dto.Fields{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return dto.Fields{}, true
		}
		_ = c.Error(err)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Error(c, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		}
		response.BadRequest(c, "Invalid request body")
		return nil, false
	}
	if fields == nil {
		// 请求体为 JSON null
		fields = dto.Fields{}
	}
	return fields, true
}
