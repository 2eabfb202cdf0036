package handler

import (
	"github.com/gin-gonic/gin"

	"study-buddy/backend/internal/dto"
	"study-buddy/backend/internal/service"
	"study-buddy/backend/pkg/response"
)

const (
	contentTypeXLSX     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCalendar = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportTasks 导出任务为 Excel
// GET /task/export?userId=xxx&courseId=xxx
func (h *ExportHandler) ExportTasks(c *gin.Context) {
	var filter dto.ExportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		handleError(c, err)
		return
	}

	buf, filename, err := h.exportSvc.ExportTasks(c.Request.Context(), &filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Attachment(c, filename, contentTypeXLSX, buf.Bytes())
}

// CourseCalendar 导出课程为 iCalendar
// GET /course/:id/calendar
func (h *ExportHandler) CourseCalendar(c *gin.Context) {
	data, filename, err := h.exportSvc.CourseCalendar(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Attachment(c, filename, contentTypeCalendar, data)
}
