package dto

// ── 列表查询参数 ──

// ListFilter GET /user 与 GET /task 的可选过滤
type ListFilter struct {
	UserID string `form:"userId"`
}

// ExportFilter GET /task/export 的可选过滤
type ExportFilter struct {
	UserID   string `form:"userId"`
	CourseID string `form:"courseId"`
}
