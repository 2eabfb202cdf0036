package handler

import (
	"study-buddy/backend/config"
	"study-buddy/backend/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	System       *SystemHandler
	Auth         *AuthHandler
	User         *UserHandler
	Course       *CourseHandler
	StudySession *StudySessionHandler
	Task         *TaskHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
// pinger 用于 /health 检查存储连通性
func NewHandler(cfg *config.Config, svc *service.Service, pinger Pinger) *Handler {
	return &Handler{
		System:       NewSystemHandler(pinger),
		Auth:         NewAuthHandler(svc.Auth, &cfg.Auth),
		User:         NewUserHandler(svc.User),
		Course:       NewCourseHandler(svc.Course),
		StudySession: NewStudySessionHandler(svc.StudySession),
		Task:         NewTaskHandler(svc.Task),
		Export:       NewExportHandler(svc.Export),
	}
}
