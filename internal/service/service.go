package service

import (
	"go.uber.org/zap"

	"study-buddy/backend/config"
	"study-buddy/backend/internal/repository"
	"study-buddy/backend/pkg/jwt"
	"study-buddy/backend/pkg/validate"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	User         UserService
	Course       CourseService
	StudySession StudySessionService
	Task         TaskService
	Export       ExportService
}

// NewService 创建 Service 聚合
// blacklist 可为 nil（Redis 不可用时）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	provider OAuthProvider,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	sanitizer := validate.NewSanitizer(cfg.Feature.StripHTML)
	courses := NewCourseService(repo, sanitizer, logger)

	return &Service{
		Auth:         NewAuthService(provider, jwtMgr, blacklist, logger),
		User:         NewUserService(repo, sanitizer, logger),
		Course:       courses,
		StudySession: NewStudySessionService(repo, sanitizer, logger),
		Task:         NewTaskService(repo, sanitizer, logger),
		Export:       NewExportService(repo, courses, logger),
	}
}
