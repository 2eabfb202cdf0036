package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"study-buddy/backend/config"
	"study-buddy/backend/internal/api/handler"
	"study-buddy/backend/internal/api/middleware"
	"study-buddy/backend/pkg/response"
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 可为 nil（Redis 不可用时不限流）
func Setup(cfg *config.Config, h *handler.Handler, auth middleware.Authenticator, limiter middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Not found")
	})

	cookie := cfg.Auth.Cookie.Name
	requireSession := middleware.SessionAuth(auth, cookie)
	optionalSession := middleware.OptionalSession(auth, cookie)
	authLimit := middleware.RateLimit(limiter, cfg.RateLimit.AuthLimit, cfg.RateLimit.AuthWindow)

	// ── 系统 ──
	r.GET("/", optionalSession, h.System.Root)
	r.GET("/health", h.System.Health)

	// ── 认证 ──
	r.GET("/login", authLimit, h.Auth.Login)
	r.GET("/github/callback", authLimit, h.Auth.Callback)
	r.GET("/logout", optionalSession, h.Auth.Logout)

	// ── 资源 ──
	// 读操作公开，写操作需要登录
	users := r.Group("/user")
	{
		users.GET("", h.User.ListUsers)
		users.GET("/:id", h.User.GetUser)
		users.POST("", requireSession, h.User.CreateUser)
		users.PUT("/:id", requireSession, h.User.UpdateUser)
		users.DELETE("/:id", requireSession, h.User.DeleteUser)
	}

	courses := r.Group("/course")
	{
		courses.GET("", h.Course.ListCourses)
		courses.GET("/:id", h.Course.GetCourse)
		courses.GET("/:id/calendar", h.Export.CourseCalendar)
		courses.POST("", requireSession, h.Course.CreateCourse)
		courses.PUT("/:id", requireSession, h.Course.UpdateCourse)
		courses.DELETE("/:id", requireSession, h.Course.DeleteCourse)
	}

	sessions := r.Group("/study-session")
	{
		sessions.GET("", h.StudySession.ListStudySessions)
		sessions.GET("/:id", h.StudySession.GetStudySession)
		sessions.POST("", requireSession, h.StudySession.CreateStudySession)
		sessions.PUT("/:id", requireSession, h.StudySession.UpdateStudySession)
		sessions.DELETE("/:id", requireSession, h.StudySession.DeleteStudySession)
	}

	tasks := r.Group("/task")
	{
		tasks.GET("", h.Task.ListTasks)
		tasks.GET("/export", h.Export.ExportTasks)
		tasks.GET("/course/:courseId", h.Task.ListTasksByCourse)
		tasks.GET("/:id", h.Task.GetTask)
		tasks.POST("", requireSession, h.Task.CreateTask)
		tasks.PUT("/:id", requireSession, h.Task.UpdateTask)
		tasks.DELETE("/:id", requireSession, h.Task.DeleteTask)
	}

	return r
}
